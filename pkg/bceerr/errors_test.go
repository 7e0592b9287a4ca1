package bceerr

import (
	"errors"
	"testing"
)

func TestWithFieldAnnotatesError(t *testing.T) {
	e := New(Validation, "missing trait").WithField("peter", "traits.role", "")
	if e.EntityID != "peter" || e.FieldPath != "traits.role" {
		t.Fatalf("expected field annotation to stick, got %+v", e)
	}
	if e.Kind != Validation {
		t.Fatalf("expected Kind=validation, got %s", e.Kind)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	root := errors.New("disk full")
	e := Wrap(Storage, root, "failed to write character")
	if e.Cause() == nil || e.Cause().Error() != "disk full" {
		t.Fatalf("expected Cause() to surface the root error, got %v", e.Cause())
	}
}

func TestListErrorSummarizesCount(t *testing.T) {
	list := List{New(Validation, "first"), New(Validation, "second")}
	msg := list.Error()
	if msg == "" {
		t.Fatalf("expected non-empty summary")
	}
	if List(nil).Error() == msg {
		t.Fatalf("expected empty list to summarize differently")
	}
}
