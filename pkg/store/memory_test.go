package store

import (
	"testing"

	"github.com/kittclouds/bce/pkg/bceerr"
	"github.com/kittclouds/bce/pkg/model"
)

func TestMemoryPortRoundTrip(t *testing.T) {
	p := NewMemoryPort()
	p.Hydrate(
		map[model.EntityId]RawDocument{"peter": {"id": "peter", "canonical_name": "Peter"}},
		map[model.EntityId]RawDocument{"crucifixion": {"id": "crucifixion", "label": "Crucifixion"}},
		[]model.SourceMeta{{SourceId: "mark"}},
	)

	ids, err := p.ListCharacterIDs()
	if err != nil || len(ids) != 1 || ids[0] != "peter" {
		t.Fatalf("got ids=%v err=%v", ids, err)
	}

	doc, err := p.LoadCharacterRaw("peter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, _ := doc.Str("canonical_name")
	if name != "Peter" {
		t.Fatalf("expected round-tripped canonical_name, got %q", name)
	}

	sources, err := p.LoadSources()
	if err != nil || len(sources) != 1 || sources[0].SourceId != "mark" {
		t.Fatalf("got sources=%v err=%v", sources, err)
	}
}

func TestMemoryPortLoadMissingIsDataNotFound(t *testing.T) {
	p := NewMemoryPort()
	_, err := p.LoadCharacterRaw("nobody")
	if err == nil {
		t.Fatalf("expected error for missing character")
	}
	be, ok := err.(*bceerr.Error)
	if !ok || be.Kind != bceerr.DataNotFound {
		t.Fatalf("expected bceerr.DataNotFound, got %v", err)
	}
}

func TestMemoryPortSaveThenLoad(t *testing.T) {
	p := NewMemoryPort()
	if err := p.SaveCharacterRaw("andrew", RawDocument{"id": "andrew", "canonical_name": "Andrew"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := p.LoadCharacterRaw("andrew")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, _ := doc.Str("canonical_name")
	if name != "Andrew" {
		t.Fatalf("expected saved document to round-trip, got %v", doc)
	}
}
