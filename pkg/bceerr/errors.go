// Package bceerr implements BCE's discriminated error model (§4.1, §7):
// errors are classified by Kind, not by Go type, and carry a structured
// payload so callers can branch on Kind without string matching.
package bceerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the six error categories of §4.1.
type Kind string

const (
	DataNotFound  Kind = "data_not_found"
	Validation    Kind = "validation"
	Storage       Kind = "storage"
	Cache         Kind = "cache"
	Configuration Kind = "configuration"
	Search        Kind = "search"
)

// Error is the structured payload every public BCE operation returns
// instead of an ad-hoc error string.
type Error struct {
	Kind      Kind
	EntityID  string
	FieldPath string
	Value     string
	Message   string
	cause     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("bce: %s: %s", e.Kind, e.Message)
	if e.EntityID != "" {
		msg = fmt.Sprintf("%s (entity=%s", msg, e.EntityID)
		if e.FieldPath != "" {
			msg = fmt.Sprintf("%s field=%s", msg, e.FieldPath)
		}
		msg += ")"
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New builds a bare structured error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a structured error that retains cause via
// github.com/pkg/errors, so the underlying adapter failure survives in
// logs without leaking into the structured payload callers branch on.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: errors.Wrap(cause, message)}
}

// WithField annotates an error with the offending entity id and field
// path, as required by the ingestion gate's per-violation reporting
// (§4.3 step 4).
func (e *Error) WithField(entityID, fieldPath, value string) *Error {
	e.EntityID = entityID
	e.FieldPath = fieldPath
	e.Value = value
	return e
}

// Cause returns the deepest wrapped error, mirroring errors.Cause for
// callers that still depend on github.com/pkg/errors semantics.
func (e *Error) Cause() error {
	if e.cause == nil {
		return nil
	}
	return errors.Cause(e.cause)
}

// List aggregates multiple structured errors into a single error value,
// used by the ingestion gate to report every I1-I7 violation from one
// run (§4.3 step 4, §7 Validation policy).
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return "bce: no errors"
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	return fmt.Sprintf("bce: %d validation errors (first: %s)", len(l), l[0].Error())
}

// Warning is a non-fatal ingestion finding (§4.3 step 2c): accepted, but
// surfaced on the snapshot.
type Warning struct {
	EntityID  string
	FieldPath string
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (%s): %s", w.EntityID, w.FieldPath, w.Message)
}
