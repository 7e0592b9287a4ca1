package model

import "strings"

// SubjectKind discriminates what a Claim's subject_id refers to.
type SubjectKind string

const (
	SubjectCharacter SubjectKind = "character"
	SubjectEvent     SubjectKind = "event"
)

// ClaimValue is a closed tagged union: Scalar(string) | Ref(EntityId) |
// Range(string). It is implemented as an interface with an unexported
// marker method so no package outside model can add a fourth case.
type ClaimValue interface {
	claimValue()
	// Normalized returns the string form used for agreement comparison
	// (§4.6.2): trimmed and case-folded for Scalar/Range, the raw id for
	// Ref.
	Normalized() string
	// String returns a human-readable rendering, used in claim_id
	// fingerprinting and dossier output.
	String() string
}

// Scalar is a free-text claim value (a trait string, an event account
// field, etc).
type Scalar string

func (Scalar) claimValue()          {}
func (s Scalar) String() string     { return string(s) }
func (s Scalar) Normalized() string { return normalizeScalar(string(s)) }

// Ref is a claim value that is itself an EntityId (used by relationship
// claims).
type Ref EntityId

func (Ref) claimValue()          {}
func (r Ref) String() string     { return string(r) }
func (r Ref) Normalized() string { return string(r) }

// Range is a claim value expressing an interval or span (dates, date
// ranges). Agreement compares it the same way as Scalar.
type Range string

func (Range) claimValue()          {}
func (r Range) String() string     { return string(r) }
func (r Range) Normalized() string { return normalizeScalar(string(r)) }

// Claim is an attributed assertion derived from a snapshot; it is never
// stored, only computed.
type Claim struct {
	ClaimId     string      `json:"claim_id"`
	SubjectId   EntityId    `json:"subject_id"`
	SubjectKind SubjectKind `json:"subject_kind"`
	Predicate   string      `json:"predicate"`
	Object      ClaimValue  `json:"object"`
	SourceId    SourceId    `json:"source_id"`
	Reference   Reference   `json:"reference,omitempty"`
	VariantId   string      `json:"variant_id,omitempty"`
	Confidence  float64     `json:"confidence"`
	Note        string      `json:"note,omitempty"`
}

// IsAbsent reports whether a claim value counts as "absent" under
// §4.6.2's rules: empty/whitespace-only, or one of the case-insensitive
// tokens "none"/"n/a".
func IsAbsent(v ClaimValue) bool {
	n := normalizeScalar(v.String())
	return n == "" || n == "none" || n == "n/a"
}

func normalizeScalar(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
