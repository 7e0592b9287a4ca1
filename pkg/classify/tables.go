// Package classify hosts the fixed keyword lookup tables that drive
// conflict classification (§4.6.3): claim_type, severity and
// conflict_type shape. Each table is compiled once into an Aho-Corasick
// automaton at package init, generalizing the "compile once, scan many"
// dual-purpose dictionary/scanner design of a prior project's entity
// matcher from an alphabet of entity surface forms to an alphabet of
// classification keywords.
package classify

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// ClaimType is the closed enumeration of §4.6.3.
type ClaimType string

const (
	Chronology ClaimType = "chronology"
	Theology   ClaimType = "theology"
	Geography  ClaimType = "geography"
	Narrative  ClaimType = "narrative"
	Identity   ClaimType = "identity"
	Textual    ClaimType = "textual"
)

// Severity is the closed enumeration of §4.6.3, totally ordered
// low < medium < high < critical (P6).
type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// severityRank gives the total order P6 requires.
var severityRank = map[Severity]int{Low: 0, Medium: 1, High: 2, Critical: 3}

// Less reports whether s has strictly lower severity than other.
func (s Severity) Less(other Severity) bool { return severityRank[s] < severityRank[other] }

type keywordTable struct {
	ac     *ahocorasick.Automaton
	labels []ClaimType
}

func buildClaimTypeTable() *keywordTable {
	// When a predicate contains keywords from more than one group,
	// ClassifyClaimType picks the keyword occurrence that starts earliest
	// in the predicate; the order of the groups below does not decide
	// between them.
	groups := []struct {
		claimType ClaimType
		keywords  []string
	}{
		{Chronology, []string{"date", "when", "time", "before", "after", "sequence"}},
		{Theology, []string{"divinity", "nature", "mission", "authority"}},
		{Geography, []string{"location", "where", "place", "city"}},
		{Narrative, []string{"number", "count", "how_many", "how many"}},
		{Textual, []string{"manuscript", "variant", "reading"}},
	}

	var patterns []string
	var labels []ClaimType
	for _, g := range groups {
		for _, kw := range g.keywords {
			patterns = append(patterns, kw)
			labels = append(labels, g.claimType)
		}
	}

	ac, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		panic("classify: failed to compile claim_type table: " + err.Error())
	}
	return &keywordTable{ac: ac, labels: labels}
}

var claimTypeTable = buildClaimTypeTable()

// ClassifyClaimType derives claim_type from a predicate by lookup
// against the fixed keyword tables of §4.6.3. Relationship predicates
// (the "relationship:<type>" family) are always identity, checked ahead
// of the keyword scan since they are a structural marker, not a keyword.
func ClassifyClaimType(predicate string) ClaimType {
	if strings.HasPrefix(predicate, "relationship:") {
		return Identity
	}
	norm := strings.ToLower(predicate)
	matches := claimTypeTable.ac.FindAllOverlapping([]byte(norm))
	if len(matches) == 0 {
		return Narrative
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Start < best.Start {
			best = m
		}
	}
	return claimTypeTable.labels[best.PatternID]
}

func buildSeverityTables() (critical, medium, low *ahocorasick.Automaton) {
	build := func(words []string) *ahocorasick.Automaton {
		ac, err := ahocorasick.NewBuilder().AddStrings(words).SetMatchKind(ahocorasick.LeftmostLongest).Build()
		if err != nil {
			panic("classify: failed to compile severity table: " + err.Error())
		}
		return ac
	}
	return build([]string{"resurrection", "divinity", "existence"}),
		build([]string{"date", "location", "order"}),
		build([]string{"wording"})
}

var criticalTable, mediumTable, lowTable = buildSeverityTables()

// SeverityInputs carries the facts the count-based fallback branch of
// §4.6.3's severity rule needs when no keyword matches.
type SeverityInputs struct {
	DistinctNonAbsentValues int
	ContributingSources     int
}

// ClassifySeverity implements the full severity rule table of §4.6.3.
func ClassifySeverity(predicate string, in SeverityInputs) Severity {
	norm := strings.ToLower(predicate)
	if len(criticalTable.FindAllOverlapping([]byte(norm))) > 0 {
		return Critical
	}
	if len(mediumTable.FindAllOverlapping([]byte(norm))) > 0 {
		return Medium
	}
	if len(lowTable.FindAllOverlapping([]byte(norm))) > 0 {
		return Low
	}
	switch {
	case in.DistinctNonAbsentValues == in.ContributingSources:
		return High
	case in.DistinctNonAbsentValues == 2:
		return Medium
	default:
		return Low
	}
}

// ConflictShape is the finer conflict_type suffix of §4.6.3.
type ConflictShape string

const (
	ShapeSequence ConflictShape = "sequence"
	ShapeDating   ConflictShape = "dating"
	ShapeEmphasis ConflictShape = "emphasis"
	ShapeIdentity ConflictShape = "identity"
	ShapeValue    ConflictShape = "value"
)

var shapeAC, shapeLabels = func() (*ahocorasick.Automaton, []ConflictShape) {
	groups := []struct {
		shape    ConflictShape
		keywords []string
	}{
		{ShapeSequence, []string{"sequence", "order"}},
		{ShapeDating, []string{"date", "when", "time"}},
		{ShapeEmphasis, []string{"emphasis", "stance", "understanding"}},
	}
	var patterns []string
	var labels []ConflictShape
	for _, g := range groups {
		for _, kw := range g.keywords {
			patterns = append(patterns, kw)
			labels = append(labels, g.shape)
		}
	}
	ac, err := ahocorasick.NewBuilder().AddStrings(patterns).SetMatchKind(ahocorasick.LeftmostLongest).Build()
	if err != nil {
		panic("classify: failed to compile conflict shape table: " + err.Error())
	}
	return ac, labels
}()

// ClassifyConflictType composes "<claim_type>_<shape>" per §4.6.3.
// Relationship predicates are always identity-shaped; everything else
// falls back to "value" when no suffix keyword matches.
func ClassifyConflictType(predicate string, claimType ClaimType) string {
	if strings.HasPrefix(predicate, "relationship:") {
		return string(claimType) + "_" + string(ShapeIdentity)
	}
	norm := strings.ToLower(predicate)
	matches := shapeAC.FindAllOverlapping([]byte(norm))
	shape := ShapeValue
	if len(matches) > 0 {
		best := matches[0]
		for _, m := range matches[1:] {
			if m.Start < best.Start {
				best = m
			}
		}
		shape = shapeLabels[best.PatternID]
	}
	return string(claimType) + "_" + string(shape)
}
