// Package conflict implements the Conflict Detector (§4.6): grouping
// claims by (subject, predicate), deciding agreement, classifying and
// scoring severity, and proposing non-prescriptive harmonization hints.
package conflict

import (
	"sort"
	"strconv"

	"github.com/kittclouds/bce/pkg/classify"
	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/model"
)

// Summary is the conflict summary record of §4.6.4.
type Summary struct {
	Field              string            `json:"field"`
	Severity           classify.Severity `json:"severity"`
	Category           classify.ClaimType `json:"category"`
	ClaimType          classify.ClaimType `json:"claim_type"`
	ConflictType       string            `json:"conflict_type"`
	Sources            map[string]string `json:"sources"`
	DistinctValues     []string          `json:"distinct_values"`
	DominantValue      string            `json:"dominant_value"`
	HarmonizationMoves []Move            `json:"harmonization_moves"`
	Notes              string            `json:"notes,omitempty"`
	Rationale          string            `json:"rationale"`
}

// Move is a single non-prescriptive harmonization hint (§4.6.3,
// GLOSSARY "Harmonization move").
type Move struct {
	Move        string `json:"move"`
	Description string `json:"description"`
}

// harmonizationMoves is the fixed table keyed by conflict_type (§4.6.3).
var harmonizationMoves = map[string][]Move{
	"chronology_sequence": {{Move: "anchor_by_range", Description: "Anchor conflicting event orderings to an approximate date range rather than a strict sequence."}},
	"chronology_dating":   {{Move: "anchor_by_range", Description: "Treat dates as approximate ranges instead of point values when reconciling sources."}},
	"theology_emphasis":   {{Move: "distinguish_audience", Description: "Attribute divergent emphasis to differing authorial audience or purpose rather than factual disagreement."}},
	"geography_value":     {{Move: "distinguish_itinerary_stage", Description: "Treat divergent locations as different stages of an itinerary rather than a single fixed place."}},
	"identity_value":      {{Move: "distinguish_roles", Description: "Treat divergent relationship claims as describing distinct facets of a relationship rather than a contradiction."}},
	"textual_value":       {{Move: "prefer_earliest_attestation", Description: "Weigh manuscript variants by relative attestation age as a non-binding preference."}},
}

// Detect groups claims by (subject_id, predicate), finds candidate
// conflict groups (§4.6.1), decides agreement (§4.6.2), classifies and
// scores each conflict (§4.6.3), and returns the output records of
// §4.6.4. Output order is deterministic: sorted by subject id, then by
// field name.
func Detect(claims []model.Claim, runtime *hooks.Runtime) []Summary {
	beforeCtx := hooks.NewContext(hooks.BeforeConflictDetection)
	beforeCtx = runtime.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return nil
	}

	groups := make(map[string][]model.Claim)
	var order []string
	for _, c := range claims {
		key := string(c.SubjectId) + "\x00" + c.Predicate
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}
	sort.Strings(order)

	var summaries []Summary
	for _, key := range order {
		group := groups[key]
		sourceIDs := make(map[model.SourceId]bool)
		for _, c := range group {
			sourceIDs[c.SourceId] = true
		}
		if len(group) < 2 || len(sourceIDs) < 2 {
			continue
		}
		if s, ok := detectOne(group); ok {
			scoreCtx := hooks.NewContext(hooks.ConflictSeverityScore)
			scoreCtx.Data["field"] = s.Field
			scoreCtx.Data["severity"] = string(s.Severity)
			scoreCtx = runtime.Dispatch(scoreCtx)
			if override, ok := scoreCtx.Data["severity"].(string); ok {
				s.Severity = classify.Severity(override)
			}
			summaries = append(summaries, s)
		}
	}

	afterCtx := hooks.NewContext(hooks.AfterConflictDetection)
	afterCtx.Data["count"] = len(summaries)
	runtime.Dispatch(afterCtx)

	return summaries
}

// detectOne implements §4.6.2's agreement decision over a single group
// and, if it is a genuine conflict, §4.6.3's classification.
func detectOne(group []model.Claim) (Summary, bool) {
	bySource := make(map[model.SourceId]model.ClaimValue)
	sourceOrder := make([]model.SourceId, 0, len(group))
	for _, c := range group {
		if _, seen := bySource[c.SourceId]; !seen {
			sourceOrder = append(sourceOrder, c.SourceId)
		}
		bySource[c.SourceId] = c.Object
	}
	sort.Slice(sourceOrder, func(i, j int) bool { return sourceOrder[i] < sourceOrder[j] })

	normToValue := make(map[string]string)
	normCount := make(map[string]int)
	sourcesOut := make(map[string]string, len(bySource))
	nonAbsentDistinct := 0
	for _, sid := range sourceOrder {
		val := bySource[sid]
		sourcesOut[string(sid)] = val.String()
		norm := val.Normalized()
		if _, ok := normToValue[norm]; !ok {
			normToValue[norm] = val.String()
			if !model.IsAbsent(val) {
				nonAbsentDistinct++
			}
		}
		normCount[norm]++
	}

	// An absent value beside otherwise agreeing values is not a conflict;
	// once two real values disagree, the absent value is listed as one
	// more distinct value.
	if nonAbsentDistinct < 2 {
		return Summary{}, false
	}

	predicate := group[0].Predicate
	claimType := classify.ClassifyClaimType(predicate)
	severity := classify.ClassifySeverity(predicate, classify.SeverityInputs{
		DistinctNonAbsentValues: nonAbsentDistinct,
		ContributingSources:     len(sourceOrder),
	})
	conflictType := classify.ClassifyConflictType(predicate, claimType)

	dominant := dominantValue(normToValue, normCount, bySource)

	distinct := make([]string, 0, len(normToValue))
	for _, v := range normToValue {
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)

	return Summary{
		Field:              predicate,
		Severity:           severity,
		Category:           claimType,
		ClaimType:          claimType,
		ConflictType:       conflictType,
		Sources:            sourcesOut,
		DistinctValues:     distinct,
		DominantValue:      dominant,
		HarmonizationMoves: harmonizationMoves[conflictType],
		Rationale:          rationale(claimType, severity, len(sourceOrder), nonAbsentDistinct),
	}, true
}

// dominantValue implements the tie-break rule of §4.6.3/§9: the
// non-absent value with the highest count, ties broken by lexicographic
// order on source_id. Absent values ("none"/"n/a"/blank) are only
// eligible when every candidate is absent, since a conflict group is
// never allowed to publish an absent value as dominant when a real one
// is available.
func dominantValue(normToValue map[string]string, normCount map[string]int, bySource map[model.SourceId]model.ClaimValue) string {
	type candidate struct {
		norm        string
		value       string
		count       int
		firstSource model.SourceId
		absent      bool
	}
	var candidates []candidate
	for norm, value := range normToValue {
		var first model.SourceId
		found := false
		var sids []model.SourceId
		var absent bool
		for sid, v := range bySource {
			if v.Normalized() == norm {
				sids = append(sids, sid)
				absent = model.IsAbsent(v)
			}
		}
		sort.Slice(sids, func(i, j int) bool { return sids[i] < sids[j] })
		if len(sids) > 0 {
			first = sids[0]
			found = true
		}
		if !found {
			continue
		}
		candidates = append(candidates, candidate{norm: norm, value: value, count: normCount[norm], firstSource: first, absent: absent})
	}

	eligible := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.absent {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		eligible = candidates
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].count != eligible[j].count {
			return eligible[i].count > eligible[j].count
		}
		return eligible[i].firstSource < eligible[j].firstSource
	})
	if len(eligible) == 0 {
		return ""
	}
	return eligible[0].value
}

func rationale(claimType classify.ClaimType, severity classify.Severity, sourceCount, distinctCount int) string {
	return string(claimType) + " conflict across " + strconv.Itoa(sourceCount) + " sources with " + strconv.Itoa(distinctCount) + " distinct non-absent values, severity=" + string(severity)
}
