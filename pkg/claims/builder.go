package claims

import (
	"sort"

	"github.com/kittclouds/bce/pkg/model"
)

// BuildCharacterClaims folds a Character's source profiles and
// relationships into claims (§4.5). The result is sorted by claim_id so
// downstream consumers see a stable order for a given snapshot (P4).
func BuildCharacterClaims(c model.Character) []model.Claim {
	var out []model.Claim

	for _, sp := range c.SourceProfiles {
		var firstRef model.Reference
		if len(sp.References) > 0 {
			firstRef = sp.References[0]
		}
		keys := make([]string, 0, len(sp.Traits))
		for k := range sp.Traits {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := sp.Traits[k]
			out = append(out, model.Claim{
				SubjectId:   c.Id,
				SubjectKind: model.SubjectCharacter,
				Predicate:   k,
				Object:      model.Scalar(v),
				SourceId:    sp.SourceId,
				Reference:   firstRef,
				Confidence:  1.0,
			})
		}
		for _, v := range sp.Variants {
			predicate := "variant:" + v.ManuscriptFamily + ":reading"
			out = append(out, model.Claim{
				SubjectId:   c.Id,
				SubjectKind: model.SubjectCharacter,
				Predicate:   predicate,
				Object:      model.Scalar(v.Reading),
				SourceId:    sp.SourceId,
				VariantId:   v.ManuscriptFamily,
				Confidence:  1.0,
				Note:        v.Significance,
			})
		}
	}

	for _, r := range c.Relationships {
		for _, s := range r.Sources {
			out = append(out, model.Claim{
				SubjectId:   c.Id,
				SubjectKind: model.SubjectCharacter,
				Predicate:   "relationship:" + r.Type,
				Object:      model.Ref(r.CharacterId),
				SourceId:    s,
				Note:        r.Notes,
				Confidence:  1.0,
			})
		}
	}

	for i := range out {
		out[i].ClaimId = fingerprint(out[i].SubjectId, out[i].Predicate, out[i].SourceId, out[i].Object)
	}
	sortClaims(out)
	return out
}

// BuildEventClaims folds an Event's accounts into claims over the three
// canonical fields {summary, reference, notes}, skipping empty notes
// (§4.5).
func BuildEventClaims(e model.Event) []model.Claim {
	var out []model.Claim

	for _, acc := range e.Accounts {
		out = append(out, model.Claim{
			SubjectId:   e.Id,
			SubjectKind: model.SubjectEvent,
			Predicate:   "summary",
			Object:      model.Scalar(acc.Summary),
			SourceId:    acc.SourceId,
			Reference:   acc.Reference,
			Confidence:  1.0,
		})
		out = append(out, model.Claim{
			SubjectId:   e.Id,
			SubjectKind: model.SubjectEvent,
			Predicate:   "reference",
			Object:      model.Scalar(string(acc.Reference)),
			SourceId:    acc.SourceId,
			Reference:   acc.Reference,
			Confidence:  1.0,
		})
		if acc.Notes != "" {
			out = append(out, model.Claim{
				SubjectId:   e.Id,
				SubjectKind: model.SubjectEvent,
				Predicate:   "notes",
				Object:      model.Scalar(acc.Notes),
				SourceId:    acc.SourceId,
				Reference:   acc.Reference,
				Confidence:  1.0,
			})
		}
		for _, v := range acc.Variants {
			predicate := "variant:" + v.ManuscriptFamily + ":reading"
			out = append(out, model.Claim{
				SubjectId:   e.Id,
				SubjectKind: model.SubjectEvent,
				Predicate:   predicate,
				Object:      model.Scalar(v.Reading),
				SourceId:    acc.SourceId,
				VariantId:   v.ManuscriptFamily,
				Confidence:  1.0,
				Note:        v.Significance,
			})
		}
	}

	for i := range out {
		out[i].ClaimId = fingerprint(out[i].SubjectId, out[i].Predicate, out[i].SourceId, out[i].Object)
	}
	sortClaims(out)
	return out
}

func sortClaims(claims []model.Claim) {
	sort.Slice(claims, func(i, j int) bool { return claims[i].ClaimId < claims[j].ClaimId })
}
