// Package ingest implements the Ingestion / Validation Gate (§4.3): the
// sole entry point that turns raw documents into typed entities,
// enforcing the cross-reference invariants I1-I7 and emitting
// structured errors (fatal) or warnings (accepted).
package ingest

import (
	"fmt"

	"github.com/kittclouds/bce/pkg/bceerr"
	"github.com/kittclouds/bce/pkg/model"
	"github.com/kittclouds/bce/pkg/store"
)

// decodeCharacter converts a RawDocument into a typed Character,
// reporting every field-level problem as a structured error rather than
// stopping at the first (§4.3 step 4's "report all violations" policy
// is honored across the whole run; this function reports all problems
// within a single document).
func decodeCharacter(id model.EntityId, doc store.RawDocument) (model.Character, []*bceerr.Error, []bceerr.Warning) {
	var errs []*bceerr.Error
	var warns []bceerr.Warning

	docID, ok := doc.Str("id")
	if !ok || docID == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(id), "id", ""))
	} else if docID != string(id) {
		errs = append(errs, bceerr.New(bceerr.Validation, "document key does not equal entity.id").WithField(string(id), "id", docID))
	}
	if !model.ValidEntityID(string(id)) {
		errs = append(errs, bceerr.New(bceerr.Validation, "entity id is not valid lowercase snake_case").WithField(string(id), "id", string(id)))
	}

	name, ok := doc.Str("canonical_name")
	if !ok || name == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(id), "canonical_name", ""))
	}

	c := model.Character{Id: id, CanonicalName: name}

	if doc.IsMapShaped("relationships") {
		errs = append(errs, bceerr.New(bceerr.Validation, "legacy grouped-relationships shape is rejected; use a flat list").WithField(string(id), "relationships", ""))
	} else if relDocs, ok := doc.MapSlice("relationships"); ok {
		for i, rd := range relDocs {
			rel, relErrs := decodeRelationship(id, i, rd)
			errs = append(errs, relErrs...)
			c.Relationships = append(c.Relationships, rel)
		}
	}

	spDocs, ok := doc.MapSlice("source_profiles")
	if !ok || len(spDocs) == 0 {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field or empty list").WithField(string(id), "source_profiles", ""))
	}
	for i, spd := range spDocs {
		sp, spErrs, spWarns := decodeSourceProfile(id, i, spd)
		errs = append(errs, spErrs...)
		warns = append(warns, spWarns...)
		c.SourceProfiles = append(c.SourceProfiles, sp)
	}

	if aliases, ok := doc.StrSlice("aliases"); ok {
		c.Aliases = aliases
	}
	if roles, ok := doc.StrSlice("roles"); ok {
		c.Roles = roles
	}
	if tags, ok := doc.StrSlice("tags"); ok {
		for _, t := range tags {
			if model.NormalizeTag(t) == "" {
				errs = append(errs, bceerr.New(bceerr.Validation, "tag is empty after trim").WithField(string(id), "tags", t))
				continue
			}
			c.Tags = append(c.Tags, model.Tag(t))
		}
	}
	if citations, ok := doc.StrSlice("citations"); ok {
		c.Citations = citations
	}

	return c, errs, warns
}

func decodeSourceProfile(characterID model.EntityId, idx int, doc store.RawDocument) (model.SourceProfile, []*bceerr.Error, []bceerr.Warning) {
	var errs []*bceerr.Error
	var warns []bceerr.Warning
	field := fmt.Sprintf("source_profiles[%d]", idx)

	sid, ok := doc.Str("source_id")
	if !ok || sid == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(characterID), field+".source_id", ""))
	}

	sp := model.SourceProfile{SourceId: model.SourceId(sid)}

	traits, ok := doc.StrMap("traits")
	if !ok {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(characterID), field+".traits", ""))
	}
	sp.Traits = traits
	for k := range traits {
		if !model.IsRecognizedTrait(k) {
			warns = append(warns, bceerr.Warning{
				EntityID: string(characterID), FieldPath: field + ".traits." + k,
				Message: "trait key is not in the recognized vocabulary",
			})
		}
	}

	refs, ok := doc.StrSlice("references")
	if !ok {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(characterID), field+".references", ""))
	}
	for _, r := range refs {
		sp.References = append(sp.References, model.Reference(r))
	}

	if variantDocs, ok := doc.MapSlice("variants"); ok {
		for _, vd := range variantDocs {
			sp.Variants = append(sp.Variants, decodeVariant(vd))
		}
	}
	if citations, ok := doc.StrSlice("citations"); ok {
		sp.Citations = citations
	}

	return sp, errs, warns
}

func decodeRelationship(characterID model.EntityId, idx int, doc store.RawDocument) (model.Relationship, []*bceerr.Error) {
	var errs []*bceerr.Error
	field := fmt.Sprintf("relationships[%d]", idx)

	cid, ok := doc.Str("character_id")
	if !ok || cid == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(characterID), field+".character_id", ""))
	}
	typ, ok := doc.Str("type")
	if !ok || typ == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(characterID), field+".type", ""))
	}
	sources, ok := doc.StrSlice("sources")
	if !ok {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(characterID), field+".sources", ""))
	}
	refs, ok := doc.StrSlice("references")
	if !ok {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(characterID), field+".references", ""))
	}

	r := model.Relationship{CharacterId: model.EntityId(cid), Type: typ}
	for _, s := range sources {
		r.Sources = append(r.Sources, model.SourceId(s))
	}
	for _, ref := range refs {
		r.References = append(r.References, model.Reference(ref))
	}
	if notes, ok := doc.Str("notes"); ok {
		r.Notes = notes
	}
	return r, errs
}

func decodeVariant(doc store.RawDocument) model.TextualVariant {
	v := model.TextualVariant{}
	v.ManuscriptFamily, _ = doc.Str("manuscript_family")
	v.Reading, _ = doc.Str("reading")
	v.Significance, _ = doc.Str("significance")
	return v
}

func decodeEvent(id model.EntityId, doc store.RawDocument) (model.Event, []*bceerr.Error) {
	var errs []*bceerr.Error

	docID, ok := doc.Str("id")
	if !ok || docID == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(id), "id", ""))
	} else if docID != string(id) {
		errs = append(errs, bceerr.New(bceerr.Validation, "document key does not equal entity.id").WithField(string(id), "id", docID))
	}

	label, ok := doc.Str("label")
	if !ok || label == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(id), "label", ""))
	}

	e := model.Event{Id: id, Label: label}

	if participants, ok := doc.StrSlice("participants"); ok {
		for _, p := range participants {
			e.Participants = append(e.Participants, model.EntityId(p))
		}
	}
	if accDocs, ok := doc.MapSlice("accounts"); ok {
		for i, ad := range accDocs {
			acc, accErrs := decodeEventAccount(id, i, ad)
			errs = append(errs, accErrs...)
			e.Accounts = append(e.Accounts, acc)
		}
	}
	if parDocs, ok := doc.MapSlice("parallels"); ok {
		for _, pd := range parDocs {
			e.Parallels = append(e.Parallels, decodeParallel(pd))
		}
	}
	if tags, ok := doc.StrSlice("tags"); ok {
		for _, t := range tags {
			if model.NormalizeTag(t) == "" {
				errs = append(errs, bceerr.New(bceerr.Validation, "tag is empty after trim").WithField(string(id), "tags", t))
				continue
			}
			e.Tags = append(e.Tags, model.Tag(t))
		}
	}
	if citations, ok := doc.StrSlice("citations"); ok {
		e.Citations = citations
	}
	if variantDocs, ok := doc.MapSlice("textual_variants"); ok {
		for _, vd := range variantDocs {
			e.TextualVariants = append(e.TextualVariants, decodeVariant(vd))
		}
	}

	return e, errs
}

func decodeEventAccount(eventID model.EntityId, idx int, doc store.RawDocument) (model.EventAccount, []*bceerr.Error) {
	var errs []*bceerr.Error
	field := fmt.Sprintf("accounts[%d]", idx)

	sid, ok := doc.Str("source_id")
	if !ok || sid == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(eventID), field+".source_id", ""))
	}
	ref, ok := doc.Str("reference")
	if !ok || ref == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(eventID), field+".reference", ""))
	}
	summary, ok := doc.Str("summary")
	if !ok || summary == "" {
		errs = append(errs, bceerr.New(bceerr.Validation, "missing required field").WithField(string(eventID), field+".summary", ""))
	}

	acc := model.EventAccount{SourceId: model.SourceId(sid), Reference: model.Reference(ref), Summary: summary}
	if notes, ok := doc.Str("notes"); ok {
		acc.Notes = notes
	}
	if variantDocs, ok := doc.MapSlice("variants"); ok {
		for _, vd := range variantDocs {
			acc.Variants = append(acc.Variants, decodeVariant(vd))
		}
	}
	return acc, errs
}

func decodeParallel(doc store.RawDocument) model.Parallel {
	p := model.Parallel{}
	if sources, ok := doc.StrSlice("sources"); ok {
		for _, s := range sources {
			p.Sources = append(p.Sources, model.SourceId(s))
		}
	}
	p.Relationship, _ = doc.Str("relationship")
	if refs, ok := doc.StrMap("references"); ok {
		p.References = make(map[model.SourceId]model.Reference, len(refs))
		for k, v := range refs {
			p.References[model.SourceId(k)] = model.Reference(v)
		}
	}
	return p
}
