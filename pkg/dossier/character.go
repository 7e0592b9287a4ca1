// Package dossier implements the Dossier Builder (§4.7): pure functions
// composing per-entity aggregate views from a snapshot, the claim-graph
// builder and the conflict detector. Dossiers are never computed by the
// storage port directly — this package consumes already-built snapshot,
// claim and conflict results.
package dossier

import (
	"sort"

	"github.com/kittclouds/bce/pkg/claims"
	"github.com/kittclouds/bce/pkg/conflict"
	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/model"
)

// SchemaVersion is the mandatory, stable schema tag of §4.7.
const SchemaVersion = "1.0"

// ClaimGraph is the embedded {claims, conflicts} pair every dossier
// carries (§4.6.4).
type ClaimGraph struct {
	Claims    []model.Claim      `json:"claims"`
	Conflicts []conflict.Summary `json:"conflicts"`
}

// CharacterDossier is the stable key set of §4.7.
type CharacterDossier struct {
	Id                     model.EntityId                         `json:"id"`
	CanonicalName          string                                  `json:"canonical_name"`
	Aliases                []string                                `json:"aliases,omitempty"`
	Roles                  []string                                `json:"roles,omitempty"`
	SourceIds              []model.SourceId                        `json:"source_ids"`
	SourceMetadata         map[model.SourceId]model.SourceMeta     `json:"source_metadata"`
	TraitsBySource         map[model.SourceId]map[string]string    `json:"traits_by_source"`
	ReferencesBySource     map[model.SourceId][]model.Reference    `json:"references_by_source"`
	VariantsBySource       map[model.SourceId][]model.TextualVariant `json:"variants_by_source"`
	CitationsBySource      map[model.SourceId][]string             `json:"citations_by_source"`
	TraitComparison        map[string]map[model.SourceId]string    `json:"trait_comparison"`
	TraitConflicts         map[string]map[model.SourceId]string    `json:"trait_conflicts"`
	TraitConflictSummaries map[string]conflict.Summary             `json:"trait_conflict_summaries"`
	ClaimGraph             ClaimGraph                               `json:"claim_graph"`
	Relationships          []model.Relationship                    `json:"relationships,omitempty"`
	Parallels              []model.Parallel                        `json:"parallels,omitempty"`
	SchemaVersion           string                                 `json:"schema_version"`
	Aborted                bool                                    `json:"aborted,omitempty"`
}

// BuildCharacterDossier composes a CharacterDossier per §4.7. snap
// provides the source registry for SourceMetadata; runtime fires
// before_dossier_build, dossier_enrich (between field computation and
// finalization) and after_dossier_build (§4.8.4).
func BuildCharacterDossier(c model.Character, snap *model.Snapshot, runtime *hooks.Runtime) CharacterDossier {
	beforeCtx := hooks.NewContext(hooks.BeforeDossierBuild)
	beforeCtx.Data["id"] = string(c.Id)
	beforeCtx = runtime.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return CharacterDossier{Id: c.Id, SchemaVersion: SchemaVersion, Aborted: true}
	}

	d := CharacterDossier{
		Id:                     c.Id,
		CanonicalName:          c.CanonicalName,
		Aliases:                c.Aliases,
		Roles:                  c.Roles,
		SourceMetadata:         make(map[model.SourceId]model.SourceMeta),
		TraitsBySource:         make(map[model.SourceId]map[string]string),
		ReferencesBySource:     make(map[model.SourceId][]model.Reference),
		VariantsBySource:       make(map[model.SourceId][]model.TextualVariant),
		CitationsBySource:      make(map[model.SourceId][]string),
		TraitComparison:        make(map[string]map[model.SourceId]string),
		TraitConflicts:         make(map[string]map[model.SourceId]string),
		TraitConflictSummaries: make(map[string]conflict.Summary),
		Relationships:          c.Relationships,
		SchemaVersion:          SchemaVersion,
	}

	sourceSet := make(map[model.SourceId]bool)
	for _, sp := range c.SourceProfiles {
		sourceSet[sp.SourceId] = true
		d.TraitsBySource[sp.SourceId] = sp.Traits
		d.ReferencesBySource[sp.SourceId] = sp.References
		if len(sp.Variants) > 0 {
			d.VariantsBySource[sp.SourceId] = sp.Variants
		}
		if len(sp.Citations) > 0 {
			d.CitationsBySource[sp.SourceId] = sp.Citations
		}
		if sm, ok := snap.Sources[sp.SourceId]; ok {
			d.SourceMetadata[sp.SourceId] = sm
		}
		for trait, value := range sp.Traits {
			if d.TraitComparison[trait] == nil {
				d.TraitComparison[trait] = make(map[model.SourceId]string)
			}
			d.TraitComparison[trait][sp.SourceId] = value
		}
	}
	for sid := range sourceSet {
		d.SourceIds = append(d.SourceIds, sid)
	}
	sort.Slice(d.SourceIds, func(i, j int) bool { return d.SourceIds[i] < d.SourceIds[j] })

	claimList := claims.BuildCharacterClaims(c)
	conflicts := conflict.Detect(claimList, runtime)
	d.ClaimGraph = ClaimGraph{Claims: claimList, Conflicts: conflicts}

	for _, cs := range conflicts {
		if _, isTrait := d.TraitComparison[cs.Field]; !isTrait {
			continue
		}
		d.TraitConflictSummaries[cs.Field] = cs
		restricted := make(map[model.SourceId]string)
		for sidStr, val := range cs.Sources {
			restricted[model.SourceId(sidStr)] = val
		}
		d.TraitConflicts[cs.Field] = restricted
	}

	enrichCtx := hooks.NewContext(hooks.DossierEnrich)
	enrichCtx.Data["id"] = string(c.Id)
	enrichCtx.Data["dossier_kind"] = "character"
	runtime.Dispatch(enrichCtx)

	afterCtx := hooks.NewContext(hooks.AfterDossierBuild)
	afterCtx.Data["id"] = string(c.Id)
	runtime.Dispatch(afterCtx)

	return d
}
