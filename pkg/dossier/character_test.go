package dossier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/model"
)

// TestMinimalCharacterDossier covers the minimal-character scenario: a
// single-source character with no conflicts still produces a complete,
// schema-stamped dossier.
func TestMinimalCharacterDossier(t *testing.T) {
	c := model.Character{
		Id:            "andrew",
		CanonicalName: "Andrew",
		SourceProfiles: []model.SourceProfile{
			{SourceId: "mark", Traits: map[string]string{"role": "disciple"}, References: []model.Reference{"Mark 1:16"}},
		},
	}
	snap := &model.Snapshot{Sources: map[model.SourceId]model.SourceMeta{"mark": {SourceId: "mark"}}}
	runtime := hooks.New(nil)

	d := BuildCharacterDossier(c, snap, runtime)

	assert.Equal(t, SchemaVersion, d.SchemaVersion)
	assert.False(t, d.Aborted)
	require.Len(t, d.SourceIds, 1)
	assert.Equal(t, model.SourceId("mark"), d.SourceIds[0])
	assert.Empty(t, d.ClaimGraph.Conflicts, "a single-source character has nothing to disagree with")
}

func TestBeforeDossierBuildAbortReturnsMinimalRecord(t *testing.T) {
	c := model.Character{Id: "andrew", CanonicalName: "Andrew"}
	snap := &model.Snapshot{}
	runtime := hooks.New(nil)
	runtime.Register(hooks.BeforeDossierBuild, 0, "abort", func(ctx *hooks.Context) *hooks.Context {
		ctx.Abort = true
		return ctx
	})

	d := BuildCharacterDossier(c, snap, runtime)
	assert.True(t, d.Aborted)
	assert.Equal(t, model.EntityId("andrew"), d.Id)
	assert.Equal(t, SchemaVersion, d.SchemaVersion)
	assert.Empty(t, d.CanonicalName, "an aborted dossier must not carry computed fields")
}

// TestTraitConflictRestrictedToTraitFields ensures relationship-derived
// conflicts never leak into trait_conflict_summaries.
func TestTraitConflictRestrictedToTraitFields(t *testing.T) {
	c := model.Character{
		Id:            "james",
		CanonicalName: "James",
		SourceProfiles: []model.SourceProfile{
			{SourceId: "mark", Traits: map[string]string{"role": "apostle"}},
			{SourceId: "matthew", Traits: map[string]string{"role": "tax collector"}},
		},
		Relationships: []model.Relationship{
			{CharacterId: "john", Type: "brother", Sources: []model.SourceId{"mark"}},
			{CharacterId: "joses", Type: "brother", Sources: []model.SourceId{"matthew"}},
		},
	}
	snap := &model.Snapshot{Sources: map[model.SourceId]model.SourceMeta{}}
	runtime := hooks.New(nil)

	d := BuildCharacterDossier(c, snap, runtime)

	_, ok := d.TraitConflictSummaries["role"]
	assert.True(t, ok, "expected a trait conflict summary for role")
	var sawRelationshipConflict bool
	for _, cs := range d.ClaimGraph.Conflicts {
		if cs.Field == "relationship:brother" {
			sawRelationshipConflict = true
		}
	}
	assert.True(t, sawRelationshipConflict, "expected the claim graph to carry the relationship conflict")
	_, leaked := d.TraitConflictSummaries["relationship:brother"]
	assert.False(t, leaked, "relationship conflicts must not appear in trait_conflict_summaries")
}
