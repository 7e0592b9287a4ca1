package search

import (
	"testing"

	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/index"
	"github.com/kittclouds/bce/pkg/model"
)

func fixtureSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Characters: map[model.EntityId]model.Character{
			"andrew": {
				Id: "andrew", CanonicalName: "Andrew",
				Tags: []model.Tag{"Apocalyptic"},
				SourceProfiles: []model.SourceProfile{
					{SourceId: "mark", Traits: map[string]string{"role": "fisherman"}, References: []model.Reference{"Mark 1:16"}},
				},
			},
		},
		Events: map[model.EntityId]model.Event{
			"calling": {
				Id: "calling", Label: "The Calling",
				Accounts: []model.EventAccount{
					{SourceId: "mark", Reference: "Mark 1:16-20", Summary: "Jesus calls fishermen by the sea"},
				},
			},
		},
	}
}

// TestTagSeededSearchIsCaseInsensitive is P9 applied to the search
// operation's tag-seeded path.
func TestTagSeededSearchIsCaseInsensitive(t *testing.T) {
	snap := fixtureSnapshot()
	idx := index.Build(snap)
	runtime := hooks.New(nil)

	results := SearchAll("APOCALYPTIC", Scope{}, snap, idx, runtime)
	found := false
	for _, r := range results {
		if r.Type == TypeCharacter && r.Id == "andrew" && r.MatchIn == MatchTags {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected tag-seeded match for andrew, got %v", results)
	}
}

func TestLinearScanMatchesTraitValue(t *testing.T) {
	snap := fixtureSnapshot()
	idx := index.Build(snap)
	runtime := hooks.New(nil)

	results := SearchAll("fisherman", Scope{}, snap, idx, runtime)
	found := false
	for _, r := range results {
		if r.Type == TypeCharacter && r.MatchIn == MatchTraits && r.Field == "role" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a trait match, got %v", results)
	}
}

func TestScopeRestrictsMatchSites(t *testing.T) {
	snap := fixtureSnapshot()
	idx := index.Build(snap)
	runtime := hooks.New(nil)

	results := SearchAll("fisherman", Scope{MatchSites: []MatchIn{MatchAccounts}}, snap, idx, runtime)
	for _, r := range results {
		if r.MatchIn == MatchTraits {
			t.Fatalf("expected trait matches to be excluded by scope, got %v", results)
		}
	}
}

func TestSearchResultFilterHookCanDrop(t *testing.T) {
	snap := fixtureSnapshot()
	idx := index.Build(snap)
	runtime := hooks.New(nil)
	runtime.Register(hooks.SearchResultFilter, 0, "drop-andrew", func(ctx *hooks.Context) *hooks.Context {
		if ctx.Data["id"] == "andrew" {
			ctx.Data["drop"] = true
		}
		return ctx
	})

	results := SearchAll("fisherman", Scope{}, snap, idx, runtime)
	for _, r := range results {
		if r.Id == "andrew" {
			t.Fatalf("expected andrew's results to be dropped by the filter hook")
		}
	}
}

func TestBeforeSearchAbortYieldsNoResults(t *testing.T) {
	snap := fixtureSnapshot()
	idx := index.Build(snap)
	runtime := hooks.New(nil)
	runtime.Register(hooks.BeforeSearch, 0, "abort", func(ctx *hooks.Context) *hooks.Context {
		ctx.Abort = true
		return ctx
	})

	if got := SearchAll("fisherman", Scope{}, snap, idx, runtime); got != nil {
		t.Fatalf("expected nil results on abort, got %v", got)
	}
}
