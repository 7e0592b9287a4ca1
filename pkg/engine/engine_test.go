package engine

import (
	"testing"

	"github.com/kittclouds/bce/pkg/config"
	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/model"
	"github.com/kittclouds/bce/pkg/search"
	"github.com/kittclouds/bce/pkg/store"
)

func charDoc(id, name, sourceID string, tags ...string) store.RawDocument {
	doc := store.RawDocument{
		"id":             id,
		"canonical_name": name,
		"source_profiles": []any{
			map[string]any{
				"source_id":  sourceID,
				"traits":     map[string]any{"role": "disciple"},
				"references": []any{"Mark 1:16"},
			},
		},
	}
	if len(tags) > 0 {
		tagVals := make([]any, len(tags))
		for i, t := range tags {
			tagVals[i] = t
		}
		doc["tags"] = tagVals
	}
	return doc
}

func newTestEngine(t *testing.T) (*Engine, *store.MemoryPort) {
	t.Helper()
	port := store.NewMemoryPort()
	port.Hydrate(
		map[model.EntityId]store.RawDocument{"andrew": charDoc("andrew", "Andrew", "mark", "Apocalyptic")},
		nil,
		[]model.SourceMeta{{SourceId: "mark"}},
	)
	e, err := New(port, config.Defaults(), hooks.New(nil), nil)
	if err != nil {
		t.Fatalf("unexpected error constructing engine: %v", err)
	}
	return e, port
}

func TestEngineLoadsCharacterAtStartup(t *testing.T) {
	e, _ := newTestEngine(t)
	c, err := e.LoadCharacter("andrew")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CanonicalName != "Andrew" {
		t.Fatalf("expected Andrew, got %+v", c)
	}
}

// TestSaveAbortedByHookLeavesStoreUntouched is the hook-abort-on-save
// scenario: a before_character_save hook that aborts must prevent the
// write and leave the published snapshot unchanged.
func TestSaveAbortedByHookLeavesStoreUntouched(t *testing.T) {
	e, port := newTestEngine(t)
	e.Hooks().Register(hooks.BeforeCharacterSave, 0, "refuse", func(ctx *hooks.Context) *hooks.Context {
		ctx.Abort = true
		return ctx
	})

	err := e.SaveCharacterRaw("andrew", charDoc("andrew", "Andrew Renamed", "mark"))
	if err == nil {
		t.Fatalf("expected save to be refused by hook")
	}

	doc, loadErr := port.LoadCharacterRaw("andrew")
	if loadErr != nil {
		t.Fatalf("unexpected error reloading from store: %v", loadErr)
	}
	name, _ := doc.Str("canonical_name")
	if name != "Andrew" {
		t.Fatalf("expected underlying store to be untouched, got %v", doc)
	}

	c, _ := e.LoadCharacter("andrew")
	if c.CanonicalName != "Andrew" {
		t.Fatalf("expected published snapshot to be untouched, got %+v", c)
	}
}

func TestSaveSucceedsAndReloadsSnapshot(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.SaveCharacterRaw("andrew", charDoc("andrew", "Andrew Renamed", "mark")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := e.LoadCharacter("andrew")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CanonicalName != "Andrew Renamed" {
		t.Fatalf("expected reload to pick up the new name, got %+v", c)
	}
}

// TestSearchTagCaseInsensitivityEndToEnd is scenario 6 exercised through
// the full engine rather than just the index layer.
func TestSearchTagCaseInsensitivityEndToEnd(t *testing.T) {
	e, _ := newTestEngine(t)
	results := e.Search("APOCALYPTIC", search.Scope{})
	found := false
	for _, r := range results {
		if r.Id == "andrew" && r.MatchIn == search.MatchTags {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected case-insensitive tag match for andrew, got %v", results)
	}
}

func TestBuildCharacterDossierThroughEngine(t *testing.T) {
	e, _ := newTestEngine(t)
	d, err := e.BuildCharacterDossier("andrew")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Id != "andrew" {
		t.Fatalf("expected dossier for andrew, got %+v", d)
	}
}
