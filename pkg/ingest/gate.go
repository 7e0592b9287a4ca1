package ingest

import (
	"fmt"

	"github.com/kittclouds/bce/pkg/bceerr"
	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/model"
	"github.com/kittclouds/bce/pkg/store"
)

// LoadAll is the single entry point of the Ingestion / Validation Gate
// (§4.3): it enumerates every document through port, decodes it,
// enforces I1-I7, and returns a ready-to-use Snapshot or the full list
// of validation errors found in one run.
func LoadAll(port store.Port, runtime *hooks.Runtime) (*model.Snapshot, []*bceerr.Error) {
	ctx := hooks.NewContext(hooks.BeforeValidation)
	ctx = runtime.Dispatch(ctx)
	if ctx.Abort {
		return &model.Snapshot{Aborted: true, AbortedBy: ctx.AbortedBy}, nil
	}

	var errs []*bceerr.Error
	var warns []bceerr.Warning

	sources, err := port.LoadSources()
	if err != nil {
		return nil, []*bceerr.Error{bceerr.Wrap(bceerr.Validation, err, "failed to load source registry")}
	}
	sourceSet := make(map[model.SourceId]model.SourceMeta, len(sources))
	for _, sm := range sources {
		sourceSet[sm.SourceId] = sm
	}
	if len(sourceSet) == 0 {
		errs = append(errs, bceerr.New(bceerr.Validation, "source registry is empty or missing"))
	}

	charIDs, err := port.ListCharacterIDs()
	if err != nil {
		return nil, []*bceerr.Error{bceerr.Wrap(bceerr.Validation, err, "failed to list character ids")}
	}

	characters := make(map[model.EntityId]model.Character, len(charIDs))
	seenCharIDs := make(map[model.EntityId]bool, len(charIDs))
	for _, id := range charIDs {
		loadCtx := hooks.NewContext(hooks.BeforeCharacterLoad)
		loadCtx.Data["id"] = string(id)
		loadCtx = runtime.Dispatch(loadCtx)
		if loadCtx.Abort {
			errs = append(errs, bceerr.New(bceerr.DataNotFound, "aborted_by_hook").WithField(string(id), "", loadCtx.AbortedBy))
			continue
		}

		doc, err := port.LoadCharacterRaw(id)
		if err != nil {
			errs = append(errs, bceerr.New(bceerr.Validation, "failed to load character document").WithField(string(id), "", err.Error()))
			continue
		}
		if seenCharIDs[id] {
			errs = append(errs, bceerr.New(bceerr.Validation, "duplicate character id").WithField(string(id), "id", ""))
			continue
		}
		seenCharIDs[id] = true

		c, cErrs, cWarns := decodeCharacter(id, doc)
		errs = append(errs, cErrs...)
		warns = append(warns, cWarns...)
		characters[id] = c

		afterCtx := hooks.NewContext(hooks.AfterCharacterLoad)
		afterCtx.Data["id"] = string(id)
		runtime.Dispatch(afterCtx)
	}

	eventIDs, err := port.ListEventIDs()
	if err != nil {
		return nil, []*bceerr.Error{bceerr.Wrap(bceerr.Validation, err, "failed to list event ids")}
	}
	events := make(map[model.EntityId]model.Event, len(eventIDs))
	seenEventIDs := make(map[model.EntityId]bool, len(eventIDs))
	for _, id := range eventIDs {
		loadCtx := hooks.NewContext(hooks.BeforeEventLoad)
		loadCtx.Data["id"] = string(id)
		loadCtx = runtime.Dispatch(loadCtx)
		if loadCtx.Abort {
			errs = append(errs, bceerr.New(bceerr.DataNotFound, "aborted_by_hook").WithField(string(id), "", loadCtx.AbortedBy))
			continue
		}

		doc, err := port.LoadEventRaw(id)
		if err != nil {
			errs = append(errs, bceerr.New(bceerr.Validation, "failed to load event document").WithField(string(id), "", err.Error()))
			continue
		}
		if seenEventIDs[id] {
			errs = append(errs, bceerr.New(bceerr.Validation, "duplicate event id").WithField(string(id), "id", ""))
			continue
		}
		seenEventIDs[id] = true

		e, eErrs := decodeEvent(id, doc)
		errs = append(errs, eErrs...)
		events[id] = e

		afterCtx := hooks.NewContext(hooks.AfterEventLoad)
		afterCtx.Data["id"] = string(id)
		runtime.Dispatch(afterCtx)
	}

	errs = append(errs, crossReferenceCheck(characters, events, sourceSet)...)

	if len(errs) > 0 {
		vCtx := hooks.NewContext(hooks.ValidationError)
		vCtx.Data["count"] = len(errs)
		runtime.Dispatch(vCtx)
		return nil, errs
	}

	snap := &model.Snapshot{Characters: characters, Events: events, Sources: sourceSet}
	for _, w := range warns {
		snap.Warnings = append(snap.Warnings, w.String())
	}

	afterCtx := hooks.NewContext(hooks.AfterValidation)
	runtime.Dispatch(afterCtx)

	return snap, nil
}

// crossReferenceCheck enforces invariants I1-I4 and I7 in a single
// pass, reporting every violation found (§4.3 step 4). I5 (document key
// == entity.id) and I8 (tag non-emptiness) are enforced at decode time;
// I6 (duplicate ids) is checked in LoadAll's load loops.
func crossReferenceCheck(
	characters map[model.EntityId]model.Character,
	events map[model.EntityId]model.Event,
	sources map[model.SourceId]model.SourceMeta,
) []*bceerr.Error {
	var errs []*bceerr.Error

	checkSource := func(entityID, field string, sid model.SourceId) {
		if _, ok := sources[sid]; !ok {
			errs = append(errs, bceerr.New(bceerr.Validation, "source_id not present in source registry").WithField(entityID, field, string(sid)))
		}
	}

	for id, c := range characters {
		for i, sp := range c.SourceProfiles {
			checkSource(string(id), fmt.Sprintf("source_profiles[%d].source_id", i), sp.SourceId) // I1
		}
		for i, r := range c.Relationships {
			if _, ok := characters[r.CharacterId]; !ok { // I2
				errs = append(errs, bceerr.New(bceerr.Validation, "relationship.character_id does not resolve to an existing character").WithField(string(id), fmt.Sprintf("relationships[%d].character_id", i), string(r.CharacterId)))
			}
			for j, sid := range r.Sources {
				checkSource(string(id), fmt.Sprintf("relationships[%d].sources[%d]", i, j), sid) // I7
			}
		}
	}

	for id, e := range events {
		for i, p := range e.Participants {
			if _, ok := characters[p]; !ok { // I3
				errs = append(errs, bceerr.New(bceerr.Validation, "participant does not resolve to an existing character").WithField(string(id), fmt.Sprintf("participants[%d]", i), string(p)))
			}
		}
		for i, acc := range e.Accounts {
			checkSource(string(id), fmt.Sprintf("accounts[%d].source_id", i), acc.SourceId) // I4
		}
		for i, par := range e.Parallels {
			for j, sid := range par.Sources {
				checkSource(string(id), fmt.Sprintf("parallels[%d].sources[%d]", i, j), sid) // I7
			}
		}
	}

	return errs
}
