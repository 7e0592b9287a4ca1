// Package engine wires the nine core components into a single façade:
// lifecycle (startup/shutdown/reload), serialized writes over an
// immutable snapshot, and the read operations (query, search, dossier
// build, conflict detection) every embedder actually calls.
package engine

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kittclouds/bce/pkg/bceerr"
	"github.com/kittclouds/bce/pkg/config"
	"github.com/kittclouds/bce/pkg/dossier"
	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/index"
	"github.com/kittclouds/bce/pkg/ingest"
	"github.com/kittclouds/bce/pkg/model"
	"github.com/kittclouds/bce/pkg/search"
	"github.com/kittclouds/bce/pkg/store"
)

// Engine is the top-level façade. Readers call its methods concurrently
// against an atomically-published snapshot; writes are serialized by
// writeMu, matching §5's parallel-readers/serialized-writers model.
type Engine struct {
	port    store.Port
	hooks   *hooks.Runtime
	cache   *index.CacheRegistry
	log     *zap.Logger
	cfg     config.Config

	writeMu  sync.Mutex
	snapshot atomic.Pointer[state]
}

type state struct {
	snap *model.Snapshot
	idx  *index.Index
}

// New constructs an Engine and performs the initial load (§3.5: the
// source registry and every entity is loaded once at startup).
func New(port store.Port, cfg config.Config, runtime *hooks.Runtime, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if runtime == nil {
		runtime = hooks.New(log)
	}
	runtime.SetEnabled(cfg.HooksEnabled)

	cache, err := index.NewCacheRegistry(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{port: port, hooks: runtime, cache: cache, log: log, cfg: cfg}

	startupCtx := hooks.NewContext(hooks.Startup)
	runtime.Dispatch(startupCtx)

	if err := e.reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Shutdown fires the shutdown hook point. It does not close the storage
// port; ownership of the port's lifecycle belongs to whoever constructed
// it.
func (e *Engine) Shutdown() {
	shutdownCtx := hooks.NewContext(hooks.Shutdown)
	e.hooks.Dispatch(shutdownCtx)
}

// reload runs the ingestion gate and atomically publishes a new
// snapshot plus a freshly built index. It is called at construction
// time and after every successful write (§5: writes publish a new
// snapshot atomically, then invalidate caches).
func (e *Engine) reload() error {
	snap, errs := ingest.LoadAll(e.port, e.hooks)
	if len(errs) > 0 {
		list := make(bceerr.List, len(errs))
		copy(list, errs)
		return list
	}
	if snap.Aborted {
		e.log.Warn("reload short-circuited by before_validation hook", zap.String("aborted_by", snap.AbortedBy))
		return bceerr.New(bceerr.Validation, "reload aborted by hook").WithField("", "", snap.AbortedBy)
	}
	idx := index.Build(snap)
	e.snapshot.Store(&state{snap: snap, idx: idx})
	e.cache.InvalidateAll()
	return nil
}

// Reload re-runs ingestion against the current storage port state,
// mirroring §3.5's "may be replaced atomically by an administrative
// reload" lifecycle. Safe to call concurrently with reads; write
// operations are serialized against it.
func (e *Engine) Reload() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.reload()
}

func (e *Engine) current() *state {
	return e.snapshot.Load()
}

// Snapshot returns the currently published snapshot for read-only
// inspection.
func (e *Engine) Snapshot() *model.Snapshot {
	return e.current().snap
}

// Index returns the currently published index.
func (e *Engine) Index() *index.Index {
	return e.current().idx
}

// Hooks exposes the runtime so embedders can register handlers and
// hook_plugins before or after construction.
func (e *Engine) Hooks() *hooks.Runtime { return e.hooks }

// Cache exposes the cache registry for components that register their
// own invalidators.
func (e *Engine) Cache() *index.CacheRegistry { return e.cache }

// LoadCharacter returns a character from the current snapshot, firing
// the before/after load hooks and honoring before_character_load abort
// (§7: DataNotFound-like "aborted_by_hook").
func (e *Engine) LoadCharacter(id model.EntityId) (model.Character, error) {
	beforeCtx := hooks.NewContext(hooks.BeforeCharacterLoad)
	beforeCtx.Data["id"] = string(id)
	beforeCtx = e.hooks.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return model.Character{}, bceerr.New(bceerr.DataNotFound, "aborted_by_hook").WithField(string(id), "", beforeCtx.AbortedBy)
	}

	c, ok := e.current().snap.Characters[id]
	if !ok {
		return model.Character{}, bceerr.New(bceerr.DataNotFound, "character not found").WithField(string(id), "", "")
	}

	afterCtx := hooks.NewContext(hooks.AfterCharacterLoad)
	afterCtx.Data["id"] = string(id)
	e.hooks.Dispatch(afterCtx)

	return c, nil
}

// LoadEvent mirrors LoadCharacter for events.
func (e *Engine) LoadEvent(id model.EntityId) (model.Event, error) {
	beforeCtx := hooks.NewContext(hooks.BeforeEventLoad)
	beforeCtx.Data["id"] = string(id)
	beforeCtx = e.hooks.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return model.Event{}, bceerr.New(bceerr.DataNotFound, "aborted_by_hook").WithField(string(id), "", beforeCtx.AbortedBy)
	}

	ev, ok := e.current().snap.Events[id]
	if !ok {
		return model.Event{}, bceerr.New(bceerr.DataNotFound, "event not found").WithField(string(id), "", "")
	}

	afterCtx := hooks.NewContext(hooks.AfterEventLoad)
	afterCtx.Data["id"] = string(id)
	e.hooks.Dispatch(afterCtx)

	return ev, nil
}

// SaveCharacterRaw writes a raw document through the storage port and
// reloads the snapshot, honoring before_character_save abort (§7:
// Storage error carrying the hook identifier, underlying store
// untouched) and firing after_character_save on success.
func (e *Engine) SaveCharacterRaw(id model.EntityId, doc store.RawDocument) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	beforeCtx := hooks.NewContext(hooks.BeforeCharacterSave)
	beforeCtx.Data["id"] = string(id)
	beforeCtx.Data["doc"] = doc
	beforeCtx = e.hooks.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return bceerr.New(bceerr.Storage, "save refused by hook").WithField(string(id), "", beforeCtx.AbortedBy)
	}

	if err := e.port.SaveCharacterRaw(id, doc); err != nil {
		return err
	}
	if err := e.reload(); err != nil {
		return err
	}

	afterCtx := hooks.NewContext(hooks.AfterCharacterSave)
	afterCtx.Data["id"] = string(id)
	e.hooks.Dispatch(afterCtx)
	return nil
}

// SaveEventRaw mirrors SaveCharacterRaw for events.
func (e *Engine) SaveEventRaw(id model.EntityId, doc store.RawDocument) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	beforeCtx := hooks.NewContext(hooks.BeforeEventSave)
	beforeCtx.Data["id"] = string(id)
	beforeCtx.Data["doc"] = doc
	beforeCtx = e.hooks.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return bceerr.New(bceerr.Storage, "save refused by hook").WithField(string(id), "", beforeCtx.AbortedBy)
	}

	if err := e.port.SaveEventRaw(id, doc); err != nil {
		return err
	}
	if err := e.reload(); err != nil {
		return err
	}

	afterCtx := hooks.NewContext(hooks.AfterEventSave)
	afterCtx.Data["id"] = string(id)
	e.hooks.Dispatch(afterCtx)
	return nil
}

// BuildCharacterDossier composes a dossier for the given character id
// from the current snapshot.
func (e *Engine) BuildCharacterDossier(id model.EntityId) (dossier.CharacterDossier, error) {
	st := e.current()
	c, ok := st.snap.Characters[id]
	if !ok {
		return dossier.CharacterDossier{}, bceerr.New(bceerr.DataNotFound, "character not found").WithField(string(id), "", "")
	}
	return dossier.BuildCharacterDossier(c, st.snap, e.hooks), nil
}

// BuildEventDossier composes a dossier for the given event id from the
// current snapshot.
func (e *Engine) BuildEventDossier(id model.EntityId) (dossier.EventDossier, error) {
	st := e.current()
	ev, ok := st.snap.Events[id]
	if !ok {
		return dossier.EventDossier{}, bceerr.New(bceerr.DataNotFound, "event not found").WithField(string(id), "", "")
	}
	return dossier.BuildEventDossier(ev, e.hooks), nil
}

// Search runs the Search Operation against the current snapshot and
// index.
func (e *Engine) Search(query string, scope search.Scope) []search.Result {
	st := e.current()
	return search.SearchAll(query, scope, st.snap, st.idx, e.hooks)
}
