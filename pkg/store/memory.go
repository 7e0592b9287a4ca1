package store

import (
	"sort"
	"sync"

	"github.com/kittclouds/bce/pkg/bceerr"
	"github.com/kittclouds/bce/pkg/model"
)

// MemoryPort is the default Storage Backend Port adapter: raw documents
// held in process memory behind a single RWMutex, mirroring the
// hydrate/upsert/get shape of a bulk-loaded in-memory document
// store, generalized from one document kind to characters, events and
// the source registry.
type MemoryPort struct {
	mu         sync.RWMutex
	characters map[model.EntityId]RawDocument
	events     map[model.EntityId]RawDocument
	sources    []model.SourceMeta
}

// NewMemoryPort creates an empty in-memory storage adapter.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{
		characters: make(map[model.EntityId]RawDocument),
		events:     make(map[model.EntityId]RawDocument),
	}
}

// Hydrate bulk-loads the adapter's state, used by tests and by callers
// that have their own document source (e.g. embedded fixtures).
func (p *MemoryPort) Hydrate(characters, events map[model.EntityId]RawDocument, sources []model.SourceMeta) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, doc := range characters {
		p.characters[id] = doc
	}
	for id, doc := range events {
		p.events[id] = doc
	}
	p.sources = sources
}

func (p *MemoryPort) ListCharacterIDs() ([]model.EntityId, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return sortedKeys(p.characters), nil
}

func (p *MemoryPort) ListEventIDs() ([]model.EntityId, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return sortedKeys(p.events), nil
}

func (p *MemoryPort) LoadCharacterRaw(id model.EntityId) (RawDocument, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	doc, ok := p.characters[id]
	if !ok {
		return nil, bceerr.New(bceerr.DataNotFound, "character not found").WithField(string(id), "", "")
	}
	return doc, nil
}

func (p *MemoryPort) LoadEventRaw(id model.EntityId) (RawDocument, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	doc, ok := p.events[id]
	if !ok {
		return nil, bceerr.New(bceerr.DataNotFound, "event not found").WithField(string(id), "", "")
	}
	return doc, nil
}

func (p *MemoryPort) SaveCharacterRaw(id model.EntityId, doc RawDocument) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.characters[id] = doc
	return nil
}

func (p *MemoryPort) SaveEventRaw(id model.EntityId, doc RawDocument) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[id] = doc
	return nil
}

func (p *MemoryPort) LoadSources() ([]model.SourceMeta, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.SourceMeta, len(p.sources))
	copy(out, p.sources)
	return out, nil
}

func sortedKeys(m map[model.EntityId]RawDocument) []model.EntityId {
	ids := make([]model.EntityId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
