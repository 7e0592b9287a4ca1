// Package index builds and serves the in-memory Query & Index Layer
// (§4.4): tag/role/source/participant indexes over a loaded snapshot,
// plus deterministic id-sorted enumeration.
package index

import (
	"sort"

	"github.com/kittclouds/bce/pkg/model"
)

// Index holds every eagerly-built lookup table of §4.4. It is rebuilt
// wholesale on any write through the storage port; there is no
// incremental update path, matching the "rebuilt on any write" policy
// the spec calls for over a bounded corpus.
type Index struct {
	byTag           map[string]map[model.EntityId]bool // lowercased tag -> ids (characters and events share the keyspace, disambiguated by caller)
	byRole          map[string]map[model.EntityId]bool
	bySourceChar    map[model.SourceId]map[model.EntityId]bool
	bySourceEvent   map[model.SourceId]map[model.EntityId]bool
	byParticipant   map[model.EntityId]map[model.EntityId]bool // character id -> event ids
	charIDsSorted   []model.EntityId
	eventIDsSorted  []model.EntityId
}

// Build constructs an Index from a snapshot in one pass.
func Build(snap *model.Snapshot) *Index {
	idx := &Index{
		byTag:         make(map[string]map[model.EntityId]bool),
		byRole:        make(map[string]map[model.EntityId]bool),
		bySourceChar:  make(map[model.SourceId]map[model.EntityId]bool),
		bySourceEvent: make(map[model.SourceId]map[model.EntityId]bool),
		byParticipant: make(map[model.EntityId]map[model.EntityId]bool),
	}

	idx.charIDsSorted = snap.SortedCharacterIDs()
	idx.eventIDsSorted = snap.SortedEventIDs()

	for _, id := range idx.charIDsSorted {
		c := snap.Characters[id]
		for _, t := range c.Tags {
			idx.addTag(string(t), id)
		}
		for _, role := range c.Roles {
			idx.addSet(idx.byRole, role, id)
		}
		for _, sp := range c.SourceProfiles {
			idx.addSourceChar(sp.SourceId, id)
		}
	}

	for _, id := range idx.eventIDsSorted {
		e := snap.Events[id]
		for _, t := range e.Tags {
			idx.addTag(string(t), id)
		}
		for _, acc := range e.Accounts {
			idx.addSourceEvent(acc.SourceId, id)
		}
		for _, p := range e.Participants {
			if idx.byParticipant[p] == nil {
				idx.byParticipant[p] = make(map[model.EntityId]bool)
			}
			idx.byParticipant[p][id] = true
		}
	}

	return idx
}

func (idx *Index) addTag(tag string, id model.EntityId) {
	idx.addSet(idx.byTag, model.NormalizeTag(tag), id)
}

func (idx *Index) addSet(m map[string]map[model.EntityId]bool, key string, id model.EntityId) {
	if m[key] == nil {
		m[key] = make(map[model.EntityId]bool)
	}
	m[key][id] = true
}

func (idx *Index) addSourceChar(sid model.SourceId, id model.EntityId) {
	if idx.bySourceChar[sid] == nil {
		idx.bySourceChar[sid] = make(map[model.EntityId]bool)
	}
	idx.bySourceChar[sid][id] = true
}

func (idx *Index) addSourceEvent(sid model.SourceId, id model.EntityId) {
	if idx.bySourceEvent[sid] == nil {
		idx.bySourceEvent[sid] = make(map[model.EntityId]bool)
	}
	idx.bySourceEvent[sid][id] = true
}

// ListCharactersWithTag returns character ids tagged with t, compared
// case-insensitively (P9).
func (idx *Index) ListCharactersWithTag(t string) []model.EntityId {
	return idx.filterSorted(idx.byTag[model.NormalizeTag(t)], idx.charIDsSorted)
}

// ListEventsWithTag returns event ids tagged with t, compared
// case-insensitively (P9).
func (idx *Index) ListEventsWithTag(t string) []model.EntityId {
	return idx.filterSorted(idx.byTag[model.NormalizeTag(t)], idx.eventIDsSorted)
}

// ListEventsForCharacter returns, in sorted order, every event a
// character participates in.
func (idx *Index) ListEventsForCharacter(id model.EntityId) []model.EntityId {
	return idx.filterSorted(idx.byParticipant[id], idx.eventIDsSorted)
}

// ListCharactersWithRole returns character ids matching role exactly.
func (idx *Index) ListCharactersWithRole(role string) []model.EntityId {
	return idx.filterSorted(idx.byRole[role], idx.charIDsSorted)
}

// ListCharactersBySource returns character ids that have a source
// profile from the given source.
func (idx *Index) ListCharactersBySource(sid model.SourceId) []model.EntityId {
	return idx.filterSorted(idx.bySourceChar[sid], idx.charIDsSorted)
}

// ListEventsBySource returns event ids with an account from the given
// source.
func (idx *Index) ListEventsBySource(sid model.SourceId) []model.EntityId {
	return idx.filterSorted(idx.bySourceEvent[sid], idx.eventIDsSorted)
}

// IterCharacters returns all character ids, id-sorted.
func (idx *Index) IterCharacters() []model.EntityId { return idx.charIDsSorted }

// IterEvents returns all event ids, id-sorted.
func (idx *Index) IterEvents() []model.EntityId { return idx.eventIDsSorted }

// IsKnownTag reports whether t (case-insensitively) names a tag present
// anywhere in the index, used by the Search Operation to decide whether
// to seed from the tag index (§4.9 step 2).
func (idx *Index) IsKnownTag(t string) bool {
	_, ok := idx.byTag[model.NormalizeTag(t)]
	return ok
}

func (idx *Index) filterSorted(set map[model.EntityId]bool, universe []model.EntityId) []model.EntityId {
	if len(set) == 0 {
		return nil
	}
	out := make([]model.EntityId, 0, len(set))
	for _, id := range universe {
		if set[id] {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
