// Package search implements the Search Operation (§4.9): tag-seeded O(1)
// lookups combined with a linear case-insensitive substring scan across
// trait keys/values, references, account summaries, notes and tags,
// filtered and ranked through the hook runtime.
package search

import (
	"sort"
	"strings"

	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/index"
	"github.com/kittclouds/bce/pkg/model"
)

// MatchIn is the closed set of match sites §4.9 names.
type MatchIn string

const (
	MatchTraits     MatchIn = "traits"
	MatchReferences MatchIn = "references"
	MatchAccounts   MatchIn = "accounts"
	MatchNotes      MatchIn = "notes"
	MatchTags       MatchIn = "tags"
)

// EntityType discriminates a result's subject kind.
type EntityType string

const (
	TypeCharacter EntityType = "character"
	TypeEvent     EntityType = "event"
)

// Result is one match record of §4.9.
type Result struct {
	Type    EntityType `json:"type"`
	Id      model.EntityId `json:"id"`
	MatchIn MatchIn    `json:"match_in"`
	Field   string     `json:"field,omitempty"`
	Snippet string     `json:"snippet,omitempty"`
}

// Scope restricts a search to character ids, event ids, and/or the
// match sites considered. A nil/empty slice means "no restriction".
type Scope struct {
	CharacterIDs []model.EntityId
	EventIDs     []model.EntityId
	MatchSites   []MatchIn
}

func (s Scope) allowsSite(site MatchIn) bool {
	if len(s.MatchSites) == 0 {
		return true
	}
	for _, m := range s.MatchSites {
		if m == site {
			return true
		}
	}
	return false
}

func (s Scope) allowsCharacter(id model.EntityId) bool {
	return allowsID(s.CharacterIDs, id)
}

func (s Scope) allowsEvent(id model.EntityId) bool {
	return allowsID(s.EventIDs, id)
}

func allowsID(universe []model.EntityId, id model.EntityId) bool {
	if len(universe) == 0 {
		return true
	}
	for _, u := range universe {
		if u == id {
			return true
		}
	}
	return false
}

// SearchAll implements the five-step algorithm of §4.9.
func SearchAll(query string, scope Scope, snap *model.Snapshot, idx *index.Index, runtime *hooks.Runtime) []Result {
	beforeCtx := hooks.NewContext(hooks.BeforeSearch)
	beforeCtx.Data["query"] = query
	beforeCtx = runtime.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return nil
	}

	seen := make(map[string]bool)
	var results []Result

	add := func(r Result) {
		key := string(r.Type) + "\x00" + string(r.Id) + "\x00" + string(r.MatchIn) + "\x00" + r.Field
		if seen[key] {
			return
		}
		seen[key] = true
		results = append(results, r)
	}

	if scope.allowsSite(MatchTags) && idx.IsKnownTag(query) {
		for _, id := range idx.ListCharactersWithTag(query) {
			if scope.allowsCharacter(id) {
				add(Result{Type: TypeCharacter, Id: id, MatchIn: MatchTags, Field: "tags"})
			}
		}
		for _, id := range idx.ListEventsWithTag(query) {
			if scope.allowsEvent(id) {
				add(Result{Type: TypeEvent, Id: id, MatchIn: MatchTags, Field: "tags"})
			}
		}
	}

	needle := strings.ToLower(query)

	for _, id := range snap.SortedCharacterIDs() {
		if !scope.allowsCharacter(id) {
			continue
		}
		c := snap.Characters[id]
		scanCharacter(c, needle, scope, add)
	}

	for _, id := range snap.SortedEventIDs() {
		if !scope.allowsEvent(id) {
			continue
		}
		e := snap.Events[id]
		scanEvent(e, needle, scope, add)
	}

	var filtered []Result
	for _, r := range results {
		filterCtx := hooks.NewContext(hooks.SearchResultFilter)
		filterCtx.Data["type"] = string(r.Type)
		filterCtx.Data["id"] = string(r.Id)
		filterCtx.Data["match_in"] = string(r.MatchIn)
		filterCtx = runtime.Dispatch(filterCtx)
		if filterCtx.Abort {
			continue
		}
		if drop, ok := filterCtx.Data["drop"].(bool); ok && drop {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.Slice(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Id != b.Id {
			return a.Id < b.Id
		}
		return a.MatchIn < b.MatchIn
	})

	rankCtx := hooks.NewContext(hooks.SearchResultRank)
	rankCtx.Data["results"] = filtered
	rankCtx = runtime.Dispatch(rankCtx)
	if ranked, ok := rankCtx.Data["results"].([]Result); ok {
		filtered = ranked
	}

	afterCtx := hooks.NewContext(hooks.AfterSearch)
	afterCtx.Data["count"] = len(filtered)
	runtime.Dispatch(afterCtx)

	return filtered
}

func scanCharacter(c model.Character, needle string, scope Scope, add func(Result)) {
	if scope.allowsSite(MatchTraits) {
		for _, sp := range c.SourceProfiles {
			for k, v := range sp.Traits {
				if strings.Contains(strings.ToLower(k), needle) || strings.Contains(strings.ToLower(v), needle) {
					add(Result{Type: TypeCharacter, Id: c.Id, MatchIn: MatchTraits, Field: k, Snippet: v})
				}
			}
		}
	}
	if scope.allowsSite(MatchReferences) {
		for _, sp := range c.SourceProfiles {
			for _, r := range sp.References {
				if strings.Contains(strings.ToLower(string(r)), needle) {
					add(Result{Type: TypeCharacter, Id: c.Id, MatchIn: MatchReferences, Snippet: string(r)})
				}
			}
		}
	}
	if scope.allowsSite(MatchTags) {
		for _, t := range c.Tags {
			if strings.Contains(strings.ToLower(string(t)), needle) {
				add(Result{Type: TypeCharacter, Id: c.Id, MatchIn: MatchTags, Snippet: string(t)})
			}
		}
	}
}

func scanEvent(e model.Event, needle string, scope Scope, add func(Result)) {
	if scope.allowsSite(MatchAccounts) {
		for _, acc := range e.Accounts {
			if strings.Contains(strings.ToLower(acc.Summary), needle) {
				add(Result{Type: TypeEvent, Id: e.Id, MatchIn: MatchAccounts, Field: "summary", Snippet: acc.Summary})
			}
		}
	}
	if scope.allowsSite(MatchNotes) {
		for _, acc := range e.Accounts {
			if acc.Notes != "" && strings.Contains(strings.ToLower(acc.Notes), needle) {
				add(Result{Type: TypeEvent, Id: e.Id, MatchIn: MatchNotes, Field: "notes", Snippet: acc.Notes})
			}
		}
	}
	if scope.allowsSite(MatchReferences) {
		for _, acc := range e.Accounts {
			if strings.Contains(strings.ToLower(string(acc.Reference)), needle) {
				add(Result{Type: TypeEvent, Id: e.Id, MatchIn: MatchReferences, Snippet: string(acc.Reference)})
			}
		}
	}
	if scope.allowsSite(MatchTags) {
		for _, t := range e.Tags {
			if strings.Contains(strings.ToLower(string(t)), needle) {
				add(Result{Type: TypeEvent, Id: e.Id, MatchIn: MatchTags, Snippet: string(t)})
			}
		}
	}
}
