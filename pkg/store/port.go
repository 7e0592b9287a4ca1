// Package store defines the Storage Backend Port (§4.2): the seven
// operations the core uses to read and write raw documents, independent
// of persistence layout. RawDocument is the self-describing tree every
// adapter produces and consumes; the core never parses
// persistence-specific syntax itself.
package store

import (
	"github.com/kittclouds/bce/pkg/model"
)

// RawDocument is a string-keyed tree with scalar, list or nested-map
// leaves, exactly as §4.2 specifies. It is the only shape the ingestion
// gate decodes from.
type RawDocument map[string]any

// Str returns the string at key, or "" if absent or not a string.
func (d RawDocument) Str(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StrSlice returns the string list at key.
func (d RawDocument) StrSlice(key string) ([]string, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	switch raw := v.(type) {
	case []string:
		return raw, true
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// Map returns the nested document at key.
func (d RawDocument) Map(key string) (RawDocument, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	switch raw := v.(type) {
	case RawDocument:
		return raw, true
	case map[string]any:
		return RawDocument(raw), true
	default:
		return nil, false
	}
}

// MapSlice returns the list of nested documents at key.
func (d RawDocument) MapSlice(key string) ([]RawDocument, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]RawDocument, 0, len(raw))
	for _, item := range raw {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, RawDocument(m))
		case RawDocument:
			out = append(out, m)
		default:
			return nil, false
		}
	}
	return out, true
}

// StrMap returns the string-to-string map at key (used for
// SourceProfile.traits and Parallel.references).
func (d RawDocument) StrMap(key string) (map[string]string, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	switch raw := v.(type) {
	case map[string]string:
		return raw, true
	case map[string]any:
		out := make(map[string]string, len(raw))
		for k, val := range raw {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// IsMapShaped reports whether the value at key, if present, is a nested
// map rather than a list — the shape check that rejects the legacy
// grouped-relationships document (§4.3 step 2b, P10).
func (d RawDocument) IsMapShaped(key string) bool {
	v, ok := d[key]
	if !ok {
		return false
	}
	switch v.(type) {
	case map[string]any, RawDocument:
		return true
	default:
		return false
	}
}

// Port abstracts raw-document access so the core is independent of
// persistence layout (§4.2).
type Port interface {
	ListCharacterIDs() ([]model.EntityId, error)
	ListEventIDs() ([]model.EntityId, error)
	LoadCharacterRaw(id model.EntityId) (RawDocument, error)
	LoadEventRaw(id model.EntityId) (RawDocument, error)
	SaveCharacterRaw(id model.EntityId, doc RawDocument) error
	SaveEventRaw(id model.EntityId, doc RawDocument) error
	LoadSources() ([]model.SourceMeta, error)
}
