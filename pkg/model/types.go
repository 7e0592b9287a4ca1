package model

// Character is a biblical person with one or more per-source profiles.
// The zero value is never valid on its own: ingestion requires Id,
// CanonicalName and at least one SourceProfile.
type Character struct {
	Id              EntityId         `json:"id"`
	CanonicalName   string           `json:"canonical_name"`
	SourceProfiles  []SourceProfile  `json:"source_profiles"`
	Aliases         []string         `json:"aliases,omitempty"`
	Roles           []string         `json:"roles,omitempty"`
	Tags            []Tag            `json:"tags,omitempty"`
	Relationships   []Relationship   `json:"relationships,omitempty"`
	Citations       []string         `json:"citations,omitempty"`
}

// SourceProfile is one source's account of a Character's traits.
type SourceProfile struct {
	SourceId   SourceId          `json:"source_id"`
	Traits     map[string]string `json:"traits"`
	References []Reference       `json:"references"`
	Variants   []TextualVariant  `json:"variants,omitempty"`
	Citations  []string          `json:"citations,omitempty"`
}

// Relationship links a Character to another character id across one or
// more sources. Type is a free-form label ("sibling", "disciple",
// "friend") never validated against a closed set.
type Relationship struct {
	CharacterId EntityId    `json:"character_id"`
	Type        string      `json:"type"`
	Sources     []SourceId  `json:"sources"`
	References  []Reference `json:"references"`
	Notes       string      `json:"notes,omitempty"`
}

// TextualVariant records a manuscript-family reading that diverges from
// the base text referenced by its enclosing SourceProfile or
// EventAccount.
type TextualVariant struct {
	ManuscriptFamily string `json:"manuscript_family"`
	Reading          string `json:"reading"`
	Significance     string `json:"significance"`
}

// Event is a narrated occurrence with accounts drawn from one or more
// sources and, optionally, parallel cross-references to other events.
type Event struct {
	Id              EntityId         `json:"id"`
	Label           string           `json:"label"`
	Participants    []EntityId       `json:"participants,omitempty"`
	Accounts        []EventAccount   `json:"accounts,omitempty"`
	Parallels       []Parallel       `json:"parallels,omitempty"`
	Tags            []Tag            `json:"tags,omitempty"`
	Citations       []string         `json:"citations,omitempty"`
	TextualVariants []TextualVariant `json:"textual_variants,omitempty"`
}

// EventAccount is one source's narration of an Event.
type EventAccount struct {
	SourceId  SourceId         `json:"source_id"`
	Reference Reference        `json:"reference"`
	Summary   string           `json:"summary"`
	Notes     string           `json:"notes,omitempty"`
	Variants  []TextualVariant `json:"variants,omitempty"`
}

// Parallel names a narrative relationship between this event and the
// same event as narrated in other sources (e.g. synoptic parallels).
type Parallel struct {
	Sources      []SourceId           `json:"sources"`
	Relationship string               `json:"relationship"`
	References   map[SourceId]Reference `json:"references,omitempty"`
}

// SourceMeta describes a named corpus in the source registry (§3.5).
type SourceMeta struct {
	SourceId   SourceId   `json:"source_id"`
	DateRange  string     `json:"date_range,omitempty"`
	Provenance string     `json:"provenance,omitempty"`
	Audience   string     `json:"audience,omitempty"`
	DependsOn  []SourceId `json:"depends_on,omitempty"`
}
