// Package domain defines the core entities of the alumni directory engine:
// profile records, enriched records with derived token sets, media
// candidates, and the read-only collaborator data the engine consumes.
package domain

// Record is one alumni profile row as supplied by the profile-storage
// backend. All fields are read-only to this engine; missing values are
// represented as empty strings, never as errors.
//
// List-ish fields (Roles, Programs, Tags, StatusFlags, Languages) may hold
// multiple values separated by comma, semicolon, pipe, or newline.
type Record struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`

	Pronouns    string `json:"pronouns,omitempty"`
	Location    string `json:"location,omitempty"`
	Bio         string `json:"bio,omitempty"`
	CurrentWork string `json:"current_work,omitempty"`

	Roles       string `json:"roles,omitempty"`
	Programs    string `json:"programs,omitempty"`
	Tags        string `json:"tags,omitempty"`
	StatusFlags string `json:"status_flags,omitempty"`
	Languages   string `json:"languages,omitempty"`

	// Media pointers, as recorded on the profile itself. The authoritative
	// headshot choice comes from the media candidate list, not these.
	HeadshotFileID string `json:"headshot_file_id,omitempty"`
	HeadshotURL    string `json:"headshot_url,omitempty"`

	// UpdatedAt is the record-level last-updated timestamp, used as a
	// cache-key fallback when a winning media candidate has no usable
	// upload timestamp.
	UpdatedAt string `json:"updated_at,omitempty"`
}

// TokenSets holds the derived searchable token sets of an enriched record.
// Every token is normalizer output: lowercase, non-alphanumeric runs
// collapsed to single spaces, trimmed. A set may be empty but never nil.
type TokenSets struct {
	Alias      []string `json:"alias_tokens"`
	Program    []string `json:"program_tokens"`
	Production []string `json:"production_tokens"`
	Festival   []string `json:"festival_tokens"`
	Role       []string `json:"role_tokens"`
	Bio        []string `json:"bio_tokens"`
	Location   []string `json:"location_tokens"`
	Identity   []string `json:"identity_tokens"`
	Status     []string `json:"status_tokens"`
	Season     []string `json:"season_tokens"`
	Language   []string `json:"language_tokens"`
}

// EnrichedRecord is a Record plus everything the enrichment pipeline
// derives: the canonical slug, the resolved headshot, and the searchable
// token sets. Built once per corpus load and immutable thereafter.
type EnrichedRecord struct {
	Record

	// CanonicalSlug is the authoritative identifier after alias/redirect
	// resolution. Falls back to the record's own slug when unresolved.
	CanonicalSlug string `json:"canonical_slug"`

	// ResolvedAssetURL is the chosen headshot URL with a cache-busting
	// version parameter appended. Never empty; a fixed placeholder is used
	// when no candidate resolves.
	ResolvedAssetURL string `json:"resolved_asset_url"`

	// AssetCacheKey is the version value used for cache busting.
	AssetCacheKey string `json:"asset_cache_key,omitempty"`

	Tokens TokenSets `json:"tokens"`
}

// ScoredResult pairs a record with its deterministic tier-1 score.
// Transient, created fresh per query.
type ScoredResult struct {
	Record   *EnrichedRecord
	Score    int
	Coverage float64
	// Reasons is a diagnostic trail of the match classes that fired.
	// Ordered, human-readable, not semantically load-bearing.
	Reasons []string
}
