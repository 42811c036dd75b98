package domain

// ProgramEntry is one entry of the external program map: a training
// program, workshop, or residency with its artist roster.
type ProgramEntry struct {
	Title    string `json:"title"`
	Program  string `json:"program,omitempty"` // program name alone, e.g. "Acting Intensive"
	Location string `json:"location,omitempty"`
	Year     string `json:"year,omitempty"`
	Season   string `json:"season,omitempty"` // season number in the season table

	// Artists maps record slugs to membership.
	Artists map[string]bool `json:"artists,omitempty"`
}

// ProductionEntry is one entry of the external production map: a staged
// production, possibly under a festival banner.
type ProductionEntry struct {
	Title      string `json:"title"`
	Production string `json:"production,omitempty"` // production name alone
	Location   string `json:"location,omitempty"`
	Year       string `json:"year,omitempty"`
	Season     string `json:"season,omitempty"`

	// Festival is a free-form banner string, e.g.
	// "Fringe Festival: Edinburgh - 2019". Fragments split on colon,
	// em-dash, and hyphen each become their own alias.
	Festival string `json:"festival,omitempty"`

	Artists map[string]bool `json:"artists,omitempty"`
}

// Season is one row of the external season table. The table is ordered;
// a season's number is its 1-based position.
type Season struct {
	Slug        string   `json:"slug"`
	SeasonTitle string   `json:"season_title"`
	Years       string   `json:"years,omitempty"` // e.g. "2018-2019"
	Projects    []string `json:"projects,omitempty"`
}

// SeasonTable is the ordered list of seasons.
type SeasonTable []Season

// ByNumber returns the season at the given 1-based number.
func (t SeasonTable) ByNumber(n int) (Season, bool) {
	if n < 1 || n > len(t) {
		return Season{}, false
	}
	return t[n-1], true
}

// SlugAliasEntry maps a set of historical or alternate slugs to one
// canonical slug.
type SlugAliasEntry struct {
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases,omitempty"`
}

// SlugAliasTable resolves any slug to its canonical slug and the full set
// of slugs that map to it.
type SlugAliasTable []SlugAliasEntry

// Resolve returns the canonical slug for the given slug plus every slug in
// its alias group (canonical included). Returns ok=false when the slug is
// not in the table; callers fall back to the slug itself.
func (t SlugAliasTable) Resolve(slug string) (canonical string, group []string, ok bool) {
	for _, e := range t {
		if e.Canonical == slug {
			return e.Canonical, append([]string{e.Canonical}, e.Aliases...), true
		}
		for _, a := range e.Aliases {
			if a == slug {
				return e.Canonical, append([]string{e.Canonical}, e.Aliases...), true
			}
		}
	}
	return "", nil, false
}

// Maps bundles the read-only collaborator data consumed by the engine.
// Injected explicitly rather than held as package state, so the engine
// stays pure and independently testable.
type Maps struct {
	Programs    map[string]ProgramEntry    `json:"programs,omitempty"`
	Productions map[string]ProductionEntry `json:"productions,omitempty"`
	Seasons     SeasonTable                `json:"seasons,omitempty"`
	SlugAliases SlugAliasTable             `json:"slug_aliases,omitempty"`
}
