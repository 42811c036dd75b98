package enrich

import (
	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/token"
)

// extractMode selects how a field's value is turned into tokens.
type extractMode int

const (
	// modePhrase adds the full normalized string plus each word.
	modePhrase extractMode = iota
	// modeYearSeason adds phrase tokens plus year and season tokens.
	modeYearSeason
	// modeList splits on list separators, then phrase-extracts each piece.
	modeList
	// modeListYearSeason splits, then year/season-extracts each piece.
	modeListYearSeason
)

func (m extractMode) extract(set *token.Set, raw string) {
	switch m {
	case modePhrase:
		token.AddPhrase(set, raw)
	case modeYearSeason:
		token.AddYearSeason(set, raw)
	case modeList:
		token.AddList(set, raw)
	case modeListYearSeason:
		for _, piece := range token.SplitList(raw) {
			token.AddYearSeason(set, piece)
		}
	}
}

// fieldRule binds one record field to its extraction mode.
type fieldRule struct {
	name  string
	mode  extractMode
	value func(*domain.Record) string
}

// catchAllFields enumerates every record field deposited into the alias
// token set. Exhaustive and explicit: adding a field to Record means
// adding a row here, so a forgotten field is a visible diff rather than a
// silent search gap.
//
//nolint:gochecknoglobals // Static field table
var catchAllFields = []fieldRule{
	{"id", modePhrase, func(r *domain.Record) string { return r.ID }},
	{"slug", modePhrase, func(r *domain.Record) string { return r.Slug }},
	{"name", modePhrase, func(r *domain.Record) string { return r.Name }},
	{"email", modePhrase, func(r *domain.Record) string { return r.Email }},
	{"pronouns", modePhrase, func(r *domain.Record) string { return r.Pronouns }},
	{"location", modePhrase, func(r *domain.Record) string { return r.Location }},
	{"bio", modeYearSeason, func(r *domain.Record) string { return r.Bio }},
	{"current_work", modeYearSeason, func(r *domain.Record) string { return r.CurrentWork }},
	{"roles", modeList, func(r *domain.Record) string { return r.Roles }},
	{"programs", modeListYearSeason, func(r *domain.Record) string { return r.Programs }},
	{"tags", modeList, func(r *domain.Record) string { return r.Tags }},
	{"status_flags", modeList, func(r *domain.Record) string { return r.StatusFlags }},
	{"languages", modeList, func(r *domain.Record) string { return r.Languages }},
	{"headshot_file_id", modePhrase, func(r *domain.Record) string { return r.HeadshotFileID }},
	{"headshot_url", modePhrase, func(r *domain.Record) string { return r.HeadshotURL }},
}

// setBundle collects the per-record token sets during enrichment.
type setBundle struct {
	alias, program, production, festival, role, bio,
	location, identity, status, season, language *token.Set
}

func newSetBundle() *setBundle {
	return &setBundle{
		alias:      token.NewSet(),
		program:    token.NewSet(),
		production: token.NewSet(),
		festival:   token.NewSet(),
		role:       token.NewSet(),
		bio:        token.NewSet(),
		location:   token.NewSet(),
		identity:   token.NewSet(),
		status:     token.NewSet(),
		season:     token.NewSet(),
		language:   token.NewSet(),
	}
}

// freeze snapshots the bundle into the immutable TokenSets form.
// Every slice is non-nil, empty or not.
func (b *setBundle) freeze() domain.TokenSets {
	return domain.TokenSets{
		Alias:      b.alias.Values(),
		Program:    b.program.Values(),
		Production: b.production.Values(),
		Festival:   b.festival.Values(),
		Role:       b.role.Values(),
		Bio:        b.bio.Values(),
		Location:   b.location.Values(),
		Identity:   b.identity.Values(),
		Status:     b.status.Values(),
		Season:     b.season.Values(),
		Language:   b.language.Values(),
	}
}
