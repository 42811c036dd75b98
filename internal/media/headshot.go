// Package media selects the canonical headshot for a record from its media
// candidate list and computes the cache-busted asset URL.
package media

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/normalize"
)

const (
	// fileURLTemplate resolves a file identifier to its upstream URL.
	fileURLTemplate = "https://files.openstage.org/headshots/%s"

	// PlaceholderURL is served when no candidate resolves to a usable URL.
	PlaceholderURL = "https://files.openstage.org/static/headshot-placeholder.png"
)

// headshotKinds are the accepted normalized spellings of the headshot kind.
//
//nolint:gochecknoglobals // Fixed vocabulary
var headshotKinds = map[string]bool{
	"headshot":  true,
	"head shot": true,
}

// Resolution is the outcome of resolving one record's headshot.
type Resolution struct {
	URL      string // final URL including the cache-busting version param
	CacheKey string // the version value used
	Chosen   *domain.MediaCandidate
}

// timestamp layouts tried in order; everything unparseable is epoch 0.
//
//nolint:gochecknoglobals // Fixed parse order
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Resolve picks the single canonical headshot from the candidates for one
// record and computes its cache-busted URL. Candidates of other kinds are
// ignored. Returns a placeholder resolution when nothing usable exists.
//
// The sort rule is a strict total order; each criterion breaks ties from
// the previous only:
//  1. current candidates before non-current
//  2. later upload timestamp
//  3. lower explicit sort index (missing sorts last)
//  4. file-identifier candidates before URL-only candidates
//  5. lexicographic (file id, else URL)
func Resolve(candidates []domain.MediaCandidate, rec *domain.Record) Resolution {
	headshots := make([]domain.MediaCandidate, 0, len(candidates))
	for _, c := range candidates {
		if headshotKinds[normalize.Token(c.Kind)] {
			headshots = append(headshots, c)
		}
	}

	if len(headshots) == 0 {
		return Resolution{URL: PlaceholderURL}
	}

	sort.SliceStable(headshots, func(i, j int) bool {
		return compare(&headshots[i], &headshots[j]) < 0
	})

	winner := headshots[0]
	base := upstreamURL(&winner)
	if base == "" {
		return Resolution{URL: PlaceholderURL, Chosen: &winner}
	}

	key := cacheKey(&winner, rec)
	return Resolution{
		URL:      appendVersion(base, key),
		CacheKey: key,
		Chosen:   &winner,
	}
}

// compare orders candidate a before b when it returns a negative value.
func compare(a, b *domain.MediaCandidate) int {
	// 1. Current flag.
	if ac, bc := truthy(a.IsCurrent), truthy(b.IsCurrent); ac != bc {
		if ac {
			return -1
		}
		return 1
	}

	// 2. Later upload wins.
	at, bt := parseTime(a.UploadedAt), parseTime(b.UploadedAt)
	if !at.Equal(bt) {
		if at.After(bt) {
			return -1
		}
		return 1
	}

	// 3. Lower explicit sort index wins; missing sorts last.
	ai, bi := sortIndex(a), sortIndex(b)
	if ai != bi {
		if ai < bi {
			return -1
		}
		return 1
	}

	// 4. File identifier beats URL-only.
	if af, bf := a.FileID != "", b.FileID != ""; af != bf {
		if af {
			return -1
		}
		return 1
	}

	// 5. Lexicographic fallback keeps the order total.
	return strings.Compare(identity(a), identity(b))
}

// truthy interprets loosely typed upstream flags. Anything outside the
// accepted spellings is false.
func truthy(v domain.LooseValue) bool {
	switch strings.ToLower(strings.TrimSpace(v.String())) {
	case "true", "t", "yes", "y", "1":
		return true
	}
	return false
}

// parseTime parses an upstream timestamp, treating unparseable values as
// epoch 0.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
		// Some backends send unix seconds.
		if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
			return time.Unix(secs, 0).UTC()
		}
	}
	return time.Unix(0, 0).UTC()
}

// sortIndex returns the explicit sort index, or a sentinel that sorts
// after every real value when missing or unparseable.
func sortIndex(c *domain.MediaCandidate) int {
	if n, ok := c.SortIndex.Int(); ok {
		return n
	}
	return int(^uint(0) >> 1) // max int
}

func identity(c *domain.MediaCandidate) string {
	if c.FileID != "" {
		return c.FileID
	}
	return c.ExternalURL
}

// upstreamURL computes the winning candidate's source URL: file
// identifiers resolve through the fixed template, external URLs pass
// through.
func upstreamURL(c *domain.MediaCandidate) string {
	if c.FileID != "" {
		return strings.Replace(fileURLTemplate, "%s", c.FileID, 1)
	}
	return c.ExternalURL
}

// cacheKey derives the cache-busting version value: upload timestamp when
// parseable, then record last-updated, then file id, then URL.
func cacheKey(c *domain.MediaCandidate, rec *domain.Record) string {
	if t := parseTime(c.UploadedAt); t.Unix() > 0 {
		return strconv.FormatInt(t.Unix(), 10)
	}
	if rec != nil {
		if t := parseTime(rec.UpdatedAt); t.Unix() > 0 {
			return strconv.FormatInt(t.Unix(), 10)
		}
	}
	if c.FileID != "" {
		return c.FileID
	}
	return c.ExternalURL
}

// appendVersion appends the version query parameter.
func appendVersion(base, key string) string {
	if key == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "v=" + key
}
