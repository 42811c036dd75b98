// Package search provides the approximate-match fallback over the enriched
// corpus using Bleve. It backs tier 2 of the ranking engine: weighted
// multi-field matching with typo tolerance, for records the deterministic
// scorer did not surface.
package search

import (
	"strings"

	"github.com/openstage/directory-server/internal/domain"
)

// FallbackDocument is the Bleve document for one enriched record. Token
// sets are flattened to space-joined text; Bleve's analyzer re-tokenizes
// on the same word boundaries the normalizer produced.
type FallbackDocument struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	Program    string `json:"program,omitempty"`
	Production string `json:"production,omitempty"`
	Festival   string `json:"festival,omitempty"`
	Location   string `json:"location,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Status     string `json:"status,omitempty"`
	Identity   string `json:"identity,omitempty"`
	Season     string `json:"season,omitempty"`
	Language   string `json:"language,omitempty"`
	Alias      string `json:"alias,omitempty"`
}

// ToMap converts the document to a map with lowercase field names, so
// field names match the index mapping regardless of struct casing.
func (d *FallbackDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":   d.ID,
		"name": d.Name,
	}
	optional := map[string]string{
		"role":       d.Role,
		"program":    d.Program,
		"production": d.Production,
		"festival":   d.Festival,
		"location":   d.Location,
		"bio":        d.Bio,
		"status":     d.Status,
		"identity":   d.Identity,
		"season":     d.Season,
		"language":   d.Language,
		"alias":      d.Alias,
	}
	for field, value := range optional {
		if value != "" {
			m[field] = value
		}
	}
	return m
}

// RecordToDocument flattens an enriched record for indexing.
func RecordToDocument(rec *domain.EnrichedRecord) *FallbackDocument {
	return &FallbackDocument{
		ID:         rec.ID,
		Name:       rec.Name,
		Role:       strings.Join(rec.Tokens.Role, " "),
		Program:    strings.Join(rec.Tokens.Program, " "),
		Production: strings.Join(rec.Tokens.Production, " "),
		Festival:   strings.Join(rec.Tokens.Festival, " "),
		Location:   strings.Join(rec.Tokens.Location, " "),
		Bio:        strings.Join(rec.Tokens.Bio, " "),
		Status:     strings.Join(rec.Tokens.Status, " "),
		Identity:   strings.Join(rec.Tokens.Identity, " "),
		Season:     strings.Join(rec.Tokens.Season, " "),
		Language:   strings.Join(rec.Tokens.Language, " "),
		Alias:      strings.Join(rec.Tokens.Alias, " "),
	}
}
