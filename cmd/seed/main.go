// Package main seeds a corpus fixture directory with sample alumni data,
// useful for local development and demos.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/id"
	"github.com/openstage/directory-server/internal/store"
)

func main() {
	out := flag.String("out", "data", "Output directory for fixture files")
	flag.Parse()

	if err := seed(*out); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded fixture data in %s\n", *out)
}

func seed(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	janeID := id.MustGenerate("rec")
	samID := id.MustGenerate("rec")
	anaID := id.MustGenerate("rec")

	records := []domain.Record{
		{
			ID: janeID, Slug: "jane-doe", Name: "Jane Doe",
			Pronouns: "she/her", Location: "Quito",
			Bio:         "Directed a devised puppet opera across Ecuador in Summer 2016.",
			CurrentWork: "Resident director, Teatro Nacional",
			Roles:       "Director, Dramaturg",
			Programs:    "Directing Intensive 2016",
			StatusFlags: "available for hire",
			Languages:   "Spanish; English",
		},
		{
			ID: samID, Slug: "sam-ray", Name: "Sam Ray",
			Pronouns: "they/them", Location: "Berlin",
			Bio:       "Stage manager with a focus on devised and site-specific work.",
			Roles:     "Stage Manager, Production Manager",
			Programs:  "Production Residency 2019",
			Languages: "German, English",
		},
		{
			ID: anaID, Slug: "ana-cruz", Name: "Ana Cruz",
			Location: "Lisbon",
			Bio:      "Lighting designer. Fringe Festival alum, Winter 2018.",
			Roles:    "Lighting Designer",
			Tags:     "Portuguese",
		},
	}

	media := []domain.MediaCandidate{
		{
			RecordID: janeID, Kind: "headshot",
			FileID:     id.MustGenerate("file"),
			UploadedAt: "2023-06-01T00:00:00Z",
			IsCurrent:  "true", SortIndex: "1",
		},
		{
			RecordID: janeID, Kind: "headshot",
			ExternalURL: "https://images.example.org/jane-old.jpg",
			UploadedAt:  "2022-03-04T00:00:00Z",
		},
		{
			RecordID: samID, Kind: "head_shot",
			FileID: id.MustGenerate("file"),
		},
	}

	maps := domain.Maps{
		Programs: map[string]domain.ProgramEntry{
			"directing-2016": {
				Title: "Directing Intensive: Quito - 2016",
				Year:  "2016", Season: "1",
				Artists: map[string]bool{"jane-doe": true},
			},
			"production-2019": {
				Title: "Production Residency: Berlin - 2019",
				Year:  "2019", Season: "2",
				Artists: map[string]bool{"sam-ray": true},
			},
		},
		Productions: map[string]domain.ProductionEntry{
			"fringe-2018": {
				Title:    "Nightfall",
				Festival: "Fringe Festival: Edinburgh - 2018",
				Year:     "2018", Season: "2",
				Artists: map[string]bool{"ana-cruz": true},
			},
		},
		Seasons: domain.SeasonTable{
			{Slug: "season-one", SeasonTitle: "Season One", Years: "2015-2016"},
			{Slug: "season-two", SeasonTitle: "Season Two", Years: "2018-2019"},
		},
		SlugAliases: domain.SlugAliasTable{
			{Canonical: "jane-doe", Aliases: []string{"jane-d", "j-doe"}},
		},
	}

	files := map[string]any{
		store.RecordsFile:     records,
		store.MediaFile:       media,
		store.ProgramsFile:    maps.Programs,
		store.ProductionsFile: maps.Productions,
		store.SeasonsFile:     maps.Seasons,
		store.SlugAliasesFile: maps.SlugAliases,
	}
	for name, v := range files {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
