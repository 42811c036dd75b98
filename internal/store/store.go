// Package store loads the directory corpus from a fixture directory of
// JSON files. The profile records are required; media candidates and the
// collaborator maps are optional and default to empty.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/errors"
)

// Fixture file names inside the data directory.
const (
	RecordsFile     = "records.json"
	MediaFile       = "media.json"
	ProgramsFile    = "programs.json"
	ProductionsFile = "productions.json"
	SeasonsFile     = "seasons.json"
	SlugAliasesFile = "slug_aliases.json"
)

// Snapshot is one fully loaded corpus: everything the enrichment pipeline
// and ranking engine need, read once and treated as immutable.
type Snapshot struct {
	Records []domain.Record
	Media   []domain.MediaCandidate
	Maps    domain.Maps
}

// Store reads corpus snapshots from a directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New builds a Store over the given data directory.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the data directory this store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads a complete snapshot. records.json must exist and parse; every
// other file is optional and contributes an empty slice or map when absent.
// A file that exists but fails to parse is an error, never silently empty.
func (s *Store) Load() (*Snapshot, error) {
	snap := &Snapshot{}

	if err := s.readJSON(RecordsFile, &snap.Records, true); err != nil {
		return nil, err
	}
	if err := s.readJSON(MediaFile, &snap.Media, false); err != nil {
		return nil, err
	}
	if err := s.readJSON(ProgramsFile, &snap.Maps.Programs, false); err != nil {
		return nil, err
	}
	if err := s.readJSON(ProductionsFile, &snap.Maps.Productions, false); err != nil {
		return nil, err
	}
	if err := s.readJSON(SeasonsFile, &snap.Maps.Seasons, false); err != nil {
		return nil, err
	}
	if err := s.readJSON(SlugAliasesFile, &snap.Maps.SlugAliases, false); err != nil {
		return nil, err
	}

	s.logger.Info("corpus snapshot loaded",
		"dir", s.dir,
		"records", len(snap.Records),
		"media", len(snap.Media),
		"programs", len(snap.Maps.Programs),
		"productions", len(snap.Maps.Productions),
		"seasons", len(snap.Maps.Seasons),
	)
	return snap, nil
}

func (s *Store) readJSON(name string, dst any, required bool) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			s.logger.Debug("optional fixture absent", "file", name)
			return nil
		}
		return errors.Wrap(err, errors.CodeNotFound, fmt.Sprintf("read %s", name))
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrap(err, errors.CodeValidation, fmt.Sprintf("parse %s", name))
	}
	return nil
}
