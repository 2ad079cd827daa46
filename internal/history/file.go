// Package history provides cookbook persistence implementations.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

// Compile-time interface check.
var _ domain.HistoryStore = (*FileStore)(nil)

// FileStore persists the cookbook as a JSON file. Load recovers from a
// missing or corrupt file by returning an empty list; corruption costs the
// user their history but never the session.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore creates a file-backed history store at the given path.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Load reads the cookbook. Missing or unreadable data yields an empty
// list, never an error.
func (s *FileStore) Load() ([]domain.CookedRecipe, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("history: read failed, starting empty: %v", err)
		}
		return nil, nil
	}

	var entries []domain.CookedRecipe
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("history: corrupt file %s, starting empty: %v", s.path, err)
		return nil, nil
	}

	s.log.Debug("history: loaded %d entries from %s", len(entries), s.path)
	return entries, nil
}

// Save rewrites the whole cookbook file.
func (s *FileStore) Save(entries []domain.CookedRecipe) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return err
	}
	s.log.Debug("history: saved %d entries to %s", len(entries), s.path)
	return nil
}
