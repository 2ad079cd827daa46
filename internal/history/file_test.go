package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

func TestFileStoreRoundTrip(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "cookbook.json")
	store := NewFileStore(path, log)

	entries := []domain.CookedRecipe{
		{
			Recipe: domain.Recipe{
				Name:        "Shakshuka",
				Difficulty:  domain.DifficultyMedium,
				PrepTime:    "30 minutes",
				Nutrition:   domain.Nutrition{Calories: "380 kcal", Protein: "18g", Carbs: "22g", Fat: "24g"},
				Ingredients: []string{"4 eggs", "1 can crushed tomatoes"},
				Steps:       []string{"Simmer the tomatoes.", "Crack in the eggs."},
			},
			Rating: 4,
		},
	}

	if err := store.Save(entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(loaded))
	}
	if loaded[0].Recipe.Name != "Shakshuka" || loaded[0].Rating != 4 {
		t.Fatalf("round trip mangled entry: %+v", loaded[0])
	}
	if loaded[0].Recipe.Difficulty != domain.DifficultyMedium {
		t.Fatalf("difficulty = %s", loaded[0].Recipe.Difficulty)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), log)

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("missing file must not error, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "cookbook.json")
	if err := os.WriteFile(path, []byte("{definitely not json"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	store := NewFileStore(path, log)
	entries, err := store.Load()
	if err != nil {
		t.Fatalf("corrupt file must not error, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "nested", "dir", "cookbook.json")
	store := NewFileStore(path, log)

	if err := store.Save(nil); err != nil {
		t.Fatalf("save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	in := []domain.CookedRecipe{{Recipe: domain.Recipe{Name: "Soup"}, Rating: 2}}

	if err := store.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0].Rating = 5

	out, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out[0].Rating != 2 {
		t.Fatal("store must copy entries, not alias caller slices")
	}
}
