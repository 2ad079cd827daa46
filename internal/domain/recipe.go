// Package domain defines the core types and interfaces for the recipe
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

import "encoding/json"

// Difficulty grades how hard a recipe is to prepare.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns a human-readable difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "unknown"
	}
}

// DifficultyFromString converts a difficulty label to a Difficulty.
// Unrecognized labels default to DifficultyMedium.
func DifficultyFromString(s string) Difficulty {
	switch s {
	case "Easy", "easy":
		return DifficultyEasy
	case "Hard", "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// MarshalJSON serializes the difficulty as its label so persisted history
// stays readable and stable across enum reordering.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a difficulty label.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = DifficultyFromString(s)
	return nil
}

// Nutrition is a per-serving nutritional estimate. Fields are free-text
// labels straight from the generator (e.g. "450 kcal", "30g").
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Recipe is an immutable recipe value produced by the generation
// capability. Name is the unique key within a result set. Ingredients are
// free text with quantities ("1 cup milk"); MissingIngredients is the
// subset the user likely doesn't have; UsesConfirmedStaples names the
// pantry staples this recipe depends on.
type Recipe struct {
	Name                 string     `json:"recipeName"`
	Difficulty           Difficulty `json:"difficulty"`
	PrepTime             string     `json:"prepTime"`
	Nutrition            Nutrition  `json:"nutrition"`
	Ingredients          []string   `json:"ingredients"`
	MissingIngredients   []string   `json:"missingIngredients"`
	Steps                []string   `json:"steps"`
	UsesConfirmedStaples []string   `json:"usesConfirmedIngredients"`
}

// RequiresNoStaples reports whether the recipe can be cooked without any
// confirmed pantry staples.
func (r *Recipe) RequiresNoStaples() bool {
	return len(r.UsesConfirmedStaples) == 0
}

// AnalysisResult is the transient output of a recipe-generation call. It is
// either committed into the engine's result set or discarded.
type AnalysisResult struct {
	IdentifiedIngredients []string
	IngredientsToConfirm  []string
	Recipes               []Recipe
}

// GenerateRequest carries the corrected ingredient list plus the user's
// meal/cuisine/dietary selections into the generation capability.
type GenerateRequest struct {
	Ingredients    []string
	MealType       string
	Cuisine        string
	DietaryFilters []string
}

// CookedRecipe is a persisted cookbook entry: a recipe snapshot plus a
// star rating, 0 (unrated) to 5. Keyed by recipe name.
type CookedRecipe struct {
	Recipe Recipe `json:"recipe"`
	Rating int    `json:"rating"`
}
