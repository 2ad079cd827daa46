package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DVDHSN/RecipeAI/internal/domain"
)

// Wire shapes matching the JSON the model is asked to produce.

type analysisWire struct {
	IdentifiedIngredients []string     `json:"identifiedIngredients"`
	IngredientsToConfirm  []string     `json:"ingredientsToConfirm"`
	Recipes               []recipeWire `json:"recipes"`
}

type recipeWire struct {
	RecipeName               string           `json:"recipeName"`
	Difficulty               string           `json:"difficulty"`
	PrepTime                 string           `json:"prepTime"`
	Nutrition                *domain.Nutrition `json:"nutrition"`
	Calories                 string           `json:"calories"` // legacy flat field
	Ingredients              []string         `json:"ingredients"`
	MissingIngredients       []string         `json:"missingIngredients"`
	Steps                    []string         `json:"steps"`
	UsesConfirmedIngredients []string         `json:"usesConfirmedIngredients"`
}

// extractJSON trims everything outside the outermost JSON object. Models
// occasionally wrap the payload in markdown fences despite instructions.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || start > end {
		return "", fmt.Errorf("could not find JSON object in response")
	}
	return raw[start : end+1], nil
}

// parseIdentification decodes an identify response into an ingredient list.
func parseIdentification(raw string) ([]string, error) {
	clean, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var wire analysisWire
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return nil, fmt.Errorf("unmarshaling identification: %w", err)
	}
	return wire.IdentifiedIngredients, nil
}

// parseAnalysis decodes a generation response into a domain AnalysisResult.
func parseAnalysis(raw string) (*domain.AnalysisResult, error) {
	clean, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var wire analysisWire
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return nil, fmt.Errorf("unmarshaling analysis: %w", err)
	}

	result := &domain.AnalysisResult{
		IdentifiedIngredients: wire.IdentifiedIngredients,
		IngredientsToConfirm:  wire.IngredientsToConfirm,
		Recipes:               make([]domain.Recipe, 0, len(wire.Recipes)),
	}
	for _, rw := range wire.Recipes {
		result.Recipes = append(result.Recipes, rw.toDomain())
	}
	return result, nil
}

func (rw recipeWire) toDomain() domain.Recipe {
	r := domain.Recipe{
		Name:                 rw.RecipeName,
		Difficulty:           domain.DifficultyFromString(rw.Difficulty),
		PrepTime:             rw.PrepTime,
		Ingredients:          rw.Ingredients,
		MissingIngredients:   rw.MissingIngredients,
		Steps:                rw.Steps,
		UsesConfirmedStaples: rw.UsesConfirmedIngredients,
	}
	if rw.Nutrition != nil {
		r.Nutrition = *rw.Nutrition
	} else if rw.Calories != "" {
		// Older schema put calories at the top level.
		r.Nutrition = domain.Nutrition{
			Calories: rw.Calories,
			Protein:  "N/A",
			Carbs:    "N/A",
			Fat:      "N/A",
		}
	}
	return r
}
