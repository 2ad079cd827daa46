// Package gemini implements the recipe-analysis capability on the Gemini
// API: ingredient identification from photos and recipe generation from a
// corrected ingredient list.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

// Model used for vision analysis and recipe generation.
const DefaultModel = "gemini-2.5-flash"

// Compile-time interface check.
var _ domain.RecipeAnalyzer = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithModel overrides the analysis model.
func WithModel(name string) Option {
	return func(c *Client) {
		c.modelName = name
	}
}

// Client is a Gemini-backed RecipeAnalyzer.
type Client struct {
	modelName string
	model     *genai.GenerativeModel
	log       *logger.Logger
}

// NewClient creates a Gemini client with the given API key.
func NewClient(ctx context.Context, apiKey string, log *logger.Logger, opts ...Option) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	c := &Client{modelName: DefaultModel, log: log}
	for _, opt := range opts {
		opt(c)
	}

	c.model = client.GenerativeModel(c.modelName)
	c.model.ResponseMIMEType = "application/json"
	return c, nil
}

const identifyPrompt = `You are a culinary AI. List every visible, edible ingredient across all provided images combined.

Return a single, valid JSON object of the form {"identifiedIngredients": ["..."]} with no explanatory text outside the JSON.`

// IdentifyIngredients lists the edible ingredients visible across the
// given JPEG images.
func (c *Client) IdentifyIngredients(ctx context.Context, images [][]byte) ([]string, error) {
	parts := make([]genai.Part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, genai.ImageData("jpeg", img))
	}
	parts = append(parts, genai.Text(identifyPrompt))

	c.log.Debug("gemini: identifying ingredients in %d image(s)", len(images))

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("identify request: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	parsed, err := parseIdentification(raw)
	if err != nil {
		return nil, err
	}

	c.log.Info("gemini: identified %d ingredient(s)", len(parsed))
	return parsed, nil
}

// GenerateRecipes asks for 3-5 recipes built from the given ingredients,
// plus up to 5 pantry staples to confirm with the user.
func (c *Client) GenerateRecipes(ctx context.Context, req domain.GenerateRequest) (*domain.AnalysisResult, error) {
	if len(req.Ingredients) == 0 {
		return nil, domain.ErrNoIngredients
	}

	prompt := buildGeneratePrompt(req)

	c.log.Debug("gemini: generating recipes for %d ingredient(s)", len(req.Ingredients))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generate request: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	c.log.Info("gemini: generated %d recipe(s), %d staple(s) to confirm",
		len(result.Recipes), len(result.IngredientsToConfirm))
	return result, nil
}

// buildGeneratePrompt assembles the generation prompt, folding in the
// user's meal, cuisine, and dietary selections when they constrain anything.
func buildGeneratePrompt(req domain.GenerateRequest) string {
	var b strings.Builder

	b.WriteString(`You are a creative culinary AI. The user has these ingredients on hand: `)
	b.WriteString(strings.Join(req.Ingredients, ", "))
	b.WriteString(`.

Perform the following tasks:

1. Suggest Staples: identify up to 5 common pantry staples (like "eggs", "onion", "butter") that are NOT in the list above but would greatly expand the recipe possibilities. Return these in the "ingredientsToConfirm" array so the user can confirm they have them.
2. Generate Recipes: create 3-5 diverse recipes. They should primarily use the listed ingredients but can ALSO use the staples in "ingredientsToConfirm". Important: ensure at least one recipe uses only the listed ingredients and requires nothing from "ingredientsToConfirm", serving as a baseline option.
3. Detail each recipe: for each recipe, populate "usesConfirmedIngredients" with the exact items from your "ingredientsToConfirm" list that this specific recipe requires. List any other ingredients the user likely doesn't have under "missingIngredients" (never pantry staples or confirmable items). Provide estimated nutrition (calories, protein, carbs, fat) as strings.
`)

	if req.MealType != "" && req.MealType != "Any" {
		fmt.Fprintf(&b, "\nThe user is looking for %s recipes.", strings.ToLower(req.MealType))
	}
	if req.Cuisine != "" && req.Cuisine != "Any" {
		fmt.Fprintf(&b, "\nThe user has requested %s cuisine. Tailor the recipes accordingly.", req.Cuisine)
	}
	if len(req.DietaryFilters) > 0 {
		fmt.Fprintf(&b, "\nImportant: all suggested recipes must be suitable for the following dietary preferences: %s.", strings.Join(req.DietaryFilters, ", "))
	}

	b.WriteString(`

Return a single, valid JSON object with keys "identifiedIngredients" (array of strings), "ingredientsToConfirm" (array of strings), and "recipes" (array of objects with "recipeName", "difficulty" one of Easy/Medium/Hard, "prepTime", "nutrition" {"calories","protein","carbs","fat"}, "ingredients", "missingIngredients", "steps", "usesConfirmedIngredients"). Do not add any text outside the JSON.`)

	return b.String()
}

// responseText pulls the text payload out of a generation response.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format from Gemini")
	}
	return string(text), nil
}
