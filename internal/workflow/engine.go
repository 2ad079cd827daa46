package workflow

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

// DefaultSelection is the neutral meal/cuisine choice.
const DefaultSelection = "Any"

// Engine is the workflow state machine. It owns all session-scoped state
// (identified ingredients, staged analysis, committed recipes, shopping
// list, cooking session) plus the persisted cookbook, and converts every
// capability failure into a retryable state with a user-visible notice —
// nothing escapes it as a panic or unhandled error.
//
// Transitions are serialized by user events; the mutex only protects
// accessors racing a capability call already in flight.
type Engine struct {
	analyzer domain.RecipeAnalyzer
	store    domain.HistoryStore
	log      *logger.Logger

	mu         sync.Mutex
	state      State
	notice     Notice
	identified []string
	staged     *domain.AnalysisResult
	recipes    []domain.Recipe
	shopping   map[string]struct{}
	mealType   string
	cuisine    string
	filters    []string
	session    *domain.CookingSession
	cooked     []domain.CookedRecipe
	listeners  []func(State)
}

// New creates an engine in the upload state. The cookbook is loaded once,
// here; a failed load degrades to an empty history.
func New(analyzer domain.RecipeAnalyzer, store domain.HistoryStore, log *logger.Logger) *Engine {
	e := &Engine{
		analyzer: analyzer,
		store:    store,
		log:      log,
		state:    StateUpload,
		shopping: make(map[string]struct{}),
		mealType: DefaultSelection,
		cuisine:  DefaultSelection,
	}

	cooked, err := store.Load()
	if err != nil {
		log.Error("loading cook history: %v", err)
		cooked = nil
	}
	e.cooked = cooked
	log.Info("workflow engine ready (%d cookbook entries)", len(cooked))
	return e
}

// Subscribe registers a callback invoked after every state change. The
// callback runs on the goroutine that triggered the transition.
func (e *Engine) Subscribe(fn func(State)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// setState transitions and notifies subscribers. Must be called WITHOUT
// e.mu held.
func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	listeners := make([]func(State), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	e.log.Debug("workflow: state -> %s", s)
	for _, fn := range listeners {
		fn(s)
	}
}

// ── Upload → IngredientCorrection ────────────────────────────────

// SubmitPhotos runs ingredient identification over the given images. On
// success it moves to ingredient correction, with an advisory notice when
// nothing was identified; on failure it returns to upload with an error
// notice and no partial state.
func (e *Engine) SubmitPhotos(ctx context.Context, images [][]byte, mealType, cuisine string) {
	e.mu.Lock()
	e.notice = Notice{}
	e.staged = nil
	e.identified = nil
	e.mealType = mealType
	e.cuisine = cuisine
	e.mu.Unlock()
	e.setState(StateLoading)

	ingredients, err := e.analyzer.IdentifyIngredients(ctx, images)
	if err != nil {
		e.log.Error("identify ingredients: %v", err)
		e.mu.Lock()
		e.notice = Notice{Text: msgAnalysisFailed, IsError: true}
		e.mu.Unlock()
		e.setState(StateUpload)
		return
	}

	e.mu.Lock()
	e.identified = ingredients
	if len(ingredients) == 0 {
		// Not an error: invite manual entry.
		e.notice = Notice{Text: msgNothingIdentified}
	}
	e.mu.Unlock()
	e.setState(StateIngredientCorrection)
}

// ── IngredientCorrection → {Confirmation | Results} ──────────────

// ConfirmIngredients generates recipes for the corrected ingredient list.
// An empty list is rejected locally, without touching the capability.
// Results with staples to confirm are staged for the confirmation screen;
// otherwise non-empty recipe sets commit straight to results. Failures and
// empty results return to correction with the submitted list preserved.
func (e *Engine) ConfirmIngredients(ctx context.Context, ingredients []string) {
	if len(ingredients) == 0 {
		e.mu.Lock()
		e.notice = Notice{Text: msgNoIngredients}
		e.identified = nil
		e.mu.Unlock()
		e.setState(StateIngredientCorrection)
		return
	}

	e.mu.Lock()
	e.notice = Notice{}
	e.staged = nil
	req := domain.GenerateRequest{
		Ingredients:    ingredients,
		MealType:       e.mealType,
		Cuisine:        e.cuisine,
		DietaryFilters: append([]string(nil), e.filters...),
	}
	e.mu.Unlock()
	e.setState(StateLoading)

	result, err := e.analyzer.GenerateRecipes(ctx, req)
	if err != nil {
		e.log.Error("generate recipes: %v", err)
		e.mu.Lock()
		e.notice = Notice{Text: msgGenerationFailed, IsError: true}
		e.identified = ingredients
		e.mu.Unlock()
		e.setState(StateIngredientCorrection)
		return
	}

	if result == nil || len(result.Recipes) == 0 {
		// Capability succeeded but produced nothing usable: soft failure.
		e.mu.Lock()
		e.notice = Notice{Text: msgNoRecipes}
		e.identified = ingredients
		e.mu.Unlock()
		e.setState(StateIngredientCorrection)
		return
	}

	if len(result.IngredientsToConfirm) > 0 {
		e.mu.Lock()
		e.staged = result
		e.mu.Unlock()
		e.setState(StateConfirmation)
		return
	}

	e.mu.Lock()
	e.commitLocked(result.Recipes)
	e.mu.Unlock()
	e.setState(StateResults)
}

// ── Confirmation → {Results | Upload} ────────────────────────────

// ConfirmStaples filters the staged recipes by the staples the user
// actually has. Tier one keeps recipes whose every required staple was
// confirmed (staple-free recipes pass automatically); if that leaves
// nothing, tier two falls back to staple-free recipes only. When both
// tiers are empty the engine surfaces a dead end and resets to upload.
func (e *Engine) ConfirmStaples(confirmed []string) {
	e.mu.Lock()
	staged := e.staged
	e.staged = nil
	e.mu.Unlock()

	if staged == nil {
		return
	}

	confirmedSet := make(map[string]struct{}, len(confirmed))
	for _, staple := range confirmed {
		confirmedSet[staple] = struct{}{}
	}

	var primary []domain.Recipe
	for _, r := range staged.Recipes {
		if satisfiedBy(r, confirmedSet) {
			primary = append(primary, r)
		}
	}
	if len(primary) > 0 {
		e.mu.Lock()
		e.commitLocked(primary)
		e.mu.Unlock()
		e.setState(StateResults)
		return
	}

	var fallback []domain.Recipe
	for _, r := range staged.Recipes {
		if r.RequiresNoStaples() {
			fallback = append(fallback, r)
		}
	}
	if len(fallback) > 0 {
		e.log.Info("staple confirmation: falling back to %d baseline recipe(s)", len(fallback))
		e.mu.Lock()
		e.commitLocked(fallback)
		e.mu.Unlock()
		e.setState(StateResults)
		return
	}

	// Every candidate needs a staple the user doesn't have and no
	// baseline exists. Surface it rather than silently recovering.
	e.log.Warn("staple confirmation: dead end, no recipe satisfiable")
	e.mu.Lock()
	e.notice = Notice{Text: msgConfirmDeadEnd, IsError: true}
	e.mu.Unlock()
	e.setState(StateUpload)
}

// satisfiedBy reports whether every staple the recipe depends on was
// confirmed. Recipes with no staple dependencies always qualify.
func satisfiedBy(r domain.Recipe, confirmed map[string]struct{}) bool {
	for _, staple := range r.UsesConfirmedStaples {
		if _, ok := confirmed[staple]; !ok {
			return false
		}
	}
	return true
}

// commitLocked makes the recipe list authoritative and rebuilds the
// shopping list as the union of every recipe's missing ingredients.
// Caller holds e.mu and transitions to StateResults afterwards.
func (e *Engine) commitLocked(recipes []domain.Recipe) {
	e.recipes = recipes
	e.shopping = make(map[string]struct{})
	for _, r := range recipes {
		for _, item := range r.MissingIngredients {
			e.shopping[item] = struct{}{}
		}
	}
	e.log.Info("committed %d recipe(s), shopping list has %d item(s)", len(recipes), len(e.shopping))
}

// ── Cooking ──────────────────────────────────────────────────────

// SelectRecipe opens a cooking session at step 0. Reachable from results
// and from the cookbook ("cook again").
func (e *Engine) SelectRecipe(r domain.Recipe) {
	e.mu.Lock()
	e.session = domain.NewCookingSession(r)
	e.mu.Unlock()
	e.setState(StateCooking)
	e.log.Info("cooking %q (%d steps)", r.Name, len(r.Steps))
}

// ExitCooking discards the session and returns to results. Recipes and
// shopping list are untouched.
func (e *Engine) ExitCooking() {
	e.mu.Lock()
	e.session = nil
	e.mu.Unlock()
	e.setState(StateResults)
}

// Session returns the active cooking session, or nil.
func (e *Engine) Session() *domain.CookingSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// ── Shopping list ────────────────────────────────────────────────

// ShoppingList returns the current items, sorted.
func (e *Engine) ShoppingList() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.shopping))
	for item := range e.shopping {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// AddShoppingItem adds an item; blank input and duplicates are ignored.
func (e *Engine) AddShoppingItem(item string) {
	item = strings.TrimSpace(item)
	if item == "" {
		return
	}
	e.mu.Lock()
	e.shopping[item] = struct{}{}
	e.mu.Unlock()
}

// RemoveShoppingItem removes an item if present.
func (e *Engine) RemoveShoppingItem(item string) {
	e.mu.Lock()
	delete(e.shopping, item)
	e.mu.Unlock()
}

// ClearShoppingList empties the list.
func (e *Engine) ClearShoppingList() {
	e.mu.Lock()
	e.shopping = make(map[string]struct{})
	e.mu.Unlock()
}

// ── Cookbook ─────────────────────────────────────────────────────

// Cookbook returns a copy of the persisted cook history.
func (e *Engine) Cookbook() []domain.CookedRecipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.CookedRecipe, len(e.cooked))
	copy(out, e.cooked)
	return out
}

// MarkCooked records a recipe as cooked, unrated. Recipes are keyed by
// name; marking an already-present name is a no-op.
func (e *Engine) MarkCooked(r domain.Recipe) {
	e.mu.Lock()
	for _, entry := range e.cooked {
		if entry.Recipe.Name == r.Name {
			e.mu.Unlock()
			return
		}
	}
	e.cooked = append(e.cooked, domain.CookedRecipe{Recipe: r})
	e.persistLocked()
	e.mu.Unlock()
	e.log.Info("marked %q as cooked", r.Name)
}

// RateRecipe sets the rating (0-5) for a cookbook entry by name. Ratings
// outside the range are clamped; an absent name is a no-op. Other entries
// are never touched.
func (e *Engine) RateRecipe(name string, rating int) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.cooked {
		if e.cooked[i].Recipe.Name == name {
			e.cooked[i].Rating = rating
			e.persistLocked()
			return
		}
	}
}

// persistLocked rewrites the cookbook. Failures are logged, never
// surfaced: losing a save must not break the session. Caller holds e.mu.
func (e *Engine) persistLocked() {
	if err := e.store.Save(e.cooked); err != nil {
		e.log.Error("saving cook history: %v", err)
	}
}

// ── Filters / selections ─────────────────────────────────────────

// ToggleFilter adds or removes a dietary filter.
func (e *Engine) ToggleFilter(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, f := range e.filters {
		if f == name {
			e.filters = append(e.filters[:i], e.filters[i+1:]...)
			return
		}
	}
	e.filters = append(e.filters, name)
}

// Filters returns the active dietary filters.
func (e *Engine) Filters() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.filters...)
}

// MealType returns the selected meal type.
func (e *Engine) MealType() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mealType
}

// Cuisine returns the selected cuisine.
func (e *Engine) Cuisine() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cuisine
}

// ── Accessors / reset ────────────────────────────────────────────

// State returns the current workflow state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Notice returns the current screen message.
func (e *Engine) Notice() Notice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

// Recipes returns the committed recipe set.
func (e *Engine) Recipes() []domain.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Recipe, len(e.recipes))
	copy(out, e.recipes)
	return out
}

// Identified returns the ingredient list carried into correction.
func (e *Engine) Identified() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.identified...)
}

// Staged returns the analysis result awaiting staple confirmation, or nil.
func (e *Engine) Staged() *domain.AnalysisResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.staged
}

// Reset returns to upload and clears all session-scoped state: recipes,
// shopping list, staged result, cooking session, filters, selections, and
// notices. The persisted cookbook survives.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.notice = Notice{}
	e.identified = nil
	e.staged = nil
	e.recipes = nil
	e.shopping = make(map[string]struct{})
	e.mealType = DefaultSelection
	e.cuisine = DefaultSelection
	e.filters = nil
	e.session = nil
	e.mu.Unlock()
	e.setState(StateUpload)
	e.log.Debug("workflow reset")
}
