// Package workflow implements the application's central state machine: the
// screen flow from photo upload through ingredient correction, staple
// confirmation, results, and guided cooking.
package workflow

// State is the current screen/phase of the workflow.
type State int

const (
	// StateUpload is the initial screen: photo selection plus the cookbook.
	StateUpload State = iota
	// StateLoading is the transient phase while a capability call is in
	// flight. Re-entered from several states.
	StateLoading
	// StateIngredientCorrection lets the user fix the identified list.
	StateIngredientCorrection
	// StateConfirmation asks the user which suggested staples they have.
	StateConfirmation
	// StateResults shows the committed recipes and the shopping list.
	StateResults
	// StateCooking is the guided step-by-step cooking session.
	StateCooking
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StateLoading:
		return "loading"
	case StateIngredientCorrection:
		return "ingredient_correction"
	case StateConfirmation:
		return "confirmation"
	case StateResults:
		return "results"
	case StateCooking:
		return "cooking"
	default:
		return "unknown"
	}
}

// Notice is a single-line, user-visible message attached to the current
// screen. Advisory notices invite action ("add ingredients manually");
// error notices report a failed capability call. Cleared on the next
// submission attempt.
type Notice struct {
	Text    string
	IsError bool
}

// Empty reports whether there is no message to show.
func (n Notice) Empty() bool { return n.Text == "" }

// User-visible messages. Kept together so the app's voice stays consistent.
const (
	msgNothingIdentified = "Couldn't identify ingredients from the photo. You can add them manually."
	msgAnalysisFailed    = "An error occurred while analyzing the image. Please try again."
	msgNoIngredients     = "Please add some ingredients to find recipes."
	msgNoRecipes         = "Couldn't find any recipes for the ingredients provided. Please try with different ingredients."
	msgGenerationFailed  = "An error occurred while generating recipes. Please try again."
	msgConfirmDeadEnd    = "We couldn't find a recipe with your selected pantry items. Please try another photo or adjust your selection."
)
