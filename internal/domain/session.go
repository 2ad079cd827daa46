package domain

// CookingSession is the ephemeral state of guided cooking: the active
// recipe plus a 0-based step cursor bounded to [0, len(Steps)-1]. Created
// when a recipe is selected, discarded on exit.
type CookingSession struct {
	Recipe    Recipe
	StepIndex int
}

// NewCookingSession opens a session at step 0.
func NewCookingSession(recipe Recipe) *CookingSession {
	return &CookingSession{Recipe: recipe}
}

// Step returns the instruction text for the current step, or "" when
// the recipe has no steps.
func (s *CookingSession) Step() string {
	if len(s.Recipe.Steps) == 0 {
		return ""
	}
	return s.Recipe.Steps[s.StepIndex]
}

// NextStep returns the instruction after the current one, or "" on the
// last step. Used to prefetch upcoming speech.
func (s *CookingSession) NextStep() string {
	if s.StepIndex+1 >= len(s.Recipe.Steps) {
		return ""
	}
	return s.Recipe.Steps[s.StepIndex+1]
}

// Advance moves the cursor forward one step. Reports whether it moved;
// on the last step it stays put.
func (s *CookingSession) Advance() bool {
	if s.StepIndex+1 >= len(s.Recipe.Steps) {
		return false
	}
	s.StepIndex++
	return true
}

// Back moves the cursor back one step. Reports whether it moved.
func (s *CookingSession) Back() bool {
	if s.StepIndex == 0 {
		return false
	}
	s.StepIndex--
	return true
}

// IsLastStep reports whether the cursor is on the final step.
func (s *CookingSession) IsLastStep() bool {
	return s.StepIndex == len(s.Recipe.Steps)-1
}
