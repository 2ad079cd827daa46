package domain

import "testing"

func newTestSession(steps ...string) *CookingSession {
	return NewCookingSession(Recipe{Name: "Toast", Steps: steps})
}

func TestCookingSessionBounds(t *testing.T) {
	s := newTestSession("Slice.", "Toast.", "Butter.")

	if s.StepIndex != 0 {
		t.Fatalf("new session opens at %d, want 0", s.StepIndex)
	}

	// Back at the first step never moves the cursor.
	if s.Back() {
		t.Fatal("Back at step 0 must report no movement")
	}
	if s.StepIndex != 0 {
		t.Fatalf("Back at step 0 moved the cursor to %d", s.StepIndex)
	}

	// Advance walks to the last step and then pins there.
	for i := 1; i < 3; i++ {
		if !s.Advance() {
			t.Fatalf("Advance to step %d must succeed", i)
		}
		if s.StepIndex != i {
			t.Fatalf("StepIndex = %d, want %d", s.StepIndex, i)
		}
	}
	if !s.IsLastStep() {
		t.Fatal("expected cursor on the last step")
	}
	for i := 0; i < 3; i++ {
		if s.Advance() {
			t.Fatal("Advance past the last step must report no movement")
		}
	}
	if s.StepIndex != 2 {
		t.Fatalf("cursor left the valid range: %d", s.StepIndex)
	}

	if s.Step() != "Butter." {
		t.Fatalf("Step() = %q", s.Step())
	}
	if s.NextStep() != "" {
		t.Fatalf("NextStep on the last step = %q, want empty", s.NextStep())
	}

	// Back walks home and pins at 0.
	s.Back()
	s.Back()
	if s.StepIndex != 0 || s.Back() {
		t.Fatalf("cursor left the valid range going back: %d", s.StepIndex)
	}
}

func TestCookingSessionSingleStep(t *testing.T) {
	s := newTestSession("Eat.")

	if !s.IsLastStep() {
		t.Fatal("a one-step session starts on its last step")
	}
	if s.Advance() || s.Back() {
		t.Fatal("a one-step session has nowhere to move")
	}
	if s.NextStep() != "" {
		t.Fatalf("NextStep = %q, want empty", s.NextStep())
	}
}

func TestCookingSessionNoSteps(t *testing.T) {
	s := newTestSession()

	if s.Step() != "" {
		t.Fatalf("Step() with no steps = %q, want empty", s.Step())
	}
	if s.Advance() {
		t.Fatal("Advance with no steps must report no movement")
	}
	if s.StepIndex != 0 {
		t.Fatalf("cursor moved with no steps: %d", s.StepIndex)
	}
}
