package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DVDHSN/RecipeAI/internal/display"
	"github.com/DVDHSN/RecipeAI/internal/logger"
	"github.com/DVDHSN/RecipeAI/internal/speech"
	"github.com/DVDHSN/RecipeAI/internal/workflow"
)

// cliApp drives the workflow as a phase-based REPL. Each workflow state
// owns its own command set; the loop re-renders the screen whenever the
// engine transitions.
type cliApp struct {
	eng     *workflow.Engine
	speaker *speech.Controller // nil when TTS is disabled
	log     *logger.Logger
	in      *bufio.Scanner

	mealType  string
	cuisine   string
	working   []string        // editable ingredient list during correction
	confirmed map[string]bool // staple toggles during confirmation
	rendered  workflow.State  // last state drawn, to avoid redraw spam
}

func newApp(eng *workflow.Engine, speaker *speech.Controller, log *logger.Logger) *cliApp {
	a := &cliApp{
		eng:       eng,
		speaker:   speaker,
		log:       log,
		in:        bufio.NewScanner(os.Stdin),
		mealType:  workflow.DefaultSelection,
		cuisine:   workflow.DefaultSelection,
		confirmed: make(map[string]bool),
		rendered:  workflow.State(-1),
	}
	// Any transition invalidates the screen, including round trips that
	// land back in the same state (a failed analysis returns to upload
	// with a fresh notice to show).
	eng.Subscribe(func(workflow.State) { a.rendered = workflow.State(-1) })
	return a
}

func (a *cliApp) run(ctx context.Context, photos []string) {
	if len(photos) > 0 {
		a.analyze(ctx, photos)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		a.renderIfChanged()

		fmt.Print(display.PromptStyle.Render("recipeai> "))
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}

		cmd, arg := splitCommand(line)
		if cmd == "quit" || (cmd == "exit" && a.eng.State() != workflow.StateCooking) {
			fmt.Println(display.Hint("Happy cooking!"))
			return
		}
		if cmd == "help" {
			a.showHelp()
			continue
		}

		switch a.eng.State() {
		case workflow.StateUpload:
			a.handleUpload(ctx, cmd, arg)
		case workflow.StateIngredientCorrection:
			a.handleCorrection(ctx, cmd, arg)
		case workflow.StateConfirmation:
			a.handleConfirmation(cmd, arg)
		case workflow.StateResults:
			a.handleResults(ctx, cmd, arg)
		case workflow.StateCooking:
			a.handleCooking(ctx, cmd, arg)
		}
	}
}

func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

// ── Screen rendering ─────────────────────────────────────────────

// renderIfChanged draws the screen for the current state once per
// transition and keeps the correction/confirmation working sets in sync
// with the engine.
func (a *cliApp) renderIfChanged() {
	state := a.eng.State()
	if state == a.rendered {
		return
	}
	a.rendered = state

	fmt.Println()
	if notice := a.eng.Notice(); !notice.Empty() {
		fmt.Println(display.Notice(notice.Text, notice.IsError))
	}

	switch state {
	case workflow.StateUpload:
		fmt.Println(display.Header("What's in your kitchen?"))
		fmt.Println(display.Hint(fmt.Sprintf("meal: %s · cuisine: %s · filters: %s",
			a.mealType, a.cuisine, filterLabel(a.eng.Filters()))))
		fmt.Println(display.Hint("analyze <photo.jpg ...> to get started"))

	case workflow.StateIngredientCorrection:
		a.working = a.eng.Identified()
		fmt.Println(display.Header("Confirm your ingredients"))
		fmt.Println(display.IngredientList(a.working))
		fmt.Println(display.Hint("add <item> · remove <n> · done when the list is right"))

	case workflow.StateConfirmation:
		a.confirmed = make(map[string]bool)
		fmt.Println(display.Header("Do you have these staples?"))
		if staged := a.eng.Staged(); staged != nil {
			fmt.Println(display.StapleChecklist(staged.IngredientsToConfirm, a.confirmed))
		}
		fmt.Println(display.Hint("toggle <n> · all · none · confirm"))

	case workflow.StateResults:
		fmt.Println(display.Header("Your recipes"))
		fmt.Println(display.RecipeList(a.eng.Recipes()))
		fmt.Println()
		fmt.Println(display.Hint("cook <n> · shopping · cookbook · new"))

	case workflow.StateCooking:
		a.showStep(context.Background())
	}
}

func filterLabel(filters []string) string {
	if len(filters) == 0 {
		return "none"
	}
	return strings.Join(filters, ", ")
}

// ── Upload ───────────────────────────────────────────────────────

func (a *cliApp) handleUpload(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "analyze":
		if arg == "" {
			fmt.Println(display.Urgent("usage: analyze <photo.jpg ...>"))
			return
		}
		a.analyze(ctx, strings.Fields(arg))
	case "meal":
		a.mealType = titleOrAny(arg)
		fmt.Println(display.Hint("meal type: " + a.mealType))
	case "cuisine":
		a.cuisine = titleOrAny(arg)
		fmt.Println(display.Hint("cuisine: " + a.cuisine))
	case "filter":
		if arg == "" {
			fmt.Println(display.Urgent("usage: filter <name>"))
			return
		}
		a.eng.ToggleFilter(arg)
		fmt.Println(display.Hint("filters: " + filterLabel(a.eng.Filters())))
	case "cookbook":
		fmt.Println(display.Cookbook(a.eng.Cookbook()))
	case "cook-again":
		a.cookAgain(ctx, arg)
	case "rate":
		a.rate(arg)
	default:
		a.unknown(cmd)
	}
}

func titleOrAny(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return workflow.DefaultSelection
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// analyze loads the photos from disk and runs identification. Unreadable
// files abort the whole submission so a typo doesn't silently shrink it.
func (a *cliApp) analyze(ctx context.Context, paths []string) {
	images := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Println(display.Urgent("could not read " + p + ": " + err.Error()))
			return
		}
		images = append(images, data)
	}

	fmt.Println(display.Hint("Analyzing your photos..."))
	a.eng.SubmitPhotos(ctx, images, a.mealType, a.cuisine)
}

// ── Ingredient correction ────────────────────────────────────────

func (a *cliApp) handleCorrection(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "add":
		if strings.TrimSpace(arg) == "" {
			fmt.Println(display.Urgent("usage: add <ingredient>"))
			return
		}
		a.working = append(a.working, strings.TrimSpace(arg))
		fmt.Println(display.IngredientList(a.working))
	case "remove":
		i, err := strconv.Atoi(arg)
		if err != nil || i < 1 || i > len(a.working) {
			fmt.Println(display.Urgent("usage: remove <n>"))
			return
		}
		a.working = append(a.working[:i-1], a.working[i:]...)
		fmt.Println(display.IngredientList(a.working))
	case "list":
		fmt.Println(display.IngredientList(a.working))
	case "done":
		fmt.Println(display.Hint("Generating recipes..."))
		a.eng.ConfirmIngredients(ctx, a.working)
	case "restart":
		a.eng.Reset()
	default:
		a.unknown(cmd)
	}
}

// ── Staple confirmation ──────────────────────────────────────────

func (a *cliApp) handleConfirmation(cmd, arg string) {
	staged := a.eng.Staged()
	if staged == nil {
		return
	}
	staples := staged.IngredientsToConfirm

	switch cmd {
	case "toggle":
		i, err := strconv.Atoi(arg)
		if err != nil || i < 1 || i > len(staples) {
			fmt.Println(display.Urgent("usage: toggle <n>"))
			return
		}
		s := staples[i-1]
		a.confirmed[s] = !a.confirmed[s]
		fmt.Println(display.StapleChecklist(staples, a.confirmed))
	case "all":
		for _, s := range staples {
			a.confirmed[s] = true
		}
		fmt.Println(display.StapleChecklist(staples, a.confirmed))
	case "none":
		a.confirmed = make(map[string]bool)
		fmt.Println(display.StapleChecklist(staples, a.confirmed))
	case "confirm":
		var have []string
		for _, s := range staples {
			if a.confirmed[s] {
				have = append(have, s)
			}
		}
		a.eng.ConfirmStaples(have)
	default:
		a.unknown(cmd)
	}
}

// ── Results ──────────────────────────────────────────────────────

func (a *cliApp) handleResults(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "cook":
		recipes := a.eng.Recipes()
		i, err := strconv.Atoi(arg)
		if err != nil || i < 1 || i > len(recipes) {
			fmt.Println(display.Urgent("usage: cook <n>"))
			return
		}
		a.eng.SelectRecipe(recipes[i-1])
	case "recipes":
		fmt.Println(display.RecipeList(a.eng.Recipes()))
	case "shopping":
		fmt.Println(display.Header("Shopping list"))
		fmt.Println(display.ShoppingList(a.eng.ShoppingList()))
	case "buy":
		a.eng.AddShoppingItem(arg)
		fmt.Println(display.ShoppingList(a.eng.ShoppingList()))
	case "drop":
		a.eng.RemoveShoppingItem(arg)
		fmt.Println(display.ShoppingList(a.eng.ShoppingList()))
	case "clear-list":
		a.eng.ClearShoppingList()
		fmt.Println(display.Hint("shopping list cleared"))
	case "cooked":
		recipes := a.eng.Recipes()
		i, err := strconv.Atoi(arg)
		if err != nil || i < 1 || i > len(recipes) {
			fmt.Println(display.Urgent("usage: cooked <n>"))
			return
		}
		a.eng.MarkCooked(recipes[i-1])
		fmt.Println(display.Hint("added to your cookbook: " + recipes[i-1].Name))
	case "cookbook":
		fmt.Println(display.Cookbook(a.eng.Cookbook()))
	case "cook-again":
		a.cookAgain(ctx, arg)
	case "rate":
		a.rate(arg)
	case "new":
		a.eng.Reset()
	default:
		a.unknown(cmd)
	}
}

// cookAgain opens a cooking session for a cookbook entry by index.
func (a *cliApp) cookAgain(ctx context.Context, arg string) {
	book := a.eng.Cookbook()
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > len(book) {
		fmt.Println(display.Urgent("usage: cook-again <n> (see 'cookbook')"))
		return
	}
	a.eng.SelectRecipe(book[i-1].Recipe)
}

// rate parses "rate <n> <stars>" against the cookbook.
func (a *cliApp) rate(arg string) {
	parts := strings.Fields(arg)
	book := a.eng.Cookbook()
	if len(parts) != 2 {
		fmt.Println(display.Urgent("usage: rate <n> <stars 0-5>"))
		return
	}
	i, err1 := strconv.Atoi(parts[0])
	stars, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || i < 1 || i > len(book) {
		fmt.Println(display.Urgent("usage: rate <n> <stars 0-5>"))
		return
	}
	a.eng.RateRecipe(book[i-1].Recipe.Name, stars)
	fmt.Println(display.Hint(book[i-1].Recipe.Name + "  " + display.Stars(stars)))
}

// ── Cooking ──────────────────────────────────────────────────────

func (a *cliApp) handleCooking(ctx context.Context, cmd, arg string) {
	session := a.eng.Session()
	if session == nil {
		return
	}

	switch cmd {
	case "next", "n":
		if !session.Advance() {
			fmt.Println(display.Hint("that was the last step — 'done' to finish, 'exit' to leave"))
			return
		}
		a.showStep(ctx)
	case "prev", "back", "p":
		if !session.Back() {
			fmt.Println(display.Hint("already at the first step"))
			return
		}
		a.showStep(ctx)
	case "repeat", "speak":
		a.speakStep(ctx)
	case "stop":
		if a.speaker != nil {
			a.speaker.Cancel()
		}
	case "done":
		if a.speaker != nil {
			a.speaker.Cancel()
		}
		a.eng.MarkCooked(session.Recipe)
		fmt.Println(display.Hint("added to your cookbook: " + session.Recipe.Name))
		a.eng.ExitCooking()
	case "exit":
		if a.speaker != nil {
			a.speaker.Cancel()
		}
		a.eng.ExitCooking()
	default:
		a.unknown(cmd)
	}
}

// showStep draws the current step and warms the speech cache. Navigation
// never narrates on its own; 'speak' and 'repeat' are the only triggers.
func (a *cliApp) showStep(ctx context.Context) {
	session := a.eng.Session()
	if session == nil {
		return
	}
	fmt.Println()
	fmt.Println(display.StepView(session))
	fmt.Println(display.Hint("next · prev · speak · stop · done · exit"))
	a.warmStep(ctx)
}

// warmStep cancels any running narration and prefetches audio for the
// current and next steps, so a later 'speak' plays without a synthesis
// round-trip.
func (a *cliApp) warmStep(ctx context.Context) {
	if a.speaker == nil {
		return
	}
	session := a.eng.Session()
	if session == nil {
		return
	}
	a.speaker.Cancel()
	a.speaker.Prefetch(ctx, session.Step(), session.NextStep())
}

func (a *cliApp) speakStep(ctx context.Context) {
	if a.speaker == nil {
		return
	}
	session := a.eng.Session()
	if session == nil {
		return
	}
	a.speaker.Speak(ctx, session.Step())
	if next := session.NextStep(); next != "" {
		a.speaker.Prefetch(ctx, next)
	}
}

// ── Help ─────────────────────────────────────────────────────────

func (a *cliApp) showHelp() {
	fmt.Println(display.Header("Commands"))
	switch a.eng.State() {
	case workflow.StateUpload:
		fmt.Println(display.Hint("analyze <photo.jpg ...>   identify ingredients from photos"))
		fmt.Println(display.Hint("meal <type>               Breakfast, Lunch, Dinner... (default Any)"))
		fmt.Println(display.Hint("cuisine <name>            Italian, Mexican... (default Any)"))
		fmt.Println(display.Hint("filter <name>             toggle a dietary filter (Vegan, Keto...)"))
		fmt.Println(display.Hint("cookbook / cook-again <n> / rate <n> <stars>"))
	case workflow.StateIngredientCorrection:
		fmt.Println(display.Hint("add <item> / remove <n> / list / done / restart"))
	case workflow.StateConfirmation:
		fmt.Println(display.Hint("toggle <n> / all / none / confirm"))
	case workflow.StateResults:
		fmt.Println(display.Hint("cook <n> / recipes / shopping / buy <item> / drop <item> / clear-list"))
		fmt.Println(display.Hint("cooked <n> / cookbook / cook-again <n> / rate <n> <stars> / new"))
	case workflow.StateCooking:
		fmt.Println(display.Hint("next / prev / speak (or repeat) / stop / done / exit"))
	}
	fmt.Println(display.Hint("help / quit"))
}

func (a *cliApp) unknown(cmd string) {
	fmt.Println(display.Hint("unknown command '" + cmd + "' — try 'help'"))
}
