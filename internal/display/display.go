// Package display renders the terminal UI with lipgloss. All renderers
// are pure string builders; the app layer decides when to print them.
package display

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/match"
)

// ── Styles (soft palette) ────────────────────────────────────────

var (
	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Header — soft mint for section and phase headers.
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	// Title — soft sky blue for recipe names.
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	// Primary text — light zinc for instructions and lists.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text — dimmed zinc for hints, metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Urgent — soft coral for errors and alerts.
	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	// Highlight — warm amber for ingredients mentioned in a step.
	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	// Stars — warm amber, unbolded.
	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fdba74"))

	easyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	mediumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	hardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	// PromptStyle — slate for the input prompt.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)

// ── Generic pieces ───────────────────────────────────────────────

// Header renders a phase or section header.
func Header(text string) string {
	return headerStyle.Render("── " + text + " ") + secondaryStyle.Render(strings.Repeat("─", headerPad(text)))
}

func headerPad(text string) int {
	n := 50 - len(text)
	if n < 0 {
		return 0
	}
	return n
}

// Notice renders a screen message. Errors get the urgent style,
// advisories the secondary one.
func Notice(text string, isError bool) string {
	if isError {
		return urgentStyle.Render("  ! " + text)
	}
	return secondaryStyle.Render("  " + text)
}

// Hint renders a dimmed helper line.
func Hint(text string) string {
	return secondaryStyle.Render("  " + text)
}

// Urgent renders an error line.
func Urgent(text string) string {
	return urgentStyle.Render("  ! " + text)
}

func difficultyBadge(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return easyStyle.Render(d.String())
	case domain.DifficultyHard:
		return hardStyle.Render(d.String())
	default:
		return mediumStyle.Render(d.String())
	}
}

// ── Ingredients ──────────────────────────────────────────────────

// IngredientList renders the numbered ingredient list shown during
// correction.
func IngredientList(items []string) string {
	if len(items) == 0 {
		return secondaryStyle.Render("  (no ingredients yet — add some)")
	}
	var b strings.Builder
	for i, item := range items {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("  %2d. ", i+1)))
		b.WriteString(primaryStyle.Render(item))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// StapleChecklist renders the staples awaiting confirmation, marking
// the ones currently toggled on.
func StapleChecklist(staples []string, confirmed map[string]bool) string {
	var b strings.Builder
	for i, s := range staples {
		mark := secondaryStyle.Render("[ ]")
		if confirmed[s] {
			mark = headerStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			secondaryStyle.Render(fmt.Sprintf("%2d.", i+1)), mark, primaryStyle.Render(s)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ── Recipes ──────────────────────────────────────────────────────

// RecipeCard renders one recipe with its metadata, ingredients, and
// shopping gaps.
func RecipeCard(index int, r domain.Recipe) string {
	var b strings.Builder

	b.WriteString(secondaryStyle.Render(fmt.Sprintf("  %d. ", index+1)))
	b.WriteString(titleStyle.Render(r.Name))
	b.WriteString(secondaryStyle.Render("  ·  "))
	b.WriteString(difficultyBadge(r.Difficulty))
	if r.PrepTime != "" {
		b.WriteString(secondaryStyle.Render("  ·  " + r.PrepTime))
	}
	b.WriteByte('\n')

	if n := r.Nutrition; n.Calories != "" {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf(
			"     %s · protein %s · carbs %s · fat %s\n",
			n.Calories, n.Protein, n.Carbs, n.Fat)))
	}

	if len(r.MissingIngredients) > 0 {
		b.WriteString(missingStyle.Render("     needs: " + strings.Join(r.MissingIngredients, ", ")))
		b.WriteByte('\n')
	}
	if len(r.UsesConfirmedStaples) > 0 {
		b.WriteString(secondaryStyle.Render("     uses pantry: " + strings.Join(r.UsesConfirmedStaples, ", ")))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

// RecipeList renders all committed recipes as cards.
func RecipeList(recipes []domain.Recipe) string {
	if len(recipes) == 0 {
		return secondaryStyle.Render("  (no recipes)")
	}
	cards := make([]string, 0, len(recipes))
	for i, r := range recipes {
		cards = append(cards, RecipeCard(i, r))
	}
	return strings.Join(cards, "\n\n")
}

// ── Cooking ──────────────────────────────────────────────────────

// StepView renders the current step of a cooking session: a step
// header, the instruction with ingredient mentions highlighted, and
// the subset of the recipe's ingredients this step touches.
func StepView(s *domain.CookingSession) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("  Step %d/%d", s.StepIndex+1, len(s.Recipe.Steps))))
	if s.IsLastStep() {
		b.WriteString(secondaryStyle.Render("  (last step)"))
	}
	b.WriteByte('\n')

	step := s.Step()
	mentioned := match.Mentions(step, s.Recipe.Ingredients)
	b.WriteString("  " + highlightMentions(step, s.Recipe.Ingredients, mentioned))
	b.WriteByte('\n')

	var used []string
	for _, ing := range s.Recipe.Ingredients {
		if mentioned[ing] {
			used = append(used, ing)
		}
	}
	if len(used) > 0 {
		b.WriteString(secondaryStyle.Render("  you'll need: " + strings.Join(used, ", ")))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

// highlightMentions wraps each mentioned ingredient term in the step
// text with the highlight style. The surrounding text stays unstyled so
// the highlight's reset sequence can't swallow a base color.
func highlightMentions(step string, ingredients []string, mentioned map[string]bool) string {
	out := step
	for _, ing := range ingredients {
		if !mentioned[ing] {
			continue
		}
		for _, term := range match.SearchTerms(ing) {
			// QuoteMeta guarantees the pattern compiles.
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
			out = re.ReplaceAllStringFunc(out, func(m string) string {
				return highlightStyle.Render(m)
			})
		}
	}
	return out
}

// ── Shopping list / cookbook ─────────────────────────────────────

// ShoppingList renders the current shopping list.
func ShoppingList(items []string) string {
	if len(items) == 0 {
		return secondaryStyle.Render("  (shopping list is empty)")
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString(secondaryStyle.Render("  • "))
		b.WriteString(primaryStyle.Render(item))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Cookbook renders the persisted cook history with star ratings.
func Cookbook(entries []domain.CookedRecipe) string {
	if len(entries) == 0 {
		return secondaryStyle.Render("  (nothing cooked yet)")
	}
	var b strings.Builder
	for i, e := range entries {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("  %2d. ", i+1)))
		b.WriteString(titleStyle.Render(e.Recipe.Name))
		b.WriteString("  " + Stars(e.Rating))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Stars renders a 0-5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return starStyle.Render(strings.Repeat("★", rating)) +
		secondaryStyle.Render(strings.Repeat("☆", 5-rating))
}
