// Package match maps free-text ingredient descriptions to normalized
// search terms and decides which ingredients a cooking step mentions.
// Everything here is pure and stateless.
package match

import (
	"regexp"
	"strings"
)

var (
	parenNote   = regexp.MustCompile(`\s*\(.*?\)\s*`)
	leadingQty  = regexp.MustCompile(`^\d+(\s*[/.]\s*\d+)?\s*(\w+\.?\s+)?`)
	nonWordGaps = regexp.MustCompile(`\s+`)
)

// SearchTerms normalizes one ingredient description into a deduplicated
// set of 0–4 candidate terms: the normalized name, its naive singular, and
// the same pair for the final word of compound names ("grated cheddar
// cheese" also yields "cheese"). Terms of 2 characters or fewer are
// dropped so short stems never cause spurious matches. Empty or
// whitespace-only input yields no terms.
func SearchTerms(ingredient string) []string {
	norm := strings.ToLower(ingredient)
	norm = parenNote.ReplaceAllString(norm, " ")
	norm = strings.TrimSpace(strings.SplitN(norm, ",", 2)[0])
	norm = strings.TrimSpace(leadingQty.ReplaceAllString(norm, ""))
	norm = nonWordGaps.ReplaceAllString(norm, " ")

	var terms []string
	seen := make(map[string]bool)
	add := func(t string) {
		if len(t) > 2 && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	add(norm)
	if s := singularize(norm); s != norm {
		add(s)
	}

	if words := strings.Fields(norm); len(words) > 1 {
		last := words[len(words)-1]
		add(last)
		if s := singularize(last); s != last {
			add(s)
		}
	}
	return terms
}

// singularize applies a naive plural-stripping heuristic. It is
// intentionally simple and can over- or under-stem irregular plurals.
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "oes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	}
	return word
}

// Mentions reports which of the given ingredients the step text mentions.
// A term matches only as a whole word, case-insensitively; the first
// matching term settles an ingredient. The returned set is keyed by the
// original ingredient text.
func Mentions(stepText string, ingredients []string) map[string]bool {
	step := strings.ToLower(stepText)
	mentioned := make(map[string]bool)

	for _, ingredient := range ingredients {
		for _, term := range SearchTerms(ingredient) {
			// QuoteMeta guarantees the pattern compiles.
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
			if re.MatchString(step) {
				mentioned[ingredient] = true
				break
			}
		}
	}
	return mentioned
}
