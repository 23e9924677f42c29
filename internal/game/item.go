package game

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"vocadrill/internal/models"
)

// hintPattern matches bracketed hint text inside a translation, e.g.
// "bank [money]". Hints are stripped from translations before matching but
// never from the base word.
var hintPattern = regexp.MustCompile(`\[.*?\]`)

// Item is one normalized unit of practice material. Prompt, Expected and
// Direction are fixed at queue-build time and never change for the session.
type Item struct {
	ID           int64
	Label        string
	Prompt       string
	Expected     []string
	Answer       string
	NeedsArticle bool
	Direction    string
}

func stripHints(s string) string {
	return strings.TrimSpace(hintPattern.ReplaceAllString(s, ""))
}

// WordItems normalizes vocabulary rows into queue items. When direction is
// "both" each item's direction is rolled exactly once here. Words whose
// translations are all empty after hint stripping are dropped; a warning is
// returned for each so the caller can surface the data problem.
func WordItems(words []models.Word, direction string, rng *rand.Rand) ([]Item, []string) {
	items := make([]Item, 0, len(words))
	var warnings []string

	for _, w := range words {
		clean := make([]string, 0, len(w.Translations))
		for _, t := range w.Translations {
			if stripped := stripHints(t); stripped != "" {
				clean = append(clean, stripped)
			}
		}
		if len(clean) == 0 {
			warnings = append(warnings, fmt.Sprintf("word %q has no usable translations, skipped", w.Word))
			continue
		}

		dir := direction
		if dir == DirectionBoth {
			if rng.Intn(2) == 0 {
				dir = DirectionFrenchToEnglish
			} else {
				dir = DirectionEnglishToFrench
			}
		}

		item := Item{ID: w.ID, Label: w.Word, Direction: dir}
		switch dir {
		case DirectionEnglishToFrench:
			item.Prompt = clean[rng.Intn(len(clean))]
			if w.HasArticle() {
				item.Answer = w.Article + " " + w.Word
				item.NeedsArticle = true
			} else {
				item.Answer = w.Word
			}
			item.Expected = []string{strings.ToLower(item.Answer)}
		default:
			item.Prompt = w.Word
			item.Answer = strings.Join(clean, " / ")
			item.Expected = make([]string, len(clean))
			for i, t := range clean {
				item.Expected[i] = strings.ToLower(t)
			}
		}
		items = append(items, item)
	}
	return items, warnings
}

// ConjugationItems normalizes conjugation rows into queue items. Each item
// has a single expected answer.
func ConjugationItems(conjugations []models.Conjugation) ([]Item, []string) {
	items := make([]Item, 0, len(conjugations))
	var warnings []string

	for _, c := range conjugations {
		if strings.TrimSpace(c.Conjugation) == "" {
			warnings = append(warnings, fmt.Sprintf("conjugation of %q (%s, %s) is empty, skipped", c.Verb, c.Person, c.Tense))
			continue
		}
		label := fmt.Sprintf("%s (%s, %s)", c.Verb, c.Person, c.Tense)
		items = append(items, Item{
			ID:       c.ID,
			Label:    label,
			Prompt:   label,
			Expected: []string{strings.ToLower(strings.TrimSpace(c.Conjugation))},
			Answer:   c.Conjugation,
		})
	}
	return items, warnings
}
