package game

import (
	"math"
	"sort"
	"strings"
)

// Result records one graded attempt, or one successful match in ungraded
// mode. Results are append-only and never modified after creation.
type Result struct {
	ItemID        int64  `json:"itemId"`
	Label         string `json:"label"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	TimeSpent     int    `json:"timeSpentSeconds"`
}

// Summary is the end-of-session aggregate shown on the summary screen.
type Summary struct {
	Attempts int      `json:"attempts"`
	Correct  int      `json:"correct"`
	Accuracy float64  `json:"accuracyPct"`
	Mistakes []Result `json:"mistakes"`
	Slowest  []Result `json:"slowest"`
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isMatch tests normalized input against the expected set. Matching is exact
// string membership: no diacritic folding, no whitespace collapsing beyond
// the outer trim.
func isMatch(input string, expected []string) bool {
	normalized := normalizeAnswer(input)
	for _, e := range expected {
		if normalized == e {
			return true
		}
	}
	return false
}

func accuracyPct(correct, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(attempts)*100*100) / 100
}

// Summarize computes the session aggregates from a frozen result log.
// Mistakes keep their original order; Slowest is the top 10 by time spent,
// descending, with ties broken by original order.
func Summarize(results []Result) Summary {
	summary := Summary{
		Attempts: len(results),
		Mistakes: []Result{},
	}
	for _, r := range results {
		if r.Correct {
			summary.Correct++
		} else {
			summary.Mistakes = append(summary.Mistakes, r)
		}
	}
	summary.Accuracy = accuracyPct(summary.Correct, summary.Attempts)

	slowest := append([]Result{}, results...)
	sort.SliceStable(slowest, func(i, j int) bool {
		return slowest[i].TimeSpent > slowest[j].TimeSpent
	})
	if len(slowest) > 10 {
		slowest = slowest[:10]
	}
	summary.Slowest = slowest
	return summary
}
