package game

import (
	"reflect"
	"testing"
)

func TestIsMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		want     bool
	}{
		{"exact match", "cat", []string{"cat"}, true},
		{"case folded", "CAT", []string{"cat"}, true},
		{"trimmed", "  cat  ", []string{"cat"}, true},
		{"membership", "feline", []string{"cat", "feline"}, true},
		{"no match", "dog", []string{"cat"}, false},
		{"article required", "chat", []string{"le chat"}, false},
		{"article supplied", "le chat", []string{"le chat"}, true},
		{"no diacritic folding", "present", []string{"présent"}, false},
		{"inner whitespace preserved", "le  chat", []string{"le chat"}, false},
		{"empty input", "", []string{"cat"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMatch(tt.input, tt.expected); got != tt.want {
				t.Errorf("isMatch(%q, %v) = %v, want %v", tt.input, tt.expected, got, tt.want)
			}
		})
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Attempts != 0 || summary.Correct != 0 {
		t.Errorf("expected zero counts, got %d/%d", summary.Correct, summary.Attempts)
	}
	if summary.Accuracy != 0 {
		t.Errorf("expected accuracy 0 with no attempts, got %v", summary.Accuracy)
	}
	if len(summary.Mistakes) != 0 || len(summary.Slowest) != 0 {
		t.Error("expected empty mistake and slowest lists")
	}
}

func TestSummarizeAccuracyRounding(t *testing.T) {
	results := []Result{
		{ItemID: 1, Correct: true},
		{ItemID: 2, Correct: true},
		{ItemID: 3, Correct: false},
	}
	summary := Summarize(results)
	if summary.Accuracy != 66.67 {
		t.Errorf("expected accuracy 66.67, got %v", summary.Accuracy)
	}
	if summary.Accuracy < 0 || summary.Accuracy > 100 {
		t.Errorf("accuracy out of range: %v", summary.Accuracy)
	}
}

func TestSummarizeMistakesKeepOrder(t *testing.T) {
	results := []Result{
		{ItemID: 1, Correct: false},
		{ItemID: 2, Correct: true},
		{ItemID: 3, Correct: false},
	}
	summary := Summarize(results)
	if len(summary.Mistakes) != 2 {
		t.Fatalf("expected 2 mistakes, got %d", len(summary.Mistakes))
	}
	if summary.Mistakes[0].ItemID != 1 || summary.Mistakes[1].ItemID != 3 {
		t.Errorf("mistakes out of original order: %v", summary.Mistakes)
	}
}

func TestSummarizeSlowest(t *testing.T) {
	results := make([]Result, 12)
	for i := range results {
		results[i] = Result{ItemID: int64(i + 1), Correct: true, TimeSpent: i % 4}
	}
	summary := Summarize(results)
	if len(summary.Slowest) != 10 {
		t.Fatalf("expected slowest list truncated to 10, got %d", len(summary.Slowest))
	}
	for i := 1; i < len(summary.Slowest); i++ {
		if summary.Slowest[i].TimeSpent > summary.Slowest[i-1].TimeSpent {
			t.Fatalf("slowest list not sorted descending at index %d", i)
		}
	}
	// ties keep original order: items 4, 8 and 12 all took 3 seconds
	if summary.Slowest[0].ItemID != 4 || summary.Slowest[1].ItemID != 8 || summary.Slowest[2].ItemID != 12 {
		t.Errorf("tie-break order not stable: %v %v %v",
			summary.Slowest[0].ItemID, summary.Slowest[1].ItemID, summary.Slowest[2].ItemID)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	results := []Result{
		{ItemID: 1, Correct: true, TimeSpent: 4},
		{ItemID: 2, Correct: false, TimeSpent: 9},
		{ItemID: 3, Correct: true, TimeSpent: 2},
	}
	first := Summarize(results)
	second := Summarize(results)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("summarize not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
