package service

import (
	"reflect"
	"testing"
	"time"
	"vocadrill/internal/models"
)

func TestRunAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		attempts int
		want     float64
	}{
		{"perfect", 10, 10, 100},
		{"two thirds", 2, 3, 66.67},
		{"zero attempts", 0, 0, 0},
		{"all wrong", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runAccuracy(tt.correct, tt.attempts); got != tt.want {
				t.Errorf("runAccuracy(%d, %d) = %v, want %v", tt.correct, tt.attempts, got, tt.want)
			}
		})
	}
}

func TestScoreRatio(t *testing.T) {
	if got := scoreRatio(30, 60); got != 0.5 {
		t.Errorf("scoreRatio(30, 60) = %v, want 0.5", got)
	}
	if got := scoreRatio(5, 0); got != 0 {
		t.Errorf("scoreRatio with zero time limit = %v, want 0", got)
	}
}

func TestRangeStart(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	if got := rangeStart("all", now); !got.IsZero() {
		t.Errorf("rangeStart(all) = %v, want zero time", got)
	}
	if got := rangeStart("week", now); got != now.AddDate(0, 0, -7) {
		t.Errorf("rangeStart(week) = %v", got)
	}
	if got := rangeStart("month", now); got != now.AddDate(0, 0, -30) {
		t.Errorf("rangeStart(month) = %v", got)
	}
	if got := rangeStart("garbage", now); !got.IsZero() {
		t.Errorf("rangeStart with unknown range = %v, want zero time", got)
	}
}

func TestFilterDates(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{base, base.AddDate(0, 0, 5), base.AddDate(0, 0, 10)}

	all := filterDates(dates, time.Time{})
	if len(all) != 3 {
		t.Errorf("zero since kept %d dates, want 3", len(all))
	}

	kept := filterDates(dates, base.AddDate(0, 0, 5))
	if len(kept) != 2 {
		t.Errorf("filtered to %d dates, want 2", len(kept))
	}
}

func TestBuildGrowth(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
	}
	words := []time.Time{day(1), day(1), day(3)}
	conjugations := []time.Time{day(2), day(3), day(3)}

	got := buildGrowth(words, conjugations)
	want := []models.GrowthPoint{
		{Date: "2026-03-01", CumulativeWords: 2, CumulativeConjugations: 0},
		{Date: "2026-03-02", CumulativeWords: 2, CumulativeConjugations: 1},
		{Date: "2026-03-03", CumulativeWords: 3, CumulativeConjugations: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildGrowth = %+v, want %+v", got, want)
	}
}

func TestBuildGrowthEmpty(t *testing.T) {
	got := buildGrowth(nil, nil)
	if len(got) != 0 {
		t.Errorf("expected empty growth series, got %+v", got)
	}
}

func TestWordTrackingStatsFiltering(t *testing.T) {
	base := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	tracking := []models.WordTracking{
		{Word: "chat", TotalAttempts: 10, Mistakes: 2, LastAccessed: base},
		{Word: "chien", TotalAttempts: 0, Mistakes: 0, LastAccessed: base},
		{Word: "maison", TotalAttempts: 4, Mistakes: 1, LastAccessed: base.AddDate(0, 0, -20)},
	}

	all := wordTrackingStats(tracking, time.Time{})
	if len(all) != 2 {
		t.Fatalf("expected 2 entries without a window, got %d", len(all))
	}
	if all[0].stats.Label != "chat" || all[0].stats.Accuracy != 80 {
		t.Errorf("unexpected first entry: %+v", all[0].stats)
	}

	windowed := wordTrackingStats(tracking, base.AddDate(0, 0, -7))
	if len(windowed) != 1 || windowed[0].stats.Label != "chat" {
		t.Errorf("window should keep only recently accessed items, got %+v", windowed)
	}
}

func TestConjTrackingStatsLabel(t *testing.T) {
	tracking := []models.ConjugationTracking{
		{Verb: "parler", Person: "je", Tense: "présent", TotalAttempts: 6, Mistakes: 3, LastAccessed: time.Now()},
	}
	entries := conjTrackingStats(tracking, time.Time{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].stats.Label != "parler" {
		t.Errorf("label = %q, want the verb alone", entries[0].stats.Label)
	}
	if entries[0].stats.Accuracy != 50 {
		t.Errorf("accuracy = %v, want 50", entries[0].stats.Accuracy)
	}
}

func TestBestAndWorst(t *testing.T) {
	entries := []trackingEntry{
		{stats: models.TrackedItemStats{Label: "a", TotalAttempts: 10, Mistakes: 0, Accuracy: 100}, mistakes: 0},
		{stats: models.TrackedItemStats{Label: "b", TotalAttempts: 4, Mistakes: 0, Accuracy: 100}, mistakes: 0},
		{stats: models.TrackedItemStats{Label: "c", TotalAttempts: 8, Mistakes: 4, Accuracy: 50}, mistakes: 4},
		{stats: models.TrackedItemStats{Label: "d", TotalAttempts: 2, Mistakes: 1, Accuracy: 50}, mistakes: 1},
		{stats: models.TrackedItemStats{Label: "e", TotalAttempts: 6, Mistakes: 4, Accuracy: 33.33}, mistakes: 4},
		{stats: models.TrackedItemStats{Label: "f", TotalAttempts: 3, Mistakes: 2, Accuracy: 33.33}, mistakes: 2},
	}

	best, worst := bestAndWorst(entries)

	bestLabels := []string{}
	for _, s := range best {
		bestLabels = append(bestLabels, s.Label)
	}
	// Accuracy descending, ties broken by attempts descending
	if !reflect.DeepEqual(bestLabels, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("best order = %v", bestLabels)
	}

	worstLabels := []string{}
	for _, s := range worst {
		worstLabels = append(worstLabels, s.Label)
	}
	// Mistakes descending, ties broken by attempts descending
	if !reflect.DeepEqual(worstLabels, []string{"c", "e", "f", "d", "a"}) {
		t.Errorf("worst order = %v", worstLabels)
	}
}

func TestBestAndWorstTruncatesToFive(t *testing.T) {
	var entries []trackingEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, trackingEntry{
			stats: models.TrackedItemStats{Label: "x", TotalAttempts: i + 1, Accuracy: 100},
		})
	}
	best, worst := bestAndWorst(entries)
	if len(best) != 5 || len(worst) != 5 {
		t.Errorf("len(best) = %d, len(worst) = %d, want 5 each", len(best), len(worst))
	}
}

func TestFormatCounter(t *testing.T) {
	f := newFormatCounter()
	if got := f.mostFrequent(); got != "N/A" {
		t.Errorf("empty counter = %q, want N/A", got)
	}

	f.add("Vocabulary (both), 60s, Non-Zen")
	f.add("Conjugation, 120s, Zen")
	f.add("Conjugation, 120s, Zen")
	if got := f.mostFrequent(); got != "Conjugation, 120s, Zen" {
		t.Errorf("mostFrequent = %q", got)
	}

	// Ties resolve to the format seen first
	f.add("Vocabulary (both), 60s, Non-Zen")
	if got := f.mostFrequent(); got != "Vocabulary (both), 60s, Non-Zen" {
		t.Errorf("tie should keep first-seen format, got %q", got)
	}
}

func TestZenLabel(t *testing.T) {
	if zenLabel(true) != "Zen" || zenLabel(false) != "Non-Zen" {
		t.Error("zenLabel mapping wrong")
	}
}
