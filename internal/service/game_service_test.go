package service

import (
	"math/rand"
	"testing"
	"time"
	"vocadrill/internal/game"
	"vocadrill/internal/models"
)

func TestRefreshScore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		mistakes     int
		lastAccessed time.Time
		want         float64
	}{
		{"fresh item no mistakes", 0, now, 1},
		{"mistakes weigh double", 3, now, 7},
		{"hours since access add up", 0, now.Add(-5 * time.Hour), 6},
		{"future access clamps to floor", 0, now.Add(2 * time.Hour), 1},
		{"mistakes and staleness combine", 2, now.Add(-10 * time.Hour), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := refreshScore(tt.mistakes, tt.lastAccessed, now); got != tt.want {
				t.Errorf("refreshScore(%d, %v) = %v, want %v", tt.mistakes, tt.lastAccessed, got, tt.want)
			}
		})
	}
}

func TestWeightedSampleWithoutReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := []float64{1, 5, 2, 8, 3}

	picked := weightedSample(weights, 5, rng)
	if len(picked) != 5 {
		t.Fatalf("picked %d indices, want 5", len(picked))
	}
	seen := make(map[int]bool)
	for _, i := range picked {
		if seen[i] {
			t.Errorf("index %d picked twice", i)
		}
		if i < 0 || i >= len(weights) {
			t.Errorf("index %d out of range", i)
		}
		seen[i] = true
	}
}

func TestWeightedSampleRespectsCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	picked := weightedSample([]float64{1, 1, 1, 1}, 2, rng)
	if len(picked) != 2 {
		t.Errorf("picked %d indices, want 2", len(picked))
	}

	picked = weightedSample([]float64{1, 1}, 10, rng)
	if len(picked) != 2 {
		t.Errorf("count beyond population picked %d, want 2", len(picked))
	}

	picked = weightedSample(nil, 5, rng)
	if len(picked) != 0 {
		t.Errorf("empty population picked %d, want 0", len(picked))
	}
}

func TestWeightedSampleFavorsHeavyItems(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := []float64{1, 1, 1, 100}

	heavyFirst := 0
	for i := 0; i < 200; i++ {
		picked := weightedSample(weights, 1, rng)
		if picked[0] == 3 {
			heavyFirst++
		}
	}
	if heavyFirst < 150 {
		t.Errorf("heaviest item picked first only %d/200 times", heavyFirst)
	}
}

func TestMatchesFilters(t *testing.T) {
	conj := func(irregular, pronominal bool, tense string, group int) models.Conjugation {
		return models.Conjugation{
			Verb:       "parler",
			Person:     "je",
			Tense:      tense,
			Irregular:  irregular,
			Pronominal: pronominal,
			VerbGroup:  group,
		}
	}

	tests := []struct {
		name string
		c    models.Conjugation
		cfg  game.Config
		want bool
	}{
		{"no filters match everything", conj(true, true, "présent", 3), game.Config{}, true},
		{"regular mode excludes irregular", conj(true, false, "présent", 1), game.Config{Mode: "regular"}, false},
		{"regular mode keeps regular", conj(false, false, "présent", 1), game.Config{Mode: "regular"}, true},
		{"irregular mode excludes regular", conj(false, false, "présent", 1), game.Config{Mode: "irregular"}, false},
		{"pronominal only", conj(false, false, "présent", 1), game.Config{Pronominal: game.PronominalOnly}, false},
		{"pronominal exclude", conj(false, true, "présent", 1), game.Config{Pronominal: game.PronominalExclude}, false},
		{"pronominal both keeps all", conj(false, true, "présent", 1), game.Config{Pronominal: game.PronominalBoth}, true},
		{"tense filter case insensitive", conj(false, false, "présent", 1), game.Config{Tenses: []string{"Présent"}}, true},
		{"tense filter rejects others", conj(false, false, "imparfait", 1), game.Config{Tenses: []string{"présent"}}, false},
		{"group filter keeps member", conj(false, false, "présent", 2), game.Config{Groups: []int{1, 2}}, true},
		{"group filter rejects non-member", conj(false, false, "présent", 3), game.Config{Groups: []int{1, 2}}, false},
		{
			"all filters combined",
			conj(false, true, "futur", 2),
			game.Config{Mode: "regular", Pronominal: game.PronominalOnly, Tenses: []string{"futur"}, Groups: []int{2}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesFilters(tt.c, tt.cfg); got != tt.want {
				t.Errorf("matchesFilters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackingUpdates(t *testing.T) {
	results := []game.Result{
		{ItemID: 1, Correct: true},
		{ItemID: 2, Correct: false},
		{ItemID: 3, Correct: true},
	}
	updates := trackingUpdates(results)
	if len(updates) != 3 {
		t.Fatalf("got %d updates, want 3", len(updates))
	}
	for i, update := range updates {
		if update.ItemID != results[i].ItemID || update.Correct != results[i].Correct {
			t.Errorf("update %d = %+v, want %+v", i, update, results[i])
		}
	}
}
