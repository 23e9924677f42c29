package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"vocadrill/internal/game"
	"vocadrill/internal/models"
	"vocadrill/internal/repository"
)

// GameService builds drill queues and persists finished runs. It is the
// queue-fetch and session-end collaborator of the session engine.
type GameService struct {
	wordRepo        *repository.WordRepository
	conjugationRepo *repository.ConjugationRepository
	gameRepo        *repository.GameRepository
	queueLimit      int
}

// NewGameService creates a new game service
func NewGameService(
	wordRepo *repository.WordRepository,
	conjugationRepo *repository.ConjugationRepository,
	gameRepo *repository.GameRepository,
	queueLimit int,
) *GameService {
	if queueLimit <= 0 {
		queueLimit = 500
	}
	return &GameService{
		wordRepo:        wordRepo,
		conjugationRepo: conjugationRepo,
		gameRepo:        gameRepo,
		queueLimit:      queueLimit,
	}
}

// refreshScore recomputes an item's selection weight at queue-build time.
// Recent mistakes and time since last practice raise the weight; the floor
// keeps every item selectable.
func refreshScore(mistakes int, lastAccessed, now time.Time) float64 {
	hours := now.Sub(lastAccessed).Hours()
	if hours < 0 {
		hours = 0
	}
	score := 1 + float64(mistakes)*2 + hours
	if score < 1 {
		return 1
	}
	return score
}

// weightedSample picks up to count indices without replacement, with
// selection probability proportional to weight
func weightedSample(weights []float64, count int, rng *rand.Rand) []int {
	indices := make([]int, len(weights))
	remaining := make([]float64, len(weights))
	for i := range weights {
		indices[i] = i
		remaining[i] = weights[i]
	}

	if count > len(indices) {
		count = len(indices)
	}

	selected := make([]int, 0, count)
	for len(selected) < count && len(indices) > 0 {
		totalWeight := 0.0
		for _, w := range remaining {
			totalWeight += w
		}

		r := rng.Float64() * totalWeight
		cumWeight := 0.0
		pick := 0
		for i, w := range remaining {
			cumWeight += w
			if r <= cumWeight {
				pick = i
				break
			}
		}

		selected = append(selected, indices[pick])
		indices = append(indices[:pick], indices[pick+1:]...)
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return selected
}

// BuildWordQueue assembles the item queue for a word drill: refresh the
// selection scores, sample up to the queue limit weighted by score, then
// normalize into queue items. An empty queue is a valid result.
func (s *GameService) BuildWordQueue(userID int64, cfg game.Config) ([]game.Item, []string, error) {
	words, tracking, err := s.wordRepo.GetTrackedWords(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	if len(words) == 0 {
		return nil, nil, nil
	}

	now := time.Now()
	weights := make([]float64, len(words))
	for i, track := range tracking {
		weights[i] = refreshScore(track.Mistakes, track.LastAccessed, now)
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	picked := weightedSample(weights, s.queueLimit, rng)

	selected := make([]models.Word, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, words[i])
	}

	items, warnings := game.WordItems(selected, cfg.Direction, rng)
	return items, warnings, nil
}

// BuildConjugationQueue assembles the item queue for a conjugation drill,
// applying the mode, tense, group and pronominal filters before weighting.
// An empty filter dimension means no constraint.
func (s *GameService) BuildConjugationQueue(userID int64, cfg game.Config) ([]game.Item, []string, error) {
	conjugations, tracking, err := s.conjugationRepo.GetTrackedConjugations(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load conjugations: %w", err)
	}

	now := time.Now()
	var filtered []models.Conjugation
	var weights []float64
	for i, c := range conjugations {
		if !matchesFilters(c, cfg) {
			continue
		}
		filtered = append(filtered, c)
		weights = append(weights, refreshScore(tracking[i].Mistakes, tracking[i].LastAccessed, now))
	}
	if len(filtered) == 0 {
		return nil, nil, nil
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	picked := weightedSample(weights, s.queueLimit, rng)

	selected := make([]models.Conjugation, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, filtered[i])
	}

	items, warnings := game.ConjugationItems(selected)
	return items, warnings, nil
}

func matchesFilters(c models.Conjugation, cfg game.Config) bool {
	switch cfg.Mode {
	case "regular":
		if c.Irregular {
			return false
		}
	case "irregular":
		if !c.Irregular {
			return false
		}
	}

	switch cfg.Pronominal {
	case game.PronominalOnly:
		if !c.Pronominal {
			return false
		}
	case game.PronominalExclude:
		if c.Pronominal {
			return false
		}
	}

	if len(cfg.Tenses) > 0 {
		found := false
		for _, tense := range cfg.Tenses {
			if strings.EqualFold(tense, c.Tense) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(cfg.Groups) > 0 {
		found := false
		for _, group := range cfg.Groups {
			if group == c.VerbGroup {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// RecordWordRun persists a finished word drill and its tracking updates
func (s *GameService) RecordWordRun(userID int64, cfg game.Config, results []game.Result, attempts, correct int) error {
	run := &models.GameRun{
		FinishedAt:    time.Now(),
		TimeLimit:     cfg.TimeLimit,
		GameType:      cfg.Direction,
		ZenMode:       cfg.ZenMode,
		Ungraded:      cfg.Ungraded,
		TotalAttempts: attempts,
		CorrectCount:  correct,
	}
	return s.gameRepo.RecordWordRun(userID, run, trackingUpdates(results))
}

// RecordConjugationRun persists a finished conjugation drill and its
// tracking updates
func (s *GameService) RecordConjugationRun(userID int64, cfg game.Config, results []game.Result, attempts, correct int) error {
	run := &models.ConjugationGameRun{
		FinishedAt:     time.Now(),
		TimeLimit:      cfg.TimeLimit,
		Mode:           cfg.Mode,
		Tenses:         cfg.Tenses,
		Groups:         cfg.Groups,
		PronominalMode: cfg.Pronominal,
		ZenMode:        cfg.ZenMode,
		Ungraded:       cfg.Ungraded,
		TotalAttempts:  attempts,
		CorrectCount:   correct,
	}
	return s.gameRepo.RecordConjugationRun(userID, run, trackingUpdates(results))
}

func trackingUpdates(results []game.Result) []repository.TrackingUpdate {
	updates := make([]repository.TrackingUpdate, len(results))
	for i, r := range results {
		updates[i] = repository.TrackingUpdate{ItemID: r.ItemID, Correct: r.Correct}
	}
	return updates
}
