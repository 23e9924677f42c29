package service

import (
	"fmt"
	"math"
	"sort"
	"time"
	"vocadrill/internal/models"
	"vocadrill/internal/repository"
)

// StatsService assembles the statistics report from runs, tracking data
// and content creation history
type StatsService struct {
	gameRepo        *repository.GameRepository
	wordRepo        *repository.WordRepository
	conjugationRepo *repository.ConjugationRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	gameRepo *repository.GameRepository,
	wordRepo *repository.WordRepository,
	conjugationRepo *repository.ConjugationRepository,
) *StatsService {
	return &StatsService{
		gameRepo:        gameRepo,
		wordRepo:        wordRepo,
		conjugationRepo: conjugationRepo,
	}
}

// rangeStart maps a range name to its window start. "all" yields the zero
// time, which every timestamp is after.
func rangeStart(timeRange string, now time.Time) time.Time {
	switch timeRange {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Report builds the full statistics payload for a user. The range window
// applies to every section: runs, content counts, growth and tracking.
func (s *StatsService) Report(userID int64, timeRange string) (*models.StatsReport, error) {
	since := rangeStart(timeRange, time.Now())

	wordRuns, err := s.gameRepo.ListWordRuns(userID, since)
	if err != nil {
		return nil, err
	}
	conjRuns, err := s.gameRepo.ListConjugationRuns(userID, since)
	if err != nil {
		return nil, err
	}
	wordDates, conjDates, err := s.gameRepo.CreationDates(userID)
	if err != nil {
		return nil, err
	}
	_, wordTracking, err := s.wordRepo.GetTrackedWords(userID)
	if err != nil {
		return nil, err
	}
	_, conjTracking, err := s.conjugationRepo.GetTrackedConjugations(userID)
	if err != nil {
		return nil, err
	}

	report := &models.StatsReport{
		CumulativeGrowth: buildGrowth(filterDates(wordDates, since), filterDates(conjDates, since)),
		GradedWordRuns:   []models.GradedRunPoint{},
		GradedConjRuns:   []models.GradedRunPoint{},
		UngradedWordRuns: []models.UngradedRunPoint{},
		UngradedConjRuns: []models.UngradedRunPoint{},
	}

	// Overall aggregates across graded runs of both drills
	totalAttempts, totalCorrect := 0, 0
	formats := newFormatCounter()

	for _, run := range wordRuns {
		formats.add(fmt.Sprintf("Vocabulary (%s), %ds, %s", run.GameType, run.TimeLimit, zenLabel(run.ZenMode)))
		if run.Ungraded {
			report.UngradedWordRuns = append(report.UngradedWordRuns, models.UngradedRunPoint{
				RunDate:   run.FinishedAt,
				Score:     run.CorrectCount,
				TimeLimit: run.TimeLimit,
				Ratio:     scoreRatio(run.CorrectCount, run.TimeLimit),
			})
			continue
		}
		totalAttempts += run.TotalAttempts
		totalCorrect += run.CorrectCount
		report.GradedWordRuns = append(report.GradedWordRuns, models.GradedRunPoint{
			RunDate:  run.FinishedAt,
			Accuracy: runAccuracy(run.CorrectCount, run.TotalAttempts),
		})
	}

	for _, run := range conjRuns {
		formats.add(fmt.Sprintf("Conjugation, %ds, %s", run.TimeLimit, zenLabel(run.ZenMode)))
		if run.Ungraded {
			report.UngradedConjRuns = append(report.UngradedConjRuns, models.UngradedRunPoint{
				RunDate:   run.FinishedAt,
				Score:     run.CorrectCount,
				TimeLimit: run.TimeLimit,
				Ratio:     scoreRatio(run.CorrectCount, run.TimeLimit),
			})
			continue
		}
		totalAttempts += run.TotalAttempts
		totalCorrect += run.CorrectCount
		report.GradedConjRuns = append(report.GradedConjRuns, models.GradedRunPoint{
			RunDate:  run.FinishedAt,
			Accuracy: runAccuracy(run.CorrectCount, run.TotalAttempts),
		})
	}

	averageAccuracy := 0.0
	if totalAttempts > 0 {
		averageAccuracy = round2(float64(totalCorrect) / float64(totalAttempts) * 100)
	}

	report.OverallStats = models.OverallStats{
		WordsAdded:             len(filterDates(wordDates, since)),
		ConjugationsAdded:      len(filterDates(conjDates, since)),
		WordGamesPlayed:        len(wordRuns),
		ConjugationGamesPlayed: len(conjRuns),
		AverageAccuracy:        averageAccuracy,
		MostFrequentFormat:     formats.mostFrequent(),
	}

	wordEntries := wordTrackingStats(wordTracking, since)
	report.BestWords, report.WorstWords = bestAndWorst(wordEntries)

	conjEntries := conjTrackingStats(conjTracking, since)
	report.BestConjugations, report.WorstConjugations = bestAndWorst(conjEntries)

	return report, nil
}

func zenLabel(zen bool) string {
	if zen {
		return "Zen"
	}
	return "Non-Zen"
}

func runAccuracy(correct, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return round2(float64(correct) / float64(attempts) * 100)
}

// scoreRatio is correct answers per second of session time
func scoreRatio(score, timeLimit int) float64 {
	if timeLimit == 0 {
		return 0
	}
	return float64(score) / float64(timeLimit)
}

func filterDates(dates []time.Time, since time.Time) []time.Time {
	if since.IsZero() {
		return dates
	}
	var kept []time.Time
	for _, d := range dates {
		if !d.Before(since) {
			kept = append(kept, d)
		}
	}
	return kept
}

// buildGrowth merges per-day creation counts into a cumulative series
func buildGrowth(wordDates, conjDates []time.Time) []models.GrowthPoint {
	type daily struct{ words, conjugations int }
	byDay := make(map[string]*daily)
	day := func(t time.Time) *daily {
		key := t.Format("2006-01-02")
		if d, ok := byDay[key]; ok {
			return d
		}
		d := &daily{}
		byDay[key] = d
		return d
	}
	for _, t := range wordDates {
		day(t).words++
	}
	for _, t := range conjDates {
		day(t).conjugations++
	}

	days := make([]string, 0, len(byDay))
	for key := range byDay {
		days = append(days, key)
	}
	sort.Strings(days)

	growth := make([]models.GrowthPoint, 0, len(days))
	cumWords, cumConjugations := 0, 0
	for _, key := range days {
		cumWords += byDay[key].words
		cumConjugations += byDay[key].conjugations
		growth = append(growth, models.GrowthPoint{
			Date:                   key,
			CumulativeWords:        cumWords,
			CumulativeConjugations: cumConjugations,
		})
	}
	return growth
}

type trackingEntry struct {
	stats    models.TrackedItemStats
	mistakes int
}

func wordTrackingStats(tracking []models.WordTracking, since time.Time) []trackingEntry {
	var entries []trackingEntry
	for _, t := range tracking {
		if t.TotalAttempts == 0 {
			continue
		}
		if !since.IsZero() && t.LastAccessed.Before(since) {
			continue
		}
		entries = append(entries, trackingEntry{
			stats: models.TrackedItemStats{
				Label:         t.Word,
				TotalAttempts: t.TotalAttempts,
				Mistakes:      t.Mistakes,
				Accuracy:      trackedAccuracy(t.TotalAttempts, t.Mistakes),
			},
			mistakes: t.Mistakes,
		})
	}
	return entries
}

func conjTrackingStats(tracking []models.ConjugationTracking, since time.Time) []trackingEntry {
	var entries []trackingEntry
	for _, t := range tracking {
		if t.TotalAttempts == 0 {
			continue
		}
		if !since.IsZero() && t.LastAccessed.Before(since) {
			continue
		}
		entries = append(entries, trackingEntry{
			stats: models.TrackedItemStats{
				Label:         t.Verb,
				TotalAttempts: t.TotalAttempts,
				Mistakes:      t.Mistakes,
				Accuracy:      trackedAccuracy(t.TotalAttempts, t.Mistakes),
			},
			mistakes: t.Mistakes,
		})
	}
	return entries
}

func trackedAccuracy(attempts, mistakes int) float64 {
	if attempts == 0 {
		return 0
	}
	return round2(float64(attempts-mistakes) / float64(attempts) * 100)
}

// bestAndWorst returns the top 5 by accuracy then attempts, and the top 5
// by mistakes then attempts
func bestAndWorst(entries []trackingEntry) (best, worst []models.TrackedItemStats) {
	byAccuracy := append([]trackingEntry(nil), entries...)
	sort.SliceStable(byAccuracy, func(i, j int) bool {
		if byAccuracy[i].stats.Accuracy != byAccuracy[j].stats.Accuracy {
			return byAccuracy[i].stats.Accuracy > byAccuracy[j].stats.Accuracy
		}
		return byAccuracy[i].stats.TotalAttempts > byAccuracy[j].stats.TotalAttempts
	})

	byMistakes := append([]trackingEntry(nil), entries...)
	sort.SliceStable(byMistakes, func(i, j int) bool {
		if byMistakes[i].mistakes != byMistakes[j].mistakes {
			return byMistakes[i].mistakes > byMistakes[j].mistakes
		}
		return byMistakes[i].stats.TotalAttempts > byMistakes[j].stats.TotalAttempts
	})

	best = make([]models.TrackedItemStats, 0, 5)
	for i := 0; i < len(byAccuracy) && i < 5; i++ {
		best = append(best, byAccuracy[i].stats)
	}
	worst = make([]models.TrackedItemStats, 0, 5)
	for i := 0; i < len(byMistakes) && i < 5; i++ {
		worst = append(worst, byMistakes[i].stats)
	}
	return best, worst
}

// formatCounter tracks run format frequencies in first-seen order so ties
// resolve deterministically
type formatCounter struct {
	order  []string
	counts map[string]int
}

func newFormatCounter() *formatCounter {
	return &formatCounter{counts: make(map[string]int)}
}

func (f *formatCounter) add(format string) {
	if _, seen := f.counts[format]; !seen {
		f.order = append(f.order, format)
	}
	f.counts[format]++
}

func (f *formatCounter) mostFrequent() string {
	best := "N/A"
	bestCount := 0
	for _, format := range f.order {
		if f.counts[format] > bestCount {
			best = format
			bestCount = f.counts[format]
		}
	}
	return best
}
