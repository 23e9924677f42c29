package models

import "time"

// OverallStats is the headline block of the statistics endpoint
type OverallStats struct {
	WordsAdded             int     `json:"wordsAdded"`
	ConjugationsAdded      int     `json:"conjugationsAdded"`
	WordGamesPlayed        int     `json:"wordGamesPlayed"`
	ConjugationGamesPlayed int     `json:"conjugationGamesPlayed"`
	AverageAccuracy        float64 `json:"averageAccuracy"`
	MostFrequentFormat     string  `json:"mostFrequentFormat"`
}

// GrowthPoint is one day in the cumulative content growth series
type GrowthPoint struct {
	Date                   string `json:"date"` // YYYY-MM-DD
	CumulativeWords        int    `json:"cumulativeWords"`
	CumulativeConjugations int    `json:"cumulativeConjugations"`
}

// GradedRunPoint is one graded session in the accuracy-over-time series
type GradedRunPoint struct {
	RunDate  time.Time `json:"run_date"`
	Accuracy float64   `json:"accuracy"`
}

// UngradedRunPoint is one ungraded session in the throughput series
type UngradedRunPoint struct {
	RunDate   time.Time `json:"run_date"`
	Score     int       `json:"score"`
	TimeLimit int       `json:"time_limit"`
	Ratio     float64   `json:"ratio"`
}

// TrackedItemStats summarizes practice history for one word or conjugation
type TrackedItemStats struct {
	Label         string  `json:"label"`
	TotalAttempts int     `json:"total_attempts"`
	Mistakes      int     `json:"mistakes"`
	Accuracy      float64 `json:"accuracy"`
}

// StatsReport is the full statistics endpoint payload
type StatsReport struct {
	OverallStats      OverallStats       `json:"overallStats"`
	CumulativeGrowth  []GrowthPoint      `json:"cumulativeGrowth"`
	GradedWordRuns    []GradedRunPoint   `json:"gradedWordRuns"`
	GradedConjRuns    []GradedRunPoint   `json:"gradedConjRuns"`
	UngradedWordRuns  []UngradedRunPoint `json:"ungradedWordRuns"`
	UngradedConjRuns  []UngradedRunPoint `json:"ungradedConjRuns"`
	BestWords         []TrackedItemStats `json:"bestWords"`
	WorstWords        []TrackedItemStats `json:"worstWords"`
	BestConjugations  []TrackedItemStats `json:"bestConjugations"`
	WorstConjugations []TrackedItemStats `json:"worstConjugations"`
}
