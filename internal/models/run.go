package models

import "time"

// GameRun is a persisted record of one completed word drill session
type GameRun struct {
	ID            int64     `json:"id"`
	FinishedAt    time.Time `json:"finished_at"`
	TimeLimit     int       `json:"time_limit"` // seconds
	GameType      string    `json:"game_type"`
	ZenMode       bool      `json:"zen_mode"`
	Ungraded      bool      `json:"ungraded"`
	TotalAttempts int       `json:"total_attempts"`
	CorrectCount  int       `json:"correct_count"`
}

// ConjugationGameRun is a persisted record of one completed conjugation drill session
type ConjugationGameRun struct {
	ID             int64     `json:"id"`
	FinishedAt     time.Time `json:"finished_at"`
	TimeLimit      int       `json:"time_limit"` // seconds
	Mode           string    `json:"mode"`       // regular, irregular, both
	ZenMode        bool      `json:"zen_mode"`
	Ungraded       bool      `json:"ungraded"`
	Tenses         []string  `json:"tenses"`
	Groups         []int     `json:"groups"`
	PronominalMode string    `json:"pronominal_mode"`
	TotalAttempts  int       `json:"total_attempts"`
	CorrectCount   int       `json:"correct_count"`
}
