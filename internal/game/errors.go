package game

import "errors"

var (
	// ErrEmptyQueue is returned when a session start produced zero playable items
	ErrEmptyQueue = errors.New("no items matched the selected filters")

	// ErrSessionActive is returned when a start is attempted while a session is loading or active
	ErrSessionActive = errors.New("a session is already in progress")

	// ErrNotActive is returned when a play action arrives outside the Active phase
	ErrNotActive = errors.New("no active session")
)
