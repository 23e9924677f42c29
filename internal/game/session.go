package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is the lifecycle position of a session
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseActive  Phase = "active"
	PhaseEnded   Phase = "ended"
)

// QueueFetcher builds the item queue for a session start. An empty queue is
// a valid response, not an error.
type QueueFetcher interface {
	FetchQueue(ctx context.Context, cfg Config) ([]Item, error)
}

// QueueFetcherFunc adapts a function to the QueueFetcher interface
type QueueFetcherFunc func(ctx context.Context, cfg Config) ([]Item, error)

func (f QueueFetcherFunc) FetchQueue(ctx context.Context, cfg Config) ([]Item, error) {
	return f(ctx, cfg)
}

// RunRecorder persists a finished session. It is invoked at most once per
// completed session; failure does not reopen the session.
type RunRecorder interface {
	RecordRun(ctx context.Context, cfg Config, results []Result, attempts, correct int) error
}

// RunRecorderFunc adapts a function to the RunRecorder interface
type RunRecorderFunc func(ctx context.Context, cfg Config, results []Result, attempts, correct int) error

func (f RunRecorderFunc) RecordRun(ctx context.Context, cfg Config, results []Result, attempts, correct int) error {
	return f(ctx, cfg, results, attempts, correct)
}

// State is the read-only snapshot exposed to the transport layer
type State struct {
	Phase         Phase    `json:"phase"`
	Prompt        *string  `json:"prompt"`
	NeedsArticle  bool     `json:"needsArticle"`
	Position      int      `json:"position"`
	QueueLength   int      `json:"queueLength"`
	TimeRemaining int      `json:"timeRemaining"`
	Attempts      int      `json:"attempts"`
	Correct       int      `json:"correct"`
	LiveAccuracy  float64  `json:"liveAccuracy"`
	Summary       *Summary `json:"summary,omitempty"`
	Warning       string   `json:"warning,omitempty"`
}

// Session is the drill state machine. All event entry points serialize on
// one mutex, so transitions are processed one at a time. The 1-second timer
// goroutine is owned by the session and stopped whenever it leaves Active.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	fetcher  QueueFetcher
	recorder RunRecorder
	now      func() time.Time

	phase     Phase
	queue     []Item
	current   int
	results   []Result
	attempts  int
	correct   int
	startedAt time.Time
	itemStart time.Time
	stopTick  chan struct{}
	ended     bool
	warning   string
	warnings  []string
}

// NewSession creates a session in the Idle phase
func NewSession(cfg Config, fetcher QueueFetcher, recorder RunRecorder) *Session {
	return &Session{
		cfg:      cfg,
		fetcher:  fetcher,
		recorder: recorder,
		now:      time.Now,
		phase:    PhaseIdle,
	}
}

// Config returns the configuration the session was created with
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Start runs Idle → Loading → Active. It fails with ErrSessionActive if a
// session is already loading or active and with ErrEmptyQueue if the fetcher
// returned zero items, in which case the session returns to Idle.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.phase == PhaseLoading || s.phase == PhaseActive {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.phase = PhaseLoading
	cfg := s.cfg
	s.mu.Unlock()

	items, err := s.fetcher.FetchQueue(ctx, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseIdle
		return fmt.Errorf("fetching queue: %w", err)
	}
	if len(items) == 0 {
		s.phase = PhaseIdle
		return ErrEmptyQueue
	}

	s.queue = items
	s.current = 0
	s.results = nil
	s.attempts = 0
	s.correct = 0
	s.warning = ""
	s.ended = false
	s.startedAt = s.now()
	s.itemStart = s.startedAt
	s.phase = PhaseActive
	s.stopTick = make(chan struct{})
	go s.runTicker(s.stopTick)
	return nil
}

func (s *Session) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick recomputes the remaining time and ends the session when it reaches
// zero. An attempt in progress on the current item is discarded, never
// force-submitted.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return
	}
	if s.remainingLocked() <= 0 {
		s.endLocked()
	}
}

// Submit grades an explicit answer in graded mode. A result is appended
// whether the answer is right or wrong and the queue advances. Empty input
// and ungraded sessions are no-ops.
func (s *Session) Submit(answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	if s.cfg.Ungraded {
		return nil
	}
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return nil
	}

	item := s.queue[s.current]
	s.appendResultLocked(item, trimmed, isMatch(trimmed, item.Expected))
	s.advanceLocked()
	return nil
}

// UpdateInput re-evaluates the current input in ungraded mode. A miss is
// transient and never logged; the first exact match appends one correct
// result and advances without an explicit submit. Graded sessions ignore it.
func (s *Session) UpdateInput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	if !s.cfg.Ungraded {
		return nil
	}

	item := s.queue[s.current]
	if isMatch(text, item.Expected) {
		s.appendResultLocked(item, strings.TrimSpace(text), true)
		s.advanceLocked()
	}
	return nil
}

// Abort cancels an Active session: the timer is stopped and no end-of-run
// report is sent. The session returns to Idle.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	s.stopTickerLocked()
	s.ended = true
	s.phase = PhaseIdle
	s.queue = nil
	s.results = nil
	s.attempts = 0
	s.correct = 0
	return nil
}

// Restart leaves the Ended phase: with sameConfig it starts a fresh session
// with the same configuration, otherwise it returns to Idle so the caller
// can reconfigure.
func (s *Session) Restart(ctx context.Context, sameConfig bool) error {
	s.mu.Lock()
	if s.phase != PhaseEnded {
		s.mu.Unlock()
		return ErrNotActive
	}
	s.phase = PhaseIdle
	s.mu.Unlock()

	if !sameConfig {
		return nil
	}
	return s.Start(ctx)
}

// State returns a snapshot for rendering. The summary is populated only in
// the Ended phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Phase:        s.phase,
		Position:     s.current,
		QueueLength:  len(s.queue),
		Attempts:     s.attempts,
		Correct:      s.correct,
		LiveAccuracy: accuracyPct(s.correct, s.attempts),
		Warning:      s.warning,
	}
	switch s.phase {
	case PhaseActive:
		item := s.queue[s.current]
		prompt := item.Prompt
		state.Prompt = &prompt
		state.NeedsArticle = item.NeedsArticle
		state.TimeRemaining = s.remainingLocked()
	case PhaseEnded:
		summary := Summarize(s.results)
		state.Summary = &summary
	}
	return state
}

// Warnings returns the data-integrity warnings collected at queue build
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// SetWarnings stores queue-build warnings for later display
func (s *Session) SetWarnings(warnings []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = warnings
}

func (s *Session) remainingLocked() int {
	elapsed := int(s.now().Sub(s.startedAt) / time.Second)
	remaining := s.cfg.TimeLimit - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Session) appendResultLocked(item Item, answer string, correct bool) {
	spent := int(s.now().Sub(s.itemStart) / time.Second)
	s.results = append(s.results, Result{
		ItemID:        item.ID,
		Label:         item.Label,
		UserAnswer:    answer,
		CorrectAnswer: item.Answer,
		Correct:       correct,
		TimeSpent:     spent,
	})
	s.attempts++
	if correct {
		s.correct++
	}
}

func (s *Session) advanceLocked() {
	s.current++
	if s.current >= len(s.queue) {
		s.endLocked()
		return
	}
	s.itemStart = s.now()
}

// endLocked performs the one-shot Active → Ended transition. The recorder
// runs in its own goroutine so a slow or failing persistence call never
// blocks the summary; its failure is kept as a warning on the session.
func (s *Session) endLocked() {
	if s.ended {
		return
	}
	s.ended = true
	s.phase = PhaseEnded
	s.stopTickerLocked()

	if s.recorder == nil {
		return
	}
	cfg := s.cfg
	results := append([]Result(nil), s.results...)
	attempts, correct := s.attempts, s.correct
	go func() {
		if err := s.recorder.RecordRun(context.Background(), cfg, results, attempts, correct); err != nil {
			s.mu.Lock()
			s.warning = fmt.Sprintf("results could not be saved: %v", err)
			s.mu.Unlock()
		}
	}()
}

func (s *Session) stopTickerLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}
