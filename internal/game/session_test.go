package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordedRun struct {
	cfg      Config
	results  []Result
	attempts int
	correct  int
}

type captureRecorder struct {
	calls chan recordedRun
	err   error
}

func newCaptureRecorder() *captureRecorder {
	return &captureRecorder{calls: make(chan recordedRun, 4)}
}

func (r *captureRecorder) RecordRun(_ context.Context, cfg Config, results []Result, attempts, correct int) error {
	r.calls <- recordedRun{cfg: cfg, results: results, attempts: attempts, correct: correct}
	return r.err
}

func (r *captureRecorder) waitForRun(t *testing.T) recordedRun {
	t.Helper()
	select {
	case run := <-r.calls:
		return run
	case <-time.After(time.Second):
		t.Fatal("run recorder was not invoked")
		return recordedRun{}
	}
}

func (r *captureRecorder) expectNoRun(t *testing.T) {
	t.Helper()
	select {
	case <-r.calls:
		t.Fatal("run recorder invoked unexpectedly")
	case <-time.After(50 * time.Millisecond):
	}
}

func queueOf(items ...Item) QueueFetcherFunc {
	return func(context.Context, Config) ([]Item, error) {
		return items, nil
	}
}

func wordItem(id int64, prompt, answer string) Item {
	return Item{ID: id, Label: prompt, Prompt: prompt, Expected: []string{answer}, Answer: answer}
}

func startedSession(t *testing.T, cfg Config, fetcher QueueFetcher, recorder RunRecorder) (*Session, *fakeClock) {
	t.Helper()
	session := NewSession(cfg, fetcher, recorder)
	clock := newFakeClock()
	session.now = clock.Now
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return session, clock
}

func TestStartEmptyQueue(t *testing.T) {
	session := NewSession(Config{TimeLimit: 60}, queueOf(), nil)
	err := session.Start(context.Background())
	if !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue, got %v", err)
	}
	if state := session.State(); state.Phase != PhaseIdle {
		t.Errorf("expected phase idle after empty queue, got %s", state.Phase)
	}
}

func TestStartFetchFailure(t *testing.T) {
	fetchErr := errors.New("connection refused")
	fetcher := QueueFetcherFunc(func(context.Context, Config) ([]Item, error) {
		return nil, fetchErr
	})
	session := NewSession(Config{TimeLimit: 60}, fetcher, nil)
	err := session.Start(context.Background())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if state := session.State(); state.Phase != PhaseIdle {
		t.Errorf("expected phase idle after fetch failure, got %s", state.Phase)
	}
}

func TestStartWhileActive(t *testing.T) {
	session, _ := startedSession(t, Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), nil)
	if err := session.Start(context.Background()); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
}

func TestGradedQueueExhaustion(t *testing.T) {
	recorder := newCaptureRecorder()
	items := make([]Item, 5)
	for i := range items {
		items[i] = wordItem(int64(i+1), "chat", "cat")
	}
	session, clock := startedSession(t, Config{TimeLimit: 120}, queueOf(items...), recorder)

	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		if err := session.Submit("cat"); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	state := session.State()
	if state.Phase != PhaseEnded {
		t.Fatalf("expected phase ended via queue exhaustion, got %s", state.Phase)
	}
	if state.Summary == nil || state.Summary.Attempts != 5 || state.Summary.Correct != 5 {
		t.Fatalf("unexpected summary: %+v", state.Summary)
	}

	run := recorder.waitForRun(t)
	if run.attempts != 5 || run.correct != 5 {
		t.Errorf("recorder got attempts=%d correct=%d, want 5/5", run.attempts, run.correct)
	}
	recorder.expectNoRun(t)
}

func TestGradedWrongAnswerLogged(t *testing.T) {
	session, _ := startedSession(t, Config{TimeLimit: 60},
		queueOf(wordItem(1, "chat", "cat"), wordItem(2, "chien", "dog")), nil)

	if err := session.Submit("dog"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	state := session.State()
	if state.Attempts != 1 || state.Correct != 0 {
		t.Errorf("expected 1 attempt and 0 correct, got %d/%d", state.Correct, state.Attempts)
	}
	if state.Position != 1 {
		t.Errorf("expected queue advanced to position 1, got %d", state.Position)
	}
}

func TestGradedArticleRequired(t *testing.T) {
	session, _ := startedSession(t, Config{TimeLimit: 60},
		queueOf(
			Item{ID: 1, Label: "chat", Prompt: "cat", Expected: []string{"le chat"}, Answer: "le chat", NeedsArticle: true},
			wordItem(2, "chien", "dog"),
		), nil)

	if err := session.Submit("chat"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if state := session.State(); state.Correct != 0 {
		t.Error("bare word should not match when the article is required")
	}

	session2, _ := startedSession(t, Config{TimeLimit: 60},
		queueOf(
			Item{ID: 1, Label: "chat", Prompt: "cat", Expected: []string{"le chat"}, Answer: "le chat", NeedsArticle: true},
			wordItem(2, "chien", "dog"),
		), nil)
	if err := session2.Submit("le chat"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if state := session2.State(); state.Correct != 1 {
		t.Error("article plus word should match")
	}
}

func TestGradedEmptySubmitIsNoOp(t *testing.T) {
	session, _ := startedSession(t, Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), nil)
	if err := session.Submit("   "); err != nil {
		t.Fatalf("empty submit should not error: %v", err)
	}
	state := session.State()
	if state.Attempts != 0 || state.Position != 0 {
		t.Error("empty submit must not log a result or advance")
	}
}

func TestUngradedPartialInputs(t *testing.T) {
	session, _ := startedSession(t, Config{TimeLimit: 60, Ungraded: true},
		queueOf(wordItem(1, "chat", "chat"), wordItem(2, "chien", "chien")), nil)

	for _, partial := range []string{"ca", "cha"} {
		if err := session.UpdateInput(partial); err != nil {
			t.Fatalf("input %q failed: %v", partial, err)
		}
		if state := session.State(); state.Attempts != 0 {
			t.Fatalf("partial input %q must not log a result", partial)
		}
	}

	if err := session.UpdateInput("chat"); err != nil {
		t.Fatalf("matching input failed: %v", err)
	}
	state := session.State()
	if state.Attempts != 1 || state.Correct != 1 {
		t.Errorf("expected exactly one correct result, got %d/%d", state.Correct, state.Attempts)
	}
	if state.Position != 1 {
		t.Error("ungraded match should auto-advance")
	}
}

func TestUngradedNeverLogsWrong(t *testing.T) {
	recorder := newCaptureRecorder()
	session, clock := startedSession(t, Config{TimeLimit: 30, Ungraded: true},
		queueOf(wordItem(1, "chat", "chat")), recorder)

	session.UpdateInput("wrong")
	session.UpdateInput("still wrong")
	clock.Advance(31 * time.Second)
	session.Tick()

	run := recorder.waitForRun(t)
	if run.attempts != 0 || len(run.results) != 0 {
		t.Errorf("ungraded misses must never be logged, got %d results", len(run.results))
	}
	if run.attempts != run.correct {
		t.Error("ungraded attempts must equal correct count")
	}
}

func TestSubmitIgnoredInUngradedMode(t *testing.T) {
	session, _ := startedSession(t, Config{TimeLimit: 60, Ungraded: true},
		queueOf(wordItem(1, "chat", "chat")), nil)
	if err := session.Submit("chat"); err != nil {
		t.Fatalf("submit in ungraded mode should be a no-op, got %v", err)
	}
	if state := session.State(); state.Attempts != 0 || state.Position != 0 {
		t.Error("submit must not grade or advance an ungraded session")
	}
}

func TestTimerExpiryDiscardsInProgressItem(t *testing.T) {
	recorder := newCaptureRecorder()
	items := make([]Item, 5)
	for i := range items {
		items[i] = wordItem(int64(i+1), "chat", "cat")
	}
	session, clock := startedSession(t, Config{TimeLimit: 60}, queueOf(items...), recorder)

	session.Submit("cat")
	session.Submit("cat")

	clock.Advance(61 * time.Second)
	session.Tick()

	state := session.State()
	if state.Phase != PhaseEnded {
		t.Fatalf("expected phase ended on timeout, got %s", state.Phase)
	}
	run := recorder.waitForRun(t)
	if len(run.results) != 2 {
		t.Errorf("expected 2 logged results, in-progress item discarded, got %d", len(run.results))
	}
}

func TestTimeRemainingClampedToZero(t *testing.T) {
	session, clock := startedSession(t, Config{TimeLimit: 30}, queueOf(wordItem(1, "chat", "cat")), nil)
	clock.Advance(20 * time.Second)
	if state := session.State(); state.TimeRemaining != 10 {
		t.Errorf("expected 10s remaining, got %d", state.TimeRemaining)
	}
	clock.Advance(45 * time.Second)
	session.Tick()
	if state := session.State(); state.TimeRemaining != 0 {
		t.Errorf("remaining time must clamp at zero, got %d", state.TimeRemaining)
	}
}

func TestEndGuardSuppressesDuplicateRecord(t *testing.T) {
	recorder := newCaptureRecorder()
	session, clock := startedSession(t, Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), recorder)

	// exhaust the queue at the exact moment the timer runs out
	clock.Advance(60 * time.Second)
	session.Submit("cat")
	session.Tick()
	session.Tick()

	recorder.waitForRun(t)
	recorder.expectNoRun(t)
}

func TestAbortSendsNoReport(t *testing.T) {
	recorder := newCaptureRecorder()
	session, _ := startedSession(t, Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), recorder)

	if err := session.Abort(); err != nil {
		t.Fatalf("abort failed: %v", err)
	}
	if state := session.State(); state.Phase != PhaseIdle {
		t.Errorf("expected phase idle after abort, got %s", state.Phase)
	}
	recorder.expectNoRun(t)
}

func TestRecorderFailureKeptAsWarning(t *testing.T) {
	recorder := newCaptureRecorder()
	recorder.err = errors.New("database unavailable")
	session, _ := startedSession(t, Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), recorder)

	session.Submit("cat")
	recorder.waitForRun(t)

	deadline := time.Now().Add(time.Second)
	for {
		state := session.State()
		if state.Warning != "" {
			if state.Phase != PhaseEnded || state.Summary == nil {
				t.Error("summary must still be shown when persistence fails")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("recorder failure was not surfaced as a warning")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRestartSameConfig(t *testing.T) {
	recorder := newCaptureRecorder()
	session, _ := startedSession(t, Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), recorder)

	session.Submit("cat")
	recorder.waitForRun(t)

	if err := session.Restart(context.Background(), true); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	state := session.State()
	if state.Phase != PhaseActive {
		t.Fatalf("expected phase active after restart, got %s", state.Phase)
	}
	if state.Attempts != 0 || state.Correct != 0 {
		t.Error("restart must reset counters")
	}
}

func TestRestartReconfigure(t *testing.T) {
	session, _ := startedSession(t, Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), nil)
	session.Submit("cat")

	if err := session.Restart(context.Background(), false); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if state := session.State(); state.Phase != PhaseIdle {
		t.Errorf("expected phase idle for reconfiguration, got %s", state.Phase)
	}
}

func TestActionsOutsideActivePhase(t *testing.T) {
	session := NewSession(Config{TimeLimit: 60}, queueOf(wordItem(1, "chat", "cat")), nil)
	if err := session.Submit("cat"); !errors.Is(err, ErrNotActive) {
		t.Errorf("submit before start: expected ErrNotActive, got %v", err)
	}
	if err := session.UpdateInput("cat"); !errors.Is(err, ErrNotActive) {
		t.Errorf("input before start: expected ErrNotActive, got %v", err)
	}
	if err := session.Abort(); !errors.Is(err, ErrNotActive) {
		t.Errorf("abort before start: expected ErrNotActive, got %v", err)
	}
	if err := session.Restart(context.Background(), true); !errors.Is(err, ErrNotActive) {
		t.Errorf("restart before end: expected ErrNotActive, got %v", err)
	}
}

func TestPerItemTiming(t *testing.T) {
	recorder := newCaptureRecorder()
	session, clock := startedSession(t, Config{TimeLimit: 120},
		queueOf(wordItem(1, "chat", "cat"), wordItem(2, "chien", "dog")), recorder)

	clock.Advance(7 * time.Second)
	session.Submit("cat")
	clock.Advance(3 * time.Second)
	session.Submit("dog")

	run := recorder.waitForRun(t)
	if len(run.results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.results))
	}
	if run.results[0].TimeSpent != 7 {
		t.Errorf("first item took %ds, want 7", run.results[0].TimeSpent)
	}
	if run.results[1].TimeSpent != 3 {
		t.Errorf("per-item clock must reset on advance, got %ds, want 3", run.results[1].TimeSpent)
	}
}
