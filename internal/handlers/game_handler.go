package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"vocadrill/internal/game"
	"vocadrill/internal/security"
	"vocadrill/internal/service"
)

// drillKind selects which queue builder and run recorder a session uses
type drillKind int

const (
	wordDrill drillKind = iota
	conjugationDrill
)

// GameHandler exposes the session engine over HTTP. It holds at most one
// live session per user per drill kind.
type GameHandler struct {
	gameService *service.GameService

	mu       sync.Mutex
	sessions map[sessionKey]*game.Session
	ids      map[sessionKey]string
}

type sessionKey struct {
	userID int64
	kind   drillKind
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		sessions:    make(map[sessionKey]*game.Session),
		ids:         make(map[sessionKey]string),
	}
}

// stateResponse is a session state snapshot tagged with the session's ID
type stateResponse struct {
	SessionID string `json:"sessionId,omitempty"`
	game.State
}

type startRequest struct {
	TimeLimit      int      `json:"timeLimit"`
	GameType       string   `json:"gameType"`
	Mode           string   `json:"mode"`
	Tenses         []string `json:"tenses"`
	Groups         []int    `json:"groups"`
	PronominalMode string   `json:"pronominalMode"`
	Ungraded       bool     `json:"ungraded"`
	ZenMode        bool     `json:"zenMode"`
}

type answerRequest struct {
	Answer  string `json:"answer"`
	Article string `json:"article"`
}

type inputRequest struct {
	Input   string `json:"input"`
	Article string `json:"article"`
}

type restartRequest struct {
	SameConfig bool `json:"sameConfig"`
}

// StartWordGame begins a word drill session
func (h *GameHandler) StartWordGame(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, wordDrill)
}

// StartConjugationGame begins a conjugation drill session
func (h *GameHandler) StartConjugationGame(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, conjugationDrill)
}

func (h *GameHandler) start(w http.ResponseWriter, r *http.Request, kind drillKind) {
	user := GetUserFromContext(r.Context())

	var req startRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "start decode failed", err)
		return
	}
	if req.TimeLimit <= 0 {
		respondWithError(w, http.StatusBadRequest, "timeLimit must be positive", "", nil)
		return
	}

	cfg := game.Config{
		TimeLimit: req.TimeLimit,
		Ungraded:  req.Ungraded,
		ZenMode:   req.ZenMode,
	}
	switch kind {
	case wordDrill:
		cfg.Direction = req.GameType
		if cfg.Direction == "" {
			cfg.Direction = game.DirectionBoth
		}
	case conjugationDrill:
		cfg.Mode = req.Mode
		cfg.Tenses = req.Tenses
		cfg.Groups = req.Groups
		cfg.Pronominal = req.PronominalMode
	}

	key := sessionKey{userID: user.ID, kind: kind}

	h.mu.Lock()
	if existing, ok := h.sessions[key]; ok {
		phase := existing.State().Phase
		if phase == game.PhaseLoading || phase == game.PhaseActive {
			h.mu.Unlock()
			respondWithError(w, http.StatusConflict, "A session is already running", "", nil)
			return
		}
	}
	session := game.NewSession(cfg, h.fetcher(user.ID, kind), h.recorder(user.ID, kind))
	h.sessions[key] = session
	h.ids[key] = security.GenerateSessionID()
	h.mu.Unlock()

	if err := session.Start(r.Context()); err != nil {
		switch {
		case errors.Is(err, game.ErrEmptyQueue):
			respondWithError(w, http.StatusUnprocessableEntity, "No items matched the selected filters", "", nil)
		case errors.Is(err, game.ErrSessionActive):
			respondWithError(w, http.StatusConflict, "A session is already running", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to start session", "session start failed", err)
		}
		return
	}

	for _, warning := range session.Warnings() {
		log.Printf("queue warning for user %d: %s", user.ID, warning)
	}

	h.respondState(w, user.ID, kind, session)
}

// fetcher adapts the queue builders to the session engine's collaborator
func (h *GameHandler) fetcher(userID int64, kind drillKind) game.QueueFetcherFunc {
	return func(ctx context.Context, cfg game.Config) ([]game.Item, error) {
		var items []game.Item
		var warnings []string
		var err error
		switch kind {
		case wordDrill:
			items, warnings, err = h.gameService.BuildWordQueue(userID, cfg)
		case conjugationDrill:
			items, warnings, err = h.gameService.BuildConjugationQueue(userID, cfg)
		}
		if err != nil {
			return nil, err
		}
		if session := h.session(userID, kind); session != nil {
			session.SetWarnings(warnings)
		}
		return items, nil
	}
}

// recorder adapts run persistence to the session engine's collaborator
func (h *GameHandler) recorder(userID int64, kind drillKind) game.RunRecorderFunc {
	return func(ctx context.Context, cfg game.Config, results []game.Result, attempts, correct int) error {
		switch kind {
		case conjugationDrill:
			return h.gameService.RecordConjugationRun(userID, cfg, results, attempts, correct)
		default:
			return h.gameService.RecordWordRun(userID, cfg, results, attempts, correct)
		}
	}
}

// WordGameState returns the word drill state snapshot
func (h *GameHandler) WordGameState(w http.ResponseWriter, r *http.Request) {
	h.state(w, r, wordDrill)
}

// ConjugationGameState returns the conjugation drill state snapshot
func (h *GameHandler) ConjugationGameState(w http.ResponseWriter, r *http.Request) {
	h.state(w, r, conjugationDrill)
}

func (h *GameHandler) state(w http.ResponseWriter, r *http.Request, kind drillKind) {
	user := GetUserFromContext(r.Context())
	session := h.session(user.ID, kind)
	if session == nil {
		respondJSON(w, http.StatusOK, game.State{Phase: game.PhaseIdle})
		return
	}
	h.respondState(w, user.ID, kind, session)
}

// SubmitWordAnswer grades an answer in a word drill
func (h *GameHandler) SubmitWordAnswer(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, wordDrill)
}

// SubmitConjugationAnswer grades an answer in a conjugation drill
func (h *GameHandler) SubmitConjugationAnswer(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, conjugationDrill)
}

func (h *GameHandler) answer(w http.ResponseWriter, r *http.Request, kind drillKind) {
	user := GetUserFromContext(r.Context())
	session := h.session(user.ID, kind)
	if session == nil {
		respondWithError(w, http.StatusConflict, "No active session", "", nil)
		return
	}

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "answer decode failed", err)
		return
	}

	if err := session.Submit(joinArticle(req.Article, req.Answer)); err != nil {
		if errors.Is(err, game.ErrNotActive) {
			respondWithError(w, http.StatusConflict, "No active session", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to submit answer", "submit failed", err)
		return
	}
	h.respondState(w, user.ID, kind, session)
}

// UpdateWordInput re-evaluates the ungraded input of a word drill
func (h *GameHandler) UpdateWordInput(w http.ResponseWriter, r *http.Request) {
	h.input(w, r, wordDrill)
}

// UpdateConjugationInput re-evaluates the ungraded input of a conjugation drill
func (h *GameHandler) UpdateConjugationInput(w http.ResponseWriter, r *http.Request) {
	h.input(w, r, conjugationDrill)
}

func (h *GameHandler) input(w http.ResponseWriter, r *http.Request, kind drillKind) {
	user := GetUserFromContext(r.Context())
	session := h.session(user.ID, kind)
	if session == nil {
		respondWithError(w, http.StatusConflict, "No active session", "", nil)
		return
	}

	var req inputRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "input decode failed", err)
		return
	}

	if err := session.UpdateInput(joinArticle(req.Article, req.Input)); err != nil {
		if errors.Is(err, game.ErrNotActive) {
			respondWithError(w, http.StatusConflict, "No active session", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update input", "input failed", err)
		return
	}
	h.respondState(w, user.ID, kind, session)
}

// RestartWordGame restarts an ended word drill
func (h *GameHandler) RestartWordGame(w http.ResponseWriter, r *http.Request) {
	h.restart(w, r, wordDrill)
}

// RestartConjugationGame restarts an ended conjugation drill
func (h *GameHandler) RestartConjugationGame(w http.ResponseWriter, r *http.Request) {
	h.restart(w, r, conjugationDrill)
}

func (h *GameHandler) restart(w http.ResponseWriter, r *http.Request, kind drillKind) {
	user := GetUserFromContext(r.Context())
	session := h.session(user.ID, kind)
	if session == nil {
		respondWithError(w, http.StatusConflict, "No finished session to restart", "", nil)
		return
	}

	var req restartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "restart decode failed", err)
		return
	}

	if err := session.Restart(r.Context(), req.SameConfig); err != nil {
		switch {
		case errors.Is(err, game.ErrNotActive):
			respondWithError(w, http.StatusConflict, "No finished session to restart", "", nil)
		case errors.Is(err, game.ErrEmptyQueue):
			respondWithError(w, http.StatusUnprocessableEntity, "No items matched the selected filters", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to restart session", "restart failed", err)
		}
		return
	}
	h.respondState(w, user.ID, kind, session)
}

// AbortWordGame cancels an active word drill
func (h *GameHandler) AbortWordGame(w http.ResponseWriter, r *http.Request) {
	h.abort(w, r, wordDrill)
}

// AbortConjugationGame cancels an active conjugation drill
func (h *GameHandler) AbortConjugationGame(w http.ResponseWriter, r *http.Request) {
	h.abort(w, r, conjugationDrill)
}

func (h *GameHandler) abort(w http.ResponseWriter, r *http.Request, kind drillKind) {
	user := GetUserFromContext(r.Context())
	session := h.session(user.ID, kind)
	if session == nil {
		respondWithError(w, http.StatusConflict, "No active session", "", nil)
		return
	}

	if err := session.Abort(); err != nil {
		if errors.Is(err, game.ErrNotActive) {
			respondWithError(w, http.StatusConflict, "No active session", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to abort session", "abort failed", err)
		return
	}
	h.respondState(w, user.ID, kind, session)
}

func (h *GameHandler) session(userID int64, kind drillKind) *game.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[sessionKey{userID: userID, kind: kind}]
}

func (h *GameHandler) respondState(w http.ResponseWriter, userID int64, kind drillKind, session *game.Session) {
	h.mu.Lock()
	id := h.ids[sessionKey{userID: userID, kind: kind}]
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, stateResponse{SessionID: id, State: session.State()})
}

// joinArticle prepends the separately entered article when present, so the
// combined text is matched against the expected "article word" form
func joinArticle(article, answer string) string {
	article = strings.TrimSpace(article)
	if article == "" {
		return answer
	}
	return article + " " + strings.TrimSpace(answer)
}
