package handlers

import "net/http"

// Handlers bundles everything the router needs
type Handlers struct {
	Middleware   *Middleware
	Auth         *AuthHandler
	Words        *WordHandler
	Conjugations *ConjugationHandler
	Settings     *SettingsHandler
	Stats        *StatsHandler
	Game         *GameHandler
}

// NewRouter builds the API route table
func NewRouter(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	m := h.Middleware

	// Public routes, rate limited
	mux.HandleFunc("POST /api/register", m.RateLimit(h.Auth.Register))
	mux.HandleFunc("POST /api/login", m.RateLimit(h.Auth.Login))
	mux.HandleFunc("POST /api/logout", h.Auth.Logout)

	mux.HandleFunc("GET /api/me", m.RequireAuth(h.Auth.Me))

	// Vocabulary
	mux.HandleFunc("POST /api/words", m.RequireAuth(h.Words.Add))
	mux.HandleFunc("GET /api/words", m.RequireAuth(h.Words.List))
	mux.HandleFunc("PUT /api/words/{id}", m.RequireAuth(h.Words.Update))
	mux.HandleFunc("DELETE /api/words/{id}", m.RequireAuth(h.Words.Delete))

	// Conjugations
	mux.HandleFunc("POST /api/conjugations", m.RequireAuth(h.Conjugations.Add))
	mux.HandleFunc("GET /api/conjugations", m.RequireAuth(h.Conjugations.List))
	mux.HandleFunc("PUT /api/conjugations/{id}", m.RequireAuth(h.Conjugations.Update))
	mux.HandleFunc("DELETE /api/conjugations/{id}", m.RequireAuth(h.Conjugations.Delete))

	// Settings and drill options
	mux.HandleFunc("GET /api/settings", m.RequireAuth(h.Settings.Get))
	mux.HandleFunc("PUT /api/settings", m.RequireAuth(h.Settings.Put))
	mux.HandleFunc("GET /api/game/options", m.RequireAuth(h.Settings.GameOptions))

	// Statistics
	mux.HandleFunc("GET /api/stats", m.RequireAuth(h.Stats.Get))

	// Word drill sessions
	mux.HandleFunc("POST /api/game/start", m.RequireAuth(h.Game.StartWordGame))
	mux.HandleFunc("GET /api/game/state", m.RequireAuth(h.Game.WordGameState))
	mux.HandleFunc("POST /api/game/answer", m.RequireAuth(h.Game.SubmitWordAnswer))
	mux.HandleFunc("POST /api/game/input", m.RequireAuth(h.Game.UpdateWordInput))
	mux.HandleFunc("POST /api/game/restart", m.RequireAuth(h.Game.RestartWordGame))
	mux.HandleFunc("POST /api/game/abort", m.RequireAuth(h.Game.AbortWordGame))

	// Conjugation drill sessions
	mux.HandleFunc("POST /api/conjugation-game/start", m.RequireAuth(h.Game.StartConjugationGame))
	mux.HandleFunc("GET /api/conjugation-game/state", m.RequireAuth(h.Game.ConjugationGameState))
	mux.HandleFunc("POST /api/conjugation-game/answer", m.RequireAuth(h.Game.SubmitConjugationAnswer))
	mux.HandleFunc("POST /api/conjugation-game/input", m.RequireAuth(h.Game.UpdateConjugationInput))
	mux.HandleFunc("POST /api/conjugation-game/restart", m.RequireAuth(h.Game.RestartConjugationGame))
	mux.HandleFunc("POST /api/conjugation-game/abort", m.RequireAuth(h.Game.AbortConjugationGame))

	return mux
}
