package handlers

import (
	"errors"
	"net/http"
	"time"
	"vocadrill/internal/models"
	"vocadrill/internal/security"
	"vocadrill/internal/service"
	"vocadrill/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "register decode failed", err)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	if err := validation.ValidateName(req.Name); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, "Email already registered", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Registration failed", "register failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login authenticates and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "login decode failed", err)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Login failed", "login failed", err)
		return
	}

	expires := time.Now().Add(h.authService.SessionDuration())
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, token, expires))

	// The token is also returned for Authorization-header clients
	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, GetUserFromContext(r.Context()))
}
