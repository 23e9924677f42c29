package handlers

import (
	"errors"
	"net/http"
	"vocadrill/internal/models"
	"vocadrill/internal/service"
	"vocadrill/internal/validation"
)

// ConjugationHandler handles conjugation CRUD requests
type ConjugationHandler struct {
	conjugationService *service.ConjugationService
}

// NewConjugationHandler creates a new conjugation handler
func NewConjugationHandler(conjugationService *service.ConjugationService) *ConjugationHandler {
	return &ConjugationHandler{conjugationService: conjugationService}
}

type conjugationRequest struct {
	Verb        string `json:"verb"`
	Person      string `json:"person"`
	Tense       string `json:"tense"`
	Conjugation string `json:"conjugation"`
	Irregular   bool   `json:"irregular"`
	Pronominal  bool   `json:"pronominal"`
	VerbGroup   int    `json:"verbGroup"`
}

func (req *conjugationRequest) toModel(id int64) *models.Conjugation {
	return &models.Conjugation{
		ID:          id,
		Verb:        req.Verb,
		Person:      req.Person,
		Tense:       req.Tense,
		Conjugation: req.Conjugation,
		Irregular:   req.Irregular,
		Pronominal:  req.Pronominal,
		VerbGroup:   req.VerbGroup,
	}
}

// Add inserts a conjugation; an existing (verb, person, tense) row is
// returned unchanged
func (h *ConjugationHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req conjugationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "add conjugation decode failed", err)
		return
	}
	if err := validation.ValidateConjugation(req.Verb, req.Person, req.Tense, req.Conjugation, req.VerbGroup); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	conjugation, created, err := h.conjugationService.AddConjugation(user.ID, req.toModel(0))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to add conjugation", "add conjugation failed", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, conjugation)
}

// List returns all of the user's conjugations
func (h *ConjugationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	conjugations, err := h.conjugationService.ListConjugations(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list conjugations", "list conjugations failed", err)
		return
	}
	respondJSON(w, http.StatusOK, conjugations)
}

// Update replaces a conjugation entry
func (h *ConjugationHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid conjugation id", "", nil)
		return
	}

	var req conjugationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "update conjugation decode failed", err)
		return
	}
	if err := validation.ValidateConjugation(req.Verb, req.Person, req.Tense, req.Conjugation, req.VerbGroup); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	conjugation, err := h.conjugationService.UpdateConjugation(user.ID, req.toModel(id))
	if err != nil {
		if errors.Is(err, service.ErrConjugationNotFound) {
			respondWithError(w, http.StatusNotFound, "Conjugation not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update conjugation", "update conjugation failed", err)
		return
	}
	respondJSON(w, http.StatusOK, conjugation)
}

// Delete removes a conjugation and its tracking row
func (h *ConjugationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid conjugation id", "", nil)
		return
	}

	if err := h.conjugationService.DeleteConjugation(user.ID, id); err != nil {
		if errors.Is(err, service.ErrConjugationNotFound) {
			respondWithError(w, http.StatusNotFound, "Conjugation not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete conjugation", "delete conjugation failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Conjugation deleted"})
}
