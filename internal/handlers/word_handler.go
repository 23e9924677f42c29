package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"vocadrill/internal/service"
	"vocadrill/internal/validation"
)

// WordHandler handles vocabulary CRUD requests
type WordHandler struct {
	wordService *service.WordService
}

// NewWordHandler creates a new word handler
func NewWordHandler(wordService *service.WordService) *WordHandler {
	return &WordHandler{wordService: wordService}
}

type wordRequest struct {
	Word         string   `json:"word"`
	Translations []string `json:"translations"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Article      string   `json:"article"`
}

// Add inserts a word, or appends new translations to an existing one
func (h *WordHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req wordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "add word decode failed", err)
		return
	}
	if err := validation.ValidateWord(req.Word, req.Translations); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	word, created, err := h.wordService.AddWord(user.ID, req.Word, req.Translations, req.PartOfSpeech, req.Article)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to add word", "add word failed", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, word)
}

// List returns the user's full vocabulary
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	words, err := h.wordService.ListWords(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list words", "list words failed", err)
		return
	}
	respondJSON(w, http.StatusOK, words)
}

// Update replaces a word entry
func (h *WordHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid word id", "", nil)
		return
	}

	var req wordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "update word decode failed", err)
		return
	}
	if err := validation.ValidateWord(req.Word, req.Translations); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	word, err := h.wordService.UpdateWord(user.ID, id, req.Word, req.Translations, req.PartOfSpeech, req.Article)
	if err != nil {
		if errors.Is(err, service.ErrWordNotFound) {
			respondWithError(w, http.StatusNotFound, "Word not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update word", "update word failed", err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}

// Delete removes a word and its tracking row
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid word id", "", nil)
		return
	}

	if err := h.wordService.DeleteWord(user.ID, id); err != nil {
		if errors.Is(err, service.ErrWordNotFound) {
			respondWithError(w, http.StatusNotFound, "Word not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete word", "delete word failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Word deleted"})
}

// pathID parses the {id} path segment of a route
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
