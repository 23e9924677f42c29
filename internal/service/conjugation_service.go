package service

import (
	"errors"
	"fmt"
	"strings"
	"vocadrill/internal/models"
	"vocadrill/internal/repository"
	"vocadrill/internal/validation"
)

// ErrConjugationNotFound is returned when a conjugation does not exist
var ErrConjugationNotFound = errors.New("conjugation not found")

// ConjugationService handles conjugation business logic
type ConjugationService struct {
	conjugationRepo *repository.ConjugationRepository
}

// NewConjugationService creates a new conjugation service
func NewConjugationService(conjugationRepo *repository.ConjugationRepository) *ConjugationService {
	return &ConjugationService{conjugationRepo: conjugationRepo}
}

// AddConjugation stores a conjugation. The operation is idempotent on the
// (verb, person, tense) key: adding an existing form returns the stored row.
func (s *ConjugationService) AddConjugation(userID int64, c *models.Conjugation) (*models.Conjugation, bool, error) {
	normalizeConjugation(c)
	if err := validation.ValidateConjugation(c.Verb, c.Person, c.Tense, c.Conjugation, c.VerbGroup); err != nil {
		return nil, false, err
	}

	existing, err := s.conjugationRepo.GetByForm(userID, c.Verb, c.Person, c.Tense)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := s.conjugationRepo.CreateConjugation(userID, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// UpdateConjugation replaces a conjugation's fields
func (s *ConjugationService) UpdateConjugation(userID int64, c *models.Conjugation) (*models.Conjugation, error) {
	normalizeConjugation(c)
	if err := validation.ValidateConjugation(c.Verb, c.Person, c.Tense, c.Conjugation, c.VerbGroup); err != nil {
		return nil, err
	}

	existing, err := s.conjugationRepo.GetByID(userID, c.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrConjugationNotFound
	}

	if err := s.conjugationRepo.UpdateConjugation(userID, c); err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	return c, nil
}

// DeleteConjugation removes a conjugation and its tracking history
func (s *ConjugationService) DeleteConjugation(userID, id int64) error {
	existing, err := s.conjugationRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrConjugationNotFound
	}
	if err := s.conjugationRepo.DeleteConjugation(userID, id); err != nil {
		return fmt.Errorf("failed to delete conjugation: %w", err)
	}
	return nil
}

// ListConjugations retrieves all conjugations for a user
func (s *ConjugationService) ListConjugations(userID int64) ([]models.Conjugation, error) {
	return s.conjugationRepo.ListConjugations(userID)
}

// normalizeConjugation trims and lowercases the linguistic fields, matching
// how queue matching compares them
func normalizeConjugation(c *models.Conjugation) {
	c.Verb = strings.ToLower(strings.TrimSpace(c.Verb))
	c.Person = strings.ToLower(strings.TrimSpace(c.Person))
	c.Tense = strings.ToLower(strings.TrimSpace(c.Tense))
	c.Conjugation = strings.ToLower(strings.TrimSpace(c.Conjugation))
}
