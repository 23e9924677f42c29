package service

import (
	"errors"
	"fmt"
	"strings"
	"vocadrill/internal/models"
	"vocadrill/internal/repository"
	"vocadrill/internal/validation"
)

// ErrWordNotFound is returned when a vocabulary entry does not exist
var ErrWordNotFound = errors.New("word not found")

// WordService handles vocabulary business logic
type WordService struct {
	wordRepo *repository.WordRepository
}

// NewWordService creates a new word service
func NewWordService(wordRepo *repository.WordRepository) *WordService {
	return &WordService{wordRepo: wordRepo}
}

// AddWord stores a vocabulary entry. When the word already exists for the
// user (case-insensitively), new translations are appended to the existing
// entry instead of creating a duplicate.
func (s *WordService) AddWord(userID int64, word string, translations []string, partOfSpeech, article string) (*models.Word, bool, error) {
	word = strings.TrimSpace(word)
	translations = cleanTranslations(translations)
	if err := validation.ValidateWord(word, translations); err != nil {
		return nil, false, err
	}

	existing, err := s.wordRepo.GetWordByName(userID, word)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		added := false
		for _, t := range translations {
			if !containsFold(existing.Translations, t) {
				existing.Translations = append(existing.Translations, t)
				added = true
			}
		}
		if added {
			if err := s.wordRepo.UpdateWord(userID, existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	}

	entry := &models.Word{
		Word:         word,
		Translations: translations,
		PartOfSpeech: strings.TrimSpace(partOfSpeech),
		Article:      models.NormalizeArticle(strings.TrimSpace(article)),
	}
	if err := s.wordRepo.CreateWord(userID, entry); err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

// UpdateWord replaces a vocabulary entry's fields
func (s *WordService) UpdateWord(userID, id int64, word string, translations []string, partOfSpeech, article string) (*models.Word, error) {
	word = strings.TrimSpace(word)
	translations = cleanTranslations(translations)
	if err := validation.ValidateWord(word, translations); err != nil {
		return nil, err
	}

	existing, err := s.wordRepo.GetWordByID(userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrWordNotFound
	}

	existing.Word = word
	existing.Translations = translations
	existing.PartOfSpeech = strings.TrimSpace(partOfSpeech)
	existing.Article = models.NormalizeArticle(strings.TrimSpace(article))

	if err := s.wordRepo.UpdateWord(userID, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteWord removes a vocabulary entry and its tracking history
func (s *WordService) DeleteWord(userID, id int64) error {
	existing, err := s.wordRepo.GetWordByID(userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrWordNotFound
	}
	if err := s.wordRepo.DeleteWord(userID, id); err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return nil
}

// ListWords retrieves all vocabulary entries for a user
func (s *WordService) ListWords(userID int64) ([]models.Word, error) {
	return s.wordRepo.ListWords(userID)
}

func cleanTranslations(translations []string) []string {
	cleaned := make([]string, 0, len(translations))
	for _, t := range translations {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
