package service

import (
	"fmt"
	"strings"
	"vocadrill/internal/models"
	"vocadrill/internal/repository"
)

// GameOptions lists the filter dimensions a drill configuration may offer.
// A dimension with no usable values is omitted entirely, so clients drop
// the corresponding filter instead of sending an empty constraint.
type GameOptions struct {
	Directions      []string `json:"directions"`
	Tenses          []string `json:"tenses,omitempty"`
	Groups          []int    `json:"groups,omitempty"`
	Persons         []string `json:"persons,omitempty"`
	AllowPronominal bool     `json:"allowPronominal"`
	AllowIrregular  bool     `json:"allowIrregular"`
}

// SettingsService handles user preferences and derives drill options
type SettingsService struct {
	settingsRepo    *repository.SettingsRepository
	conjugationRepo *repository.ConjugationRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo *repository.SettingsRepository, conjugationRepo *repository.ConjugationRepository) *SettingsService {
	return &SettingsService{
		settingsRepo:    settingsRepo,
		conjugationRepo: conjugationRepo,
	}
}

// GetSettings retrieves a user's preference document or the defaults
func (s *SettingsService) GetSettings(userID int64) (*models.Settings, error) {
	return s.settingsRepo.GetPreferences(userID)
}

// SaveSettings replaces a user's preference document
func (s *SettingsService) SaveSettings(userID int64, settings *models.Settings) error {
	if settings.SourceLang == "" || settings.TargetLang == "" {
		return fmt.Errorf("source and target languages are required")
	}
	return s.settingsRepo.SavePreferences(userID, settings)
}

// GameOptions derives the option sets the drill configuration may offer:
// the intersection of what the user has configured and what actually
// exists in their data.
func (s *SettingsService) GameOptions(userID int64) (*GameOptions, error) {
	settings, err := s.settingsRepo.GetPreferences(userID)
	if err != nil {
		return nil, err
	}

	dataTenses, err := s.conjugationRepo.DistinctTenses(userID)
	if err != nil {
		return nil, err
	}
	dataGroups, err := s.conjugationRepo.DistinctGroups(userID)
	if err != nil {
		return nil, err
	}

	options := &GameOptions{
		Directions:      []string{"frenchToEnglish", "englishToFrench", "both"},
		Persons:         settings.Conj.Persons,
		AllowPronominal: settings.Conj.AllowPronominal,
		AllowIrregular:  settings.Conj.AllowIrregular,
	}

	for _, tense := range settings.Conj.Tenses {
		for _, have := range dataTenses {
			if strings.EqualFold(tense, have) {
				options.Tenses = append(options.Tenses, tense)
				break
			}
		}
	}
	for _, group := range settings.Conj.Groups {
		for _, have := range dataGroups {
			if group == have {
				options.Groups = append(options.Groups, group)
				break
			}
		}
	}

	return options, nil
}
