package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks that an email address is plausibly valid
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegexp.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// ValidateName checks a display name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("name is required")
	}
	if len(trimmed) < 2 {
		return errors.New("name must be at least 2 characters")
	}
	return nil
}

// ValidateWord checks a vocabulary entry before it is stored
func ValidateWord(word string, translations []string) error {
	if strings.TrimSpace(word) == "" {
		return errors.New("word is required")
	}
	hasTranslation := false
	for _, t := range translations {
		if strings.TrimSpace(t) != "" {
			hasTranslation = true
			break
		}
	}
	if !hasTranslation {
		return errors.New("at least one translation is required")
	}
	return nil
}

// ValidateConjugation checks a conjugation entry before it is stored
func ValidateConjugation(verb, person, tense, conjugation string, verbGroup int) error {
	for field, value := range map[string]string{
		"verb":        verb,
		"person":      person,
		"tense":       tense,
		"conjugation": conjugation,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	if verbGroup < 1 || verbGroup > 3 {
		return errors.New("verb group must be 1, 2 or 3")
	}
	return nil
}
