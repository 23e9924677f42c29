package service

import (
	"errors"
	"fmt"
	"time"
	"vocadrill/internal/models"
	"vocadrill/internal/repository"
	"vocadrill/internal/security"
	"vocadrill/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	jwtSecret       string
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtSecret:       jwtSecret,
		sessionDuration: sessionDuration,
	}
}

// SessionDuration returns the configured token lifetime
func (s *AuthService) SessionDuration() time.Duration {
	return s.sessionDuration
}

// Register creates a new user account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and issues a session token
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := security.IssueToken(s.jwtSecret, user.ID, s.sessionDuration)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// Authenticate validates a session token and loads its user
func (s *AuthService) Authenticate(token string) (*models.User, error) {
	userID, err := security.ParseToken(s.jwtSecret, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, security.ErrInvalidToken
	}
	return user, nil
}
