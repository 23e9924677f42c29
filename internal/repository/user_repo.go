package repository

import (
	"database/sql"
	"fmt"
	"time"
	"vocadrill/internal/database"
	"vocadrill/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	// Check if this is the first user
	var userCount int
	countQuery := "SELECT COUNT(*) FROM users"
	err := r.db.QueryRow(countQuery).Scan(&userCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	// First user becomes admin
	isAdmin := userCount == 0

	query := `
		INSERT INTO users (email, password_hash, name, is_admin)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, is_admin, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	user := &models.User{}
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, is_admin, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	user := &models.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
