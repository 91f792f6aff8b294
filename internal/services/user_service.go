package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/karanns19/task-manager/internal/apperr"
	"github.com/karanns19/task-manager/internal/auth"
	"github.com/karanns19/task-manager/internal/models"
	"github.com/karanns19/task-manager/internal/validation"
)

// bcryptCost is tuned above the library default so a verification takes on
// the order of 250ms on commodity hardware.
const bcryptCost = 12

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(payload validation.RegisterPayload) (models.User, string, error)
	Login(email, password string) (models.User, string, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides registration and authentication over the credential store.
type UserService struct {
	db     *sql.DB
	tokens *auth.Manager
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, tokens *auth.Manager) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// Register validates the payload, creates the user and issues an access
// token. The email is case-normalized before the uniqueness check.
func (s *UserService) Register(payload validation.RegisterPayload) (models.User, string, error) {
	if errs := payload.Validate(); len(errs) > 0 {
		return models.User{}, "", apperr.Validation(errs...)
	}

	email := validation.NormalizeEmail(payload.Email)

	var existingID string
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		return models.User{}, "", apperr.Conflict("An account with this email already exists")
	}
	if err != sql.ErrNoRows {
		return models.User{}, "", apperr.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return models.User{}, "", apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	now := time.Now().UTC().Truncate(time.Second)
	user := models.User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(payload.Name),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Exec(
		"INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, string(hashedPassword), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, "", apperr.Internal(err)
	}

	token, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return models.User{}, "", apperr.Internal(err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a fresh access token. An unknown
// email and a wrong password produce the same generic error.
func (s *UserService) Login(email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	var passwordHash string
	row := s.db.QueryRow("SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &passwordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, "", apperr.InvalidCredentials()
	}
	if err != nil {
		return models.User{}, "", apperr.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return models.User{}, "", apperr.InvalidCredentials()
	}

	token, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return models.User{}, "", apperr.Internal(err)
	}
	return user, token, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}
