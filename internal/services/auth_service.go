package services

import (
	"database/sql"

	"jerkco/internal/domain"
	"jerkco/internal/repos"
	"jerkco/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

// Register creates a user with a bcrypt-hashed password. Duplicate
// username/email are rejected up front; the UNIQUE constraints are the
// backstop.
func (s *AuthService) Register(username, email, password, role string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.Invalid("Missing required fields: username, email, password")
	}
	username, ok := validate.Username(username)
	if !ok {
		return nil, domain.Invalid("Invalid username")
	}
	email, ok = validate.Email(email)
	if !ok {
		return nil, domain.Invalid("Invalid email")
	}
	role, ok = validate.Role(role)
	if !ok {
		return nil, domain.Invalid("Invalid role")
	}

	if _, err := s.Users.ByUsername(username); err == nil {
		return nil, domain.Invalid("Username already exists")
	} else if err != sql.ErrNoRows {
		return nil, err
	}
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, domain.Invalid("Email already exists")
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(username, email, string(hash), role)
}

func (s *AuthService) Login(username, password string) (*domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, domain.ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, domain.ErrBadCredentials
	}
	return u, nil
}

func (s *AuthService) Profile(id int64) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("user")
	}
	return u, err
}
