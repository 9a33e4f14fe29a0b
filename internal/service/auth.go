package service

import (
	"crypto/subtle"
	"fmt"

	"wordquiz/internal/repository"
)

// AuthService handles authentication logic
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// Check registers the user if needed and reports whether they are authorized
func (s *AuthService) Check(userID int64) (bool, error) {
	user, err := s.userRepo.Touch(userID)
	if err != nil {
		return false, fmt.Errorf("failed to check authorization: %w", err)
	}
	return user.Authorized, nil
}

// Login authorizes the user when the password matches
func (s *AuthService) Login(userID int64, password string) (bool, error) {
	if !s.CheckPassword(password) {
		return false, nil
	}
	if err := s.userRepo.AuthorizeUser(userID); err != nil {
		return false, fmt.Errorf("failed to authorize user: %w", err)
	}
	return true, nil
}
