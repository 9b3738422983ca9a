package services

import (
	"context"
	"errors"

	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
	"github.com/eren/shelfmate/internal/pkg/auth"
)

// AuthService handles librarian authentication
type AuthService struct {
	librarians repositories.LibrarianStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(librarians repositories.LibrarianStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		librarians: librarians,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues an access token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, expiresIn int, err error) {
	librarian, err := s.librarians.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrLibrarianNotFound) {
			return "", 0, apperrors.ErrInvalidCredentials
		}
		return "", 0, err
	}

	if !auth.CheckPassword(librarian.PasswordHash, password) {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	return s.jwtService.GenerateToken(librarian.ID, librarian.Email)
}
