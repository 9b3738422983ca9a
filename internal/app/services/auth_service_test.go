package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories/memstore"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
	"github.com/eren/shelfmate/internal/pkg/auth"
)

func newAuthEnv(t *testing.T) *AuthService {
	t.Helper()

	stores := memstore.New().Stores()
	hash, err := auth.HashPassword("correct-horse-battery")
	require.NoError(t, err)

	require.NoError(t, stores.Librarians.Create(context.Background(), &models.Librarian{
		Name:         "Library Admin",
		Email:        "admin@library.local",
		PasswordHash: hash,
	}))

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "shelfmate.test",
	})
	return NewAuthService(stores.Librarians, jwtService)
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newAuthEnv(t)

	token, expiresIn, err := svc.Login(context.Background(), "admin@library.local", "correct-horse-battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthEnv(t)
	ctx := context.Background()

	// Wrong password and unknown email yield the same error
	_, _, err := svc.Login(ctx, "admin@library.local", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@library.local", "correct-horse-battery")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
