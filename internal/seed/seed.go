package seed

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	appModels "github.com/eren/shelfmate/internal/app/models"
	appRepos "github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
	"github.com/eren/shelfmate/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@library.local"
	defaultAdminPassword = "changeme123"
)

// CreateDefaultData creates the default librarian account and a small demo
// catalog if they don't exist. Errors are collected so a single failure does
// not stop the rest of the seeding.
func CreateDefaultData(ctx context.Context, stores *appRepos.Stores, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (librarian account, demo catalog)...")
	var finalErr error

	// --- Default librarian --- //
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default librarian password")
		finalErr = errors.Join(finalErr, err)
	} else {
		librarian := &appModels.Librarian{
			Name:         "Library Admin",
			Email:        defaultAdminEmail,
			PasswordHash: hash,
		}
		err = stores.Librarians.Create(ctx, librarian)
		if err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Msg("Error creating default librarian")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			lgr.Info().Str("email", defaultAdminEmail).Msg("Default librarian created")
		}
	}

	// --- Demo catalog --- //
	books := []*appModels.Book{
		{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "9780134190440", Category: "Programming", Copies: 3},
		{Title: "Clean Architecture", Author: "Robert Martin", ISBN: "9780134494166", Category: "Software Engineering", Copies: 2},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", ISBN: "9781449373320", Category: "Databases", Copies: 2},
	}

	for _, book := range books {
		_, err := stores.Books.GetByISBN(ctx, book.ISBN)
		if err == nil {
			continue // Already seeded
		}
		if !errors.Is(err, apperrors.ErrBookNotFound) {
			lgr.Error().Err(err).Str("isbn", book.ISBN).Msg("Error checking demo book")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		if _, err := stores.Books.AddOrMerge(ctx, book); err != nil {
			lgr.Error().Err(err).Str("isbn", book.ISBN).Msg("Error creating demo book")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data checks completed")
	}
	return finalErr
}
