package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

// LibrarianRepository handles database operations for staff accounts
type LibrarianRepository struct {
	db *pgxpool.Pool
}

// NewLibrarianRepository creates a new librarian repository
func NewLibrarianRepository(db *pgxpool.Pool) *LibrarianRepository {
	return &LibrarianRepository{
		db: db,
	}
}

// Create inserts a librarian account
func (r *LibrarianRepository) Create(ctx context.Context, librarian *models.Librarian) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO librarians (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at
	`, librarian.Name, librarian.Email, librarian.PasswordHash).Scan(&librarian.ID, &librarian.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("error creating librarian: %w", err)
	}

	return nil
}

// GetByEmail retrieves a librarian by login email
func (r *LibrarianRepository) GetByEmail(ctx context.Context, email string) (*models.Librarian, error) {
	var librarian models.Librarian
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM librarians
		WHERE lower(email) = lower($1)
	`, email).Scan(
		&librarian.ID,
		&librarian.Name,
		&librarian.Email,
		&librarian.PasswordHash,
		&librarian.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrLibrarianNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving librarian: %w", err)
	}

	return &librarian, nil
}
