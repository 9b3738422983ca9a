package memstore

import (
	"context"
	"strings"
	"time"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

// LibrarianStore is the in-memory staff account backend
type LibrarianStore struct {
	c *core
}

// Create inserts a librarian account; an existing email is a conflict
func (s *LibrarianStore) Create(_ context.Context, librarian *models.Librarian) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	for _, existing := range s.c.librarians {
		if strings.EqualFold(existing.Email, librarian.Email) {
			return apperrors.ErrConflict
		}
	}

	s.c.nextLibrarianID++
	librarian.ID = s.c.nextLibrarianID
	librarian.CreatedAt = time.Now()
	copied := *librarian
	s.c.librarians[librarian.ID] = &copied
	return nil
}

// GetByEmail retrieves a librarian by login email
func (s *LibrarianStore) GetByEmail(_ context.Context, email string) (*models.Librarian, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, librarian := range s.c.librarians {
		if strings.EqualFold(librarian.Email, email) {
			copied := *librarian
			return &copied, nil
		}
	}
	return nil, apperrors.ErrLibrarianNotFound
}
