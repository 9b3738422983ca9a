package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

// BookStore is the in-memory catalog backend
type BookStore struct {
	c *core
}

// AddOrMerge inserts the candidate or merges copies into an existing entry
// with the same ISBN. Check and mutation happen under one lock, so two
// concurrent adds of the same ISBN cannot both insert.
func (s *BookStore) AddOrMerge(_ context.Context, book *models.Book) (bool, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	for _, existing := range s.c.books {
		if existing.ISBN != book.ISBN {
			continue
		}
		if !existing.SameEdition(book) {
			return false, apperrors.ErrISBNConflict
		}
		existing.Copies += book.Copies
		book.ID = existing.ID
		book.Copies = existing.Copies
		return true, nil
	}

	s.c.nextBookID++
	book.ID = s.c.nextBookID
	s.c.books[book.ID] = cloneBook(book)
	return false, nil
}

// GetByID retrieves a book by ID
func (s *BookStore) GetByID(_ context.Context, id int64) (*models.Book, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	book, ok := s.c.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	return cloneBook(book), nil
}

// GetByISBN retrieves a book by its normalized ISBN
func (s *BookStore) GetByISBN(_ context.Context, isbn string) (*models.Book, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, book := range s.c.books {
		if book.ISBN == isbn {
			return cloneBook(book), nil
		}
	}
	return nil, apperrors.ErrBookNotFound
}

// List retrieves books matching the filter along with the unpaged total
func (s *BookStore) List(_ context.Context, filter repositories.BookFilter) ([]*models.Book, int64, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	var filtered []*models.Book
	for _, book := range s.c.books {
		if filter.Title != "" && !containsFold(book.Title, filter.Title) {
			continue
		}
		if filter.Author != "" && !containsFold(book.Author, filter.Author) {
			continue
		}
		if filter.Category != "" && !containsFold(book.Category, filter.Category) {
			continue
		}
		filtered = append(filtered, book)
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	total := int64(len(filtered))
	start, end := window(int(filter.Offset), filter.Limit, len(filtered))

	out := make([]*models.Book, 0, end-start)
	for _, book := range filtered[start:end] {
		out = append(out, cloneBook(book))
	}
	return out, total, nil
}

// Update applies all fields except the ISBN
func (s *BookStore) Update(_ context.Context, book *models.Book) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	existing, ok := s.c.books[book.ID]
	if !ok {
		return apperrors.ErrBookNotFound
	}

	existing.Title = book.Title
	existing.Author = book.Author
	existing.Category = book.Category
	existing.Copies = book.Copies
	book.ISBN = existing.ISBN
	return nil
}

// Delete removes a book unless an outstanding issuance references it
func (s *BookStore) Delete(_ context.Context, id int64) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if _, ok := s.c.books[id]; !ok {
		return apperrors.ErrBookNotFound
	}

	for _, record := range s.c.issues {
		if record.BookID == id && record.ReturnedDate == nil {
			return apperrors.ErrBookHasActiveLoans
		}
	}

	delete(s.c.books, id)
	return nil
}

// AdjustCopies applies a delta, refusing any change that would leave the
// count negative
func (s *BookStore) AdjustCopies(_ context.Context, id int64, delta int) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	book, ok := s.c.books[id]
	if !ok {
		return apperrors.ErrBookNotFound
	}

	if book.Copies+delta < 0 {
		return apperrors.ErrCopiesNegative
	}

	book.Copies += delta
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func window(offset, limit, total int) (start, end int) {
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		limit = total
	}
	end = offset + limit
	if end > total {
		end = total
	}
	return offset, end
}
