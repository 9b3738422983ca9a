package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
	"github.com/eren/shelfmate/internal/pkg/validation"
)

// BookService handles catalog operations
type BookService struct {
	books  repositories.BookStore
	issues repositories.IssueStore
}

// NewBookService creates a new book service instance
func NewBookService(books repositories.BookStore, issues repositories.IssueStore) *BookService {
	return &BookService{
		books:  books,
		issues: issues,
	}
}

// validateBook validates catalog data before store operations
func (s *BookService) validateBook(book *models.Book) error {
	if book == nil {
		return fmt.Errorf("%w: book is nil", apperrors.ErrValidationFailed)
	}
	if len(strings.TrimSpace(book.Title)) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters", apperrors.ErrValidationFailed)
	}
	if len(strings.TrimSpace(book.Author)) < 3 {
		return fmt.Errorf("%w: author must be at least 3 characters", apperrors.ErrValidationFailed)
	}
	if len(strings.TrimSpace(book.Category)) < 3 {
		return fmt.Errorf("%w: category must be at least 3 characters", apperrors.ErrValidationFailed)
	}
	if !validation.IsISBN(book.ISBN) {
		return fmt.Errorf("%w: ISBN must be 10 or 13 characters after stripping hyphens", apperrors.ErrValidationFailed)
	}
	return nil
}

// AddBook adds copies of a book to the catalog. An existing entry with the
// same ISBN and identical metadata absorbs the copies; merged reports which
// path was taken.
func (s *BookService) AddBook(ctx context.Context, book *models.Book) (merged bool, err error) {
	book.ISBN = validation.NormalizeISBN(book.ISBN)
	if err := s.validateBook(book); err != nil {
		return false, err
	}
	if book.Copies < 1 {
		return false, fmt.Errorf("%w: copies must be at least 1", apperrors.ErrValidationFailed)
	}

	return s.books.AddOrMerge(ctx, book)
}

// FindBook resolves a book by numeric id or ISBN (hyphens ignored)
func (s *BookService) FindBook(ctx context.Context, identifier string) (*models.Book, error) {
	id, isbn, ok := validation.ClassifyBookIdentifier(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: identifier must be a numeric id or an ISBN", apperrors.ErrValidationFailed)
	}

	if isbn != "" {
		return s.books.GetByISBN(ctx, isbn)
	}
	return s.books.GetByID(ctx, id)
}

// ListBooks retrieves catalog entries matching the filter
func (s *BookService) ListBooks(ctx context.Context, filter repositories.BookFilter) ([]*models.Book, int64, error) {
	books, total, err := s.books.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving books: %w", err)
	}
	return books, total, nil
}

// UpdateBook applies all fields except the ISBN, which is immutable
// post-creation
func (s *BookService) UpdateBook(ctx context.Context, identifier string, updated *models.Book) (*models.Book, error) {
	book, err := s.FindBook(ctx, identifier)
	if err != nil {
		return nil, err
	}

	book.Title = updated.Title
	book.Author = updated.Author
	book.Category = updated.Category
	book.Copies = updated.Copies

	if err := s.validateBook(book); err != nil {
		return nil, err
	}
	if book.Copies < 0 {
		return nil, fmt.Errorf("%w: copies cannot be negative", apperrors.ErrValidationFailed)
	}

	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes a catalog entry. Entries with outstanding loans cannot
// be deleted; the store's delete guard closes the window between the check
// and the delete.
func (s *BookService) DeleteBook(ctx context.Context, identifier string) error {
	book, err := s.FindBook(ctx, identifier)
	if err != nil {
		return err
	}

	active, err := s.issues.HasActiveForBook(ctx, book.ID)
	if err != nil {
		return fmt.Errorf("error checking outstanding loans: %w", err)
	}
	if active {
		return apperrors.ErrBookHasActiveLoans
	}

	return s.books.Delete(ctx, book.ID)
}
