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

// BookRepository handles database operations for the catalog
type BookRepository struct {
	db *pgxpool.Pool
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{
		db: db,
	}
}

// AddOrMerge inserts the candidate or merges copies into the existing entry
// with the same ISBN. The upsert is a single statement so the existence check
// and the mutation cannot race: ON CONFLICT only updates when the metadata
// matches, and a conflict row that fails that guard yields no row at all.
func (r *BookRepository) AddOrMerge(ctx context.Context, book *models.Book) (bool, error) {
	// xmax is zero for freshly inserted rows, non-zero for updated ones.
	query := `
		INSERT INTO books (title, author, isbn, category, copies)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (isbn) DO UPDATE
		SET copies = books.copies + EXCLUDED.copies
		WHERE books.title = EXCLUDED.title
		  AND books.author = EXCLUDED.author
		  AND books.category = EXCLUDED.category
		RETURNING id, copies, (xmax <> 0) AS merged
	`

	var merged bool
	err := r.db.QueryRow(ctx, query,
		book.Title, book.Author, book.ISBN, book.Category, book.Copies,
	).Scan(&book.ID, &book.Copies, &merged)

	if errors.Is(err, pgx.ErrNoRows) {
		// The ISBN exists but describes a different work.
		return false, apperrors.ErrISBNConflict
	}
	if err != nil {
		return false, fmt.Errorf("error adding book: %w", err)
	}

	return merged, nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	return r.getOne(ctx, `
		SELECT id, title, author, isbn, category, copies
		FROM books
		WHERE id = $1
	`, id)
}

// GetByISBN retrieves a book by its normalized ISBN
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	return r.getOne(ctx, `
		SELECT id, title, author, isbn, category, copies
		FROM books
		WHERE isbn = $1
	`, isbn)
}

func (r *BookRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Book, error) {
	var book models.Book
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Category,
		&book.Copies,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	return &book, nil
}

// List retrieves books matching the filter along with the unpaged total
func (r *BookRepository) List(ctx context.Context, filter BookFilter) ([]*models.Book, int64, error) {
	where := ` WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		AND ($2 = '' OR author ILIKE '%' || $2 || '%')
		AND ($3 = '' OR category ILIKE '%' || $3 || '%')`

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`+where,
		filter.Title, filter.Author, filter.Category).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting books: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, author, isbn, category, copies
		FROM books`+where+`
		ORDER BY id
		OFFSET $4 LIMIT $5
	`, filter.Title, filter.Author, filter.Category, filter.Offset, filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.ISBN,
			&book.Category,
			&book.Copies,
		); err != nil {
			return nil, 0, err
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// Update updates a book's metadata and shelf count. The ISBN never changes.
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, category = $3, copies = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		book.Title, book.Author, book.Category, book.Copies, book.ID)
	if err != nil {
		return fmt.Errorf("error updating book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// Delete deletes a book by ID. A book with outstanding loans cannot be
// deleted; the guard and the delete run as one statement.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM books
		WHERE id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM issued_books
			WHERE book_id = $1 AND returned_date IS NULL
		  )
	`, id)
	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking book existence: %w", err)
		}
		if exists {
			return apperrors.ErrBookHasActiveLoans
		}
		return apperrors.ErrBookNotFound
	}

	return nil
}

// AdjustCopies applies a delta to the shelf count. The conditional update
// refuses any change that would leave the count negative.
func (r *BookRepository) AdjustCopies(ctx context.Context, id int64, delta int) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE books
		SET copies = copies + $2
		WHERE id = $1 AND copies + $2 >= 0
	`, id, delta)
	if err != nil {
		return fmt.Errorf("error adjusting copies: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking book existence: %w", err)
		}
		if exists {
			return apperrors.ErrCopiesNegative
		}
		return apperrors.ErrBookNotFound
	}

	return nil
}
