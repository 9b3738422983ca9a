package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
	"github.com/eren/shelfmate/internal/pkg/dberrors"
	"github.com/eren/shelfmate/internal/pkg/helpers"
)

// Partial unique index enforcing one active loan per (book, student)
const constraintActiveLoan = "uq_issued_books_active"

// IssueRepository handles database operations for the issuance ledger
type IssueRepository struct {
	db *pgxpool.Pool
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db *pgxpool.Pool) *IssueRepository {
	return &IssueRepository{
		db: db,
	}
}

// Issue decrements the book's shelf count and inserts the loan record in one
// transaction. The conditional decrement serializes concurrent issues of the
// same book at the row level, so the count can never go negative; the partial
// unique index rejects a second active loan for the same (book, student).
func (r *IssueRepository) Issue(ctx context.Context, record *models.IssuedBook) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE books
		SET copies = copies - 1
		WHERE id = $1 AND copies > 0
	`, record.BookID)
	if err != nil {
		return fmt.Errorf("error decrementing copies: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, record.BookID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking book existence: %w", err)
		}
		if exists {
			return apperrors.ErrNoCopiesAvailable
		}
		return apperrors.ErrBookNotFound
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO issued_books (book_id, student_id, issue_date, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, record.BookID, record.StudentID, record.IssueDate, record.DueDate).Scan(&record.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintActiveLoan) {
			return apperrors.ErrDuplicateLoan
		}
		return fmt.Errorf("error creating issue record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Return marks the record returned and puts the copy back on the shelf in one
// transaction. Setting returned_date is guarded by IS NULL so a record can
// only be returned once. A record whose book row has vanished is still marked
// returned; its audit trail is never blocked by a missing book.
func (r *IssueRepository) Return(ctx context.Context, recordID int64, returnedOn time.Time) (*models.IssuedBook, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var record models.IssuedBook
	var returned sql.NullTime
	err = tx.QueryRow(ctx, `
		UPDATE issued_books
		SET returned_date = $2
		WHERE id = $1 AND returned_date IS NULL
		RETURNING id, book_id, student_id, issue_date, due_date, returned_date
	`, recordID, returnedOn).Scan(
		&record.ID,
		&record.BookID,
		&record.StudentID,
		&record.IssueDate,
		&record.DueDate,
		&returned,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM issued_books WHERE id = $1)`, recordID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("error checking issue record existence: %w", err)
		}
		if exists {
			return nil, apperrors.ErrBookAlreadyReturned
		}
		return nil, apperrors.ErrIssueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error marking record returned: %w", err)
	}
	record.ReturnedDate = helpers.TimePtr(returned)

	if _, err := tx.Exec(ctx, `
		UPDATE books SET copies = copies + 1 WHERE id = $1
	`, record.BookID); err != nil {
		return nil, fmt.Errorf("error incrementing copies: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &record, nil
}

// GetByID retrieves an issue record by ID
func (r *IssueRepository) GetByID(ctx context.Context, id int64) (*models.IssuedBook, error) {
	var record models.IssuedBook
	var returned sql.NullTime
	err := r.db.QueryRow(ctx, `
		SELECT id, book_id, student_id, issue_date, due_date, returned_date
		FROM issued_books
		WHERE id = $1
	`, id).Scan(
		&record.ID,
		&record.BookID,
		&record.StudentID,
		&record.IssueDate,
		&record.DueDate,
		&returned,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrIssueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving issue record: %w", err)
	}

	record.ReturnedDate = helpers.TimePtr(returned)
	return &record, nil
}

// HasActiveLoan reports whether the student currently holds an unreturned
// copy of the book
func (r *IssueRepository) HasActiveLoan(ctx context.Context, bookID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM issued_books
			WHERE book_id = $1 AND student_id = $2 AND returned_date IS NULL
		)
	`, bookID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active loan: %w", err)
	}
	return exists, nil
}

// HasActiveForBook reports whether any unreturned issuance references the book
func (r *IssueRepository) HasActiveForBook(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM issued_books
			WHERE book_id = $1 AND returned_date IS NULL
		)
	`, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active loans for book: %w", err)
	}
	return exists, nil
}

// ActiveByStudent lists the student's outstanding loans
func (r *IssueRepository) ActiveByStudent(ctx context.Context, studentID int64) ([]*models.IssuedBook, error) {
	return r.query(ctx, `
		SELECT id, book_id, student_id, issue_date, due_date, returned_date
		FROM issued_books
		WHERE student_id = $1 AND returned_date IS NULL
		ORDER BY id
	`, studentID)
}

// ByStudent lists all of the student's loans, returned ones included
func (r *IssueRepository) ByStudent(ctx context.Context, studentID int64) ([]*models.IssuedBook, error) {
	return r.query(ctx, `
		SELECT id, book_id, student_id, issue_date, due_date, returned_date
		FROM issued_books
		WHERE student_id = $1
		ORDER BY id
	`, studentID)
}

// Overdue lists outstanding loans whose due date has passed asOf
func (r *IssueRepository) Overdue(ctx context.Context, asOf time.Time) ([]*models.IssuedBook, error) {
	return r.queryJoined(ctx, `
		WHERE i.returned_date IS NULL AND i.due_date < $1
	`, asOf)
}

// DueWithin lists outstanding loans due on or before asOf + horizonDays,
// which naturally includes loans that are already overdue
func (r *IssueRepository) DueWithin(ctx context.Context, asOf time.Time, horizonDays int) ([]*models.IssuedBook, error) {
	cutoff := asOf.AddDate(0, 0, horizonDays)
	return r.queryJoined(ctx, `
		WHERE i.returned_date IS NULL AND i.due_date <= $1
	`, cutoff)
}

func (r *IssueRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.IssuedBook, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.IssuedBook
	for rows.Next() {
		var record models.IssuedBook
		var returned sql.NullTime
		if err := rows.Scan(
			&record.ID,
			&record.BookID,
			&record.StudentID,
			&record.IssueDate,
			&record.DueDate,
			&returned,
		); err != nil {
			return nil, err
		}
		record.ReturnedDate = helpers.TimePtr(returned)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// queryJoined loads records with their book and student relations populated,
// as the reminder scan needs titles and addresses in one pass
func (r *IssueRepository) queryJoined(ctx context.Context, where string, args ...interface{}) ([]*models.IssuedBook, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.book_id, i.student_id, i.issue_date, i.due_date, i.returned_date,
		       b.id, b.title, b.author, b.isbn, b.category, b.copies,
		       s.id, s.name, s.roll_number, s.department, s.semester, s.phone, s.email
		FROM issued_books i
		JOIN books b ON b.id = i.book_id
		JOIN students s ON s.id = i.student_id
	`+where+` ORDER BY i.due_date, i.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.IssuedBook
	for rows.Next() {
		var record models.IssuedBook
		var book models.Book
		var student models.Student
		var returned sql.NullTime
		if err := rows.Scan(
			&record.ID, &record.BookID, &record.StudentID,
			&record.IssueDate, &record.DueDate, &returned,
			&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Category, &book.Copies,
			&student.ID, &student.Name, &student.RollNumber, &student.Department,
			&student.Semester, &student.Phone, &student.Email,
		); err != nil {
			return nil, err
		}
		record.ReturnedDate = helpers.TimePtr(returned)
		record.Book = &book
		record.Student = &student
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
