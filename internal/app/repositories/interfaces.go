package repositories

import (
	"context"
	"time"

	"github.com/eren/shelfmate/internal/app/models"
)

// BookFilter narrows catalog listings. Zero values mean "no filter".
type BookFilter struct {
	Title    string
	Author   string
	Category string
	Offset   uint64
	Limit    int
}

// StudentFilter narrows student listings. Search matches name, roll number
// or phone.
type StudentFilter struct {
	Department string
	Semester   int
	Search     string
	Offset     uint64
	Limit      int
}

// BookStore owns Book records and their copy counts
type BookStore interface {
	// AddOrMerge inserts the candidate or, when a book with the same
	// normalized ISBN and identical metadata exists, atomically adds the
	// candidate's copies to it. An ISBN match with differing metadata fails
	// with apperrors.ErrISBNConflict.
	AddOrMerge(ctx context.Context, book *models.Book) (merged bool, err error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	List(ctx context.Context, filter BookFilter) ([]*models.Book, int64, error)
	// Update applies all fields except the ISBN, which is immutable.
	Update(ctx context.Context, book *models.Book) error
	// Delete fails with apperrors.ErrBookHasActiveLoans while any unreturned
	// issuance references the book.
	Delete(ctx context.Context, id int64) error
	// AdjustCopies applies delta atomically and fails with
	// apperrors.ErrCopiesNegative if the result would drop below zero.
	AdjustCopies(ctx context.Context, id int64, delta int) error
}

// StudentStore owns Student records and identity lookup
type StudentStore interface {
	// Create fails with a duplicate-student conflict listing every violated
	// uniqueness constraint (roll number, phone, email).
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	// GetByIdentifier tries name and roll number case-insensitively, then
	// phone exactly; the first match (lowest id) wins.
	GetByIdentifier(ctx context.Context, identifier string) (*models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]*models.Student, int64, error)
}

// IssueStore owns the append-only issuance ledger. Issue and Return are the
// two atomic units the coordinator relies on: copy-count mutation and ledger
// write either both happen or neither does.
type IssueStore interface {
	// Issue decrements the book's copy count (only while it stays
	// non-negative) and creates the record as one atomic unit. Fails with
	// apperrors.ErrNoCopiesAvailable when no copy is on the shelf and with
	// apperrors.ErrDuplicateLoan when the student already holds an
	// unreturned copy of the book.
	Issue(ctx context.Context, record *models.IssuedBook) error
	// Return sets the returned date (exactly once) and increments the
	// book's copy count as one atomic unit. A record whose book has since
	// vanished is still marked returned; only the increment is skipped.
	Return(ctx context.Context, recordID int64, returnedOn time.Time) (*models.IssuedBook, error)
	GetByID(ctx context.Context, id int64) (*models.IssuedBook, error)
	HasActiveLoan(ctx context.Context, bookID, studentID int64) (bool, error)
	// ActiveByStudent lists the student's outstanding loans.
	ActiveByStudent(ctx context.Context, studentID int64) ([]*models.IssuedBook, error)
	// ByStudent lists all of the student's loans, returned ones included.
	ByStudent(ctx context.Context, studentID int64) ([]*models.IssuedBook, error)
	// HasActiveForBook reports whether any student holds an unreturned copy.
	HasActiveForBook(ctx context.Context, bookID int64) (bool, error)
	// DueWithin returns outstanding loans with due_date <= asOf + horizon
	// days, book and student relations populated. Already-overdue loans
	// qualify by construction.
	DueWithin(ctx context.Context, asOf time.Time, horizonDays int) ([]*models.IssuedBook, error)
	// Overdue returns outstanding loans whose due date has passed asOf.
	Overdue(ctx context.Context, asOf time.Time) ([]*models.IssuedBook, error)
}

// LibrarianStore owns staff accounts
type LibrarianStore interface {
	Create(ctx context.Context, librarian *models.Librarian) error
	GetByEmail(ctx context.Context, email string) (*models.Librarian, error)
}

// Stores bundles the store interfaces a backend must provide
type Stores struct {
	Books      BookStore
	Students   StudentStore
	Issues     IssueStore
	Librarians LibrarianStore
}
