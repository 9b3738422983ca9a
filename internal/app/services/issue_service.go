package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
	"github.com/eren/shelfmate/internal/pkg/helpers"
)

// IssueService coordinates the issuance lifecycle. Copy-count mutation and
// ledger writes are delegated to the store's atomic Issue/Return operations,
// so an operation either fully succeeds or leaves no observable state change.
type IssueService struct {
	books    *BookService
	students *StudentService
	issues   repositories.IssueStore

	// today is swappable in tests; date arithmetic runs on whole days
	today func() time.Time
}

// NewIssueService creates a new issue service instance
func NewIssueService(books *BookService, students *StudentService, issues repositories.IssueStore) *IssueService {
	return &IssueService{
		books:    books,
		students: students,
		issues:   issues,
		today:    helpers.Today,
	}
}

// IssueBook lends one copy of the book to the student for durationDays.
// Preconditions run in spec order: book resolution, copy availability,
// student resolution, one-active-loan. The final availability and duplicate
// checks are re-run inside the store's atomic unit, so concurrent requests
// cannot both take the last copy.
func (s *IssueService) IssueBook(ctx context.Context, bookIdentifier, studentIdentifier string, durationDays int) (*models.IssuedBook, error) {
	if durationDays < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 day", apperrors.ErrValidationFailed)
	}

	book, err := s.books.FindBook(ctx, bookIdentifier)
	if err != nil {
		return nil, err
	}
	if book.Copies < 1 {
		return nil, apperrors.ErrNoCopiesAvailable
	}

	student, err := s.students.FindStudent(ctx, studentIdentifier)
	if err != nil {
		return nil, err
	}

	active, err := s.issues.HasActiveLoan(ctx, book.ID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking active loan: %w", err)
	}
	if active {
		return nil, apperrors.ErrDuplicateLoan
	}

	issueDate := s.today()
	record := &models.IssuedBook{
		BookID:    book.ID,
		StudentID: student.ID,
		IssueDate: issueDate,
		DueDate:   issueDate.AddDate(0, 0, durationDays),
	}

	if err := s.issues.Issue(ctx, record); err != nil {
		return nil, err
	}

	record.Book = book
	record.Book.Copies--
	record.Student = student
	return record, nil
}

// ReturnBook marks one of the student's loans returned and puts the copy
// back on the shelf. The record must belong to the student addressed by the
// identifier; a loan can only be returned once.
func (s *IssueService) ReturnBook(ctx context.Context, studentIdentifier string, recordID int64) (*models.IssuedBook, error) {
	student, err := s.students.FindStudent(ctx, studentIdentifier)
	if err != nil {
		return nil, err
	}

	record, err := s.issues.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.StudentID != student.ID {
		return nil, apperrors.ErrIssueNotFound
	}
	if record.ReturnedDate != nil {
		return nil, apperrors.ErrBookAlreadyReturned
	}

	returned, err := s.issues.Return(ctx, recordID, s.today())
	if err != nil {
		return nil, err
	}

	returned.Student = student
	return returned, nil
}

// ListOverdue lists outstanding loans whose due date has passed asOf, with
// book and student relations populated
func (s *IssueService) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.IssuedBook, error) {
	records, err := s.issues.Overdue(ctx, helpers.DateOnly(asOf))
	if err != nil {
		return nil, fmt.Errorf("error retrieving overdue loans: %w", err)
	}
	return records, nil
}
