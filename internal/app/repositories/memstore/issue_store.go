package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

// IssueStore is the in-memory issuance ledger backend
type IssueStore struct {
	c *core
}

// Issue decrements the book's shelf count and appends the loan record as one
// atomic unit. Concurrent issues of the same book serialize on that book's
// keyed lock, so two requests can never both consume the last copy.
func (s *IssueStore) Issue(_ context.Context, record *models.IssuedBook) error {
	lock := s.c.bookLock(record.BookID)
	lock.Lock()
	defer lock.Unlock()

	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	book, ok := s.c.books[record.BookID]
	if !ok {
		return apperrors.ErrBookNotFound
	}
	if book.Copies < 1 {
		return apperrors.ErrNoCopiesAvailable
	}
	for _, existing := range s.c.issues {
		if existing.BookID == record.BookID &&
			existing.StudentID == record.StudentID &&
			existing.ReturnedDate == nil {
			return apperrors.ErrDuplicateLoan
		}
	}

	book.Copies--
	s.c.nextIssueID++
	record.ID = s.c.nextIssueID
	s.c.issues[record.ID] = cloneIssue(record)
	return nil
}

// Return marks the record returned exactly once and puts the copy back on
// the shelf. A record whose book has since been deleted is still marked
// returned; only the increment is skipped.
func (s *IssueStore) Return(_ context.Context, recordID int64, returnedOn time.Time) (*models.IssuedBook, error) {
	s.c.mu.RLock()
	existing, ok := s.c.issues[recordID]
	var bookID int64
	if ok {
		bookID = existing.BookID
	}
	s.c.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}

	lock := s.c.bookLock(bookID)
	lock.Lock()
	defer lock.Unlock()

	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	record, ok := s.c.issues[recordID]
	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}
	if record.ReturnedDate != nil {
		return nil, apperrors.ErrBookAlreadyReturned
	}

	returned := returnedOn
	record.ReturnedDate = &returned

	if book, ok := s.c.books[record.BookID]; ok {
		book.Copies++
	}

	return cloneIssue(record), nil
}

// GetByID retrieves an issue record by ID
func (s *IssueStore) GetByID(_ context.Context, id int64) (*models.IssuedBook, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	record, ok := s.c.issues[id]
	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}
	return cloneIssue(record), nil
}

// HasActiveLoan reports whether the student currently holds an unreturned
// copy of the book
func (s *IssueStore) HasActiveLoan(_ context.Context, bookID, studentID int64) (bool, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, record := range s.c.issues {
		if record.BookID == bookID && record.StudentID == studentID && record.ReturnedDate == nil {
			return true, nil
		}
	}
	return false, nil
}

// HasActiveForBook reports whether any unreturned issuance references the book
func (s *IssueStore) HasActiveForBook(_ context.Context, bookID int64) (bool, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, record := range s.c.issues {
		if record.BookID == bookID && record.ReturnedDate == nil {
			return true, nil
		}
	}
	return false, nil
}

// ActiveByStudent lists the student's outstanding loans
func (s *IssueStore) ActiveByStudent(_ context.Context, studentID int64) ([]*models.IssuedBook, error) {
	return s.collect(func(r *models.IssuedBook) bool {
		return r.StudentID == studentID && r.ReturnedDate == nil
	}, false)
}

// ByStudent lists all of the student's loans, returned ones included
func (s *IssueStore) ByStudent(_ context.Context, studentID int64) ([]*models.IssuedBook, error) {
	return s.collect(func(r *models.IssuedBook) bool {
		return r.StudentID == studentID
	}, false)
}

// Overdue lists outstanding loans whose due date has passed asOf
func (s *IssueStore) Overdue(_ context.Context, asOf time.Time) ([]*models.IssuedBook, error) {
	records, err := s.collect(func(r *models.IssuedBook) bool {
		return r.ReturnedDate == nil && r.DueDate.Before(asOf)
	}, true)
	sortByDueDate(records)
	return records, err
}

// DueWithin lists outstanding loans due on or before asOf + horizonDays
func (s *IssueStore) DueWithin(_ context.Context, asOf time.Time, horizonDays int) ([]*models.IssuedBook, error) {
	cutoff := asOf.AddDate(0, 0, horizonDays)
	records, err := s.collect(func(r *models.IssuedBook) bool {
		return r.ReturnedDate == nil && !r.DueDate.After(cutoff)
	}, true)
	sortByDueDate(records)
	return records, err
}

// sortByDueDate orders records by due date then id, matching the joined
// Postgres queries
func sortByDueDate(records []*models.IssuedBook) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].DueDate.Equal(records[j].DueDate) {
			return records[i].DueDate.Before(records[j].DueDate)
		}
		return records[i].ID < records[j].ID
	})
}

// collect snapshots matching records; withRelations attaches book and
// student copies the way the joined Postgres queries do
func (s *IssueStore) collect(match func(*models.IssuedBook) bool, withRelations bool) ([]*models.IssuedBook, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	var records []*models.IssuedBook
	for _, record := range s.c.issues {
		if !match(record) {
			continue
		}
		copied := cloneIssue(record)
		if withRelations {
			if book, ok := s.c.books[record.BookID]; ok {
				copied.Book = cloneBook(book)
			}
			if student, ok := s.c.students[record.StudentID]; ok {
				copied.Student = cloneStudent(student)
			}
		}
		records = append(records, copied)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
