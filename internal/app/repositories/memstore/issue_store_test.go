package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

func seedBook(t *testing.T, s *Store, copies int) *models.Book {
	t.Helper()

	book := &models.Book{Title: "Clean Architecture", Author: "Robert Martin", ISBN: "9780134494166", Category: "Software Engineering", Copies: copies}
	_, err := s.Books.AddOrMerge(context.Background(), book)
	require.NoError(t, err)
	return book
}

func seedStudent(t *testing.T, s *Store, roll string) *models.Student {
	t.Helper()

	student := &models.Student{
		Name:       "Student " + roll,
		RollNumber: roll,
		Department: "CENG",
		Semester:   4,
		Phone:      "+9055500" + roll,
		Email:      roll + "@example.edu.tr",
	}
	require.NoError(t, s.Students.Create(context.Background(), student))
	return student
}

func TestIssueDecrementsAtomically(t *testing.T) {
	s := New()
	ctx := context.Background()

	book := seedBook(t, s, 1)
	student := seedStudent(t, s, "R102")

	record := &models.IssuedBook{
		BookID:    book.ID,
		StudentID: student.ID,
		IssueDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Issues.Issue(ctx, record))
	assert.NotZero(t, record.ID)

	stored, err := s.Books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Copies)

	// The shelf is empty; the next issue fails and leaves no ledger trace
	err = s.Issues.Issue(ctx, &models.IssuedBook{
		BookID:    book.ID,
		StudentID: seedStudent(t, s, "R103").ID,
		IssueDate: record.IssueDate,
		DueDate:   record.DueDate,
	})
	assert.ErrorIs(t, err, apperrors.ErrNoCopiesAvailable)

	records, err := s.Issues.ByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestConcurrentIssueAndReturn(t *testing.T) {
	s := New()
	ctx := context.Background()

	book := seedBook(t, s, 2)

	const workers = 10
	students := make([]*models.Student, workers)
	for i := range students {
		students[i] = seedStudent(t, s, "R2"+string(rune('0'+i)))
	}

	issueDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := &models.IssuedBook{
				BookID:    book.ID,
				StudentID: students[i].ID,
				IssueDate: issueDate,
				DueDate:   issueDate.AddDate(0, 0, 7),
			}
			if err := s.Issues.Issue(ctx, record); err == nil {
				_, _ = s.Issues.Return(ctx, record.ID, issueDate)
			}
		}(i)
	}
	wg.Wait()

	// Every successful issue was paired with a return, so the full shelf
	// count is restored and nothing went negative along the way
	stored, err := s.Books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Copies)
}

func TestReturnSurvivesVanishedBook(t *testing.T) {
	s := New()
	ctx := context.Background()

	book := seedBook(t, s, 1)
	student := seedStudent(t, s, "R102")

	record := &models.IssuedBook{
		BookID:    book.ID,
		StudentID: student.ID,
		IssueDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Issues.Issue(ctx, record))

	// Simulate a book row vanishing underneath an open loan
	s.Books.c.mu.Lock()
	delete(s.Books.c.books, book.ID)
	s.Books.c.mu.Unlock()

	returned, err := s.Issues.Return(ctx, record.ID, time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, returned.ReturnedDate)
}

func TestAdjustCopiesRefusesNegative(t *testing.T) {
	s := New()
	ctx := context.Background()

	book := seedBook(t, s, 2)

	require.NoError(t, s.Books.AdjustCopies(ctx, book.ID, -2))

	err := s.Books.AdjustCopies(ctx, book.ID, -1)
	assert.ErrorIs(t, err, apperrors.ErrCopiesNegative)

	stored, err := s.Books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Copies)
}

func TestConcurrentAddOrMergeSameISBN(t *testing.T) {
	s := New()
	ctx := context.Background()

	const adders = 8
	var wg sync.WaitGroup
	for i := 0; i < adders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			book := &models.Book{Title: "Clean Architecture", Author: "Robert Martin", ISBN: "9780134494166", Category: "Software Engineering", Copies: 1}
			_, err := s.Books.AddOrMerge(ctx, book)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := s.Books.GetByISBN(ctx, "9780134494166")
	require.NoError(t, err)
	assert.Equal(t, adders, stored.Copies)

	_, total, err := s.Books.List(ctx, repositories.BookFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDueWithinOrderedByDueDate(t *testing.T) {
	s := New()
	ctx := context.Background()

	book := seedBook(t, s, 3)
	first := seedStudent(t, s, "R102")
	second := seedStudent(t, s, "R103")
	third := seedStudent(t, s, "R104")

	issued := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	due := func(day int) time.Time {
		return time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC)
	}

	// Insertion order deliberately disagrees with due-date order
	late := &models.IssuedBook{BookID: book.ID, StudentID: first.ID, IssueDate: issued, DueDate: due(12)}
	require.NoError(t, s.Issues.Issue(ctx, late))
	early := &models.IssuedBook{BookID: book.ID, StudentID: second.ID, IssueDate: issued, DueDate: due(8)}
	require.NoError(t, s.Issues.Issue(ctx, early))
	sameDay := &models.IssuedBook{BookID: book.ID, StudentID: third.ID, IssueDate: issued, DueDate: due(12)}
	require.NoError(t, s.Issues.Issue(ctx, sameDay))

	records, err := s.Issues.DueWithin(ctx, due(7), 5)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// due date ascending, id breaking ties
	assert.Equal(t, early.ID, records[0].ID)
	assert.Equal(t, late.ID, records[1].ID)
	assert.Equal(t, sameDay.ID, records[2].ID)
}
