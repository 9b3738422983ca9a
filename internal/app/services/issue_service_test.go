package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories/memstore"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

type testEnv struct {
	books    *BookService
	students *StudentService
	issues   *IssueService
}

func newTestEnv(t *testing.T, today time.Time) *testEnv {
	t.Helper()

	stores := memstore.New().Stores()
	books := NewBookService(stores.Books, stores.Issues)
	students := NewStudentService(stores.Students, stores.Issues)
	issues := NewIssueService(books, students, stores.Issues)
	issues.today = func() time.Time { return today }

	return &testEnv{books: books, students: students, issues: issues}
}

func (e *testEnv) addBook(t *testing.T, title, isbn string, copies int) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Author: "Test Author", ISBN: isbn, Category: "Testing", Copies: copies}
	_, err := e.books.AddBook(context.Background(), book)
	require.NoError(t, err)
	return book
}

func (e *testEnv) addStudent(t *testing.T, name, roll, phone, email string) *models.Student {
	t.Helper()

	student := &models.Student{
		Name:       name,
		RollNumber: roll,
		Department: "CENG",
		Semester:   4,
		Phone:      phone,
		Email:      email,
	}
	require.NoError(t, e.students.AddStudent(context.Background(), student))
	return student
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIssueBookLifecycle(t *testing.T) {
	today := date(2025, time.June, 1)
	env := newTestEnv(t, today)
	ctx := context.Background()

	env.addBook(t, "The Go Programming Language", "9780134190440", 2)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	record, err := env.issues.IssueBook(ctx, "9780134190440", "R102", 14)
	require.NoError(t, err)
	assert.Equal(t, today, record.IssueDate)
	assert.Equal(t, date(2025, time.June, 15), record.DueDate)
	assert.Nil(t, record.ReturnedDate)
	require.NotNil(t, record.Book)
	assert.Equal(t, 1, record.Book.Copies)

	// The shelf count went down by exactly one
	book, err := env.books.FindBook(ctx, "9780134190440")
	require.NoError(t, err)
	assert.Equal(t, 1, book.Copies)

	returned, err := env.issues.ReturnBook(ctx, "R102", record.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedDate)
	assert.Equal(t, today, *returned.ReturnedDate)

	// The copy is back on the shelf
	book, err = env.books.FindBook(ctx, "9780134190440")
	require.NoError(t, err)
	assert.Equal(t, 2, book.Copies)
}

func TestIssueBookNoCopies(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")
	env.addStudent(t, "Mehmet Demir", "R103", "+905557654321", "mehmet@example.edu.tr")

	_, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	require.NoError(t, err)

	_, err = env.issues.IssueBook(ctx, "9780134494166", "R103", 7)
	assert.ErrorIs(t, err, apperrors.ErrNoCopiesAvailable)
}

func TestIssueBookDuplicateLoan(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 3)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	first, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	require.NoError(t, err)

	// A second copy of the same book to the same student is refused
	_, err = env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateLoan)

	// After returning, the student may borrow the book again
	_, err = env.issues.ReturnBook(ctx, "R102", first.ID)
	require.NoError(t, err)

	_, err = env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	assert.NoError(t, err)
}

func TestIssueBookInvalidDuration(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	_, err := env.issues.IssueBook(context.Background(), "9780134494166", "R102", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestIssueBookUnknownParties(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	_, err := env.issues.IssueBook(ctx, "9999999999999", "R102", 7)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)

	_, err = env.issues.IssueBook(ctx, "9780134494166", "R999", 7)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestReturnBookAlreadyReturned(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	record, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	require.NoError(t, err)

	_, err = env.issues.ReturnBook(ctx, "R102", record.ID)
	require.NoError(t, err)

	_, err = env.issues.ReturnBook(ctx, "R102", record.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookAlreadyReturned)

	// The double return did not inflate the shelf count
	book, err := env.books.FindBook(ctx, "9780134494166")
	require.NoError(t, err)
	assert.Equal(t, 1, book.Copies)
}

func TestReturnBookWrongStudent(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")
	env.addStudent(t, "Mehmet Demir", "R103", "+905557654321", "mehmet@example.edu.tr")

	record, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	require.NoError(t, err)

	// Another student cannot return someone else's loan
	_, err = env.issues.ReturnBook(ctx, "R103", record.ID)
	assert.ErrorIs(t, err, apperrors.ErrIssueNotFound)
}

func TestIssueBookConcurrentLastCopy(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)

	const students = 8
	rolls := make([]string, students)
	for i := range rolls {
		roll := string(rune('A'+i)) + "100"
		env.addStudent(t, "Student "+roll, roll, "+90555000000"+string(rune('0'+i)), roll+"@example.edu.tr")
		rolls[i] = roll
	}

	var wg sync.WaitGroup
	errs := make([]error, students)
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.issues.IssueBook(ctx, "9780134494166", rolls[i], 7)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrNoCopiesAvailable)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one request should win the last copy")

	book, err := env.books.FindBook(ctx, "9780134494166")
	require.NoError(t, err)
	assert.Equal(t, 0, book.Copies)
}

func TestListOverdue(t *testing.T) {
	today := date(2025, time.June, 20)
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 2)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")
	env.addStudent(t, "Mehmet Demir", "R103", "+905557654321", "mehmet@example.edu.tr")

	// Due June 8: overdue by the 20th. Due June 29: still outstanding.
	overdueRecord, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	require.NoError(t, err)
	_, err = env.issues.IssueBook(ctx, "9780134494166", "R103", 28)
	require.NoError(t, err)

	records, err := env.issues.ListOverdue(ctx, today)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, overdueRecord.ID, records[0].ID)
	require.NotNil(t, records[0].Book)
	require.NotNil(t, records[0].Student)
	assert.Equal(t, "Ayse Kaya", records[0].Student.Name)
	assert.True(t, records[0].IsOverdue(today))
}
