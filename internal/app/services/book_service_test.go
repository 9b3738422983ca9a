package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

func TestAddBookMergesIdenticalEdition(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	first := &models.Book{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "978-0-13-419044-0", Category: "Programming", Copies: 2}
	merged, err := env.books.AddBook(ctx, first)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, "9780134190440", first.ISBN, "ISBN is stored without hyphens")

	// Same edition, differently hyphenated ISBN: copies accumulate
	second := &models.Book{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "9780134190440", Category: "Programming", Copies: 3}
	merged, err = env.books.AddBook(ctx, second)
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Copies)

	books, total, err := env.books.ListBooks(ctx, repositories.BookFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 5, books[0].Copies)
}

func TestAddBookISBNConflict(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "The Go Programming Language", "9780134190440", 2)

	conflicting := &models.Book{Title: "A Different Title", Author: "Someone Else", ISBN: "9780134190440", Category: "Programming", Copies: 1}
	_, err := env.books.AddBook(ctx, conflicting)
	assert.ErrorIs(t, err, apperrors.ErrISBNConflict)

	// The conflicting add left the catalog untouched
	book, err := env.books.FindBook(ctx, "9780134190440")
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", book.Title)
	assert.Equal(t, 2, book.Copies)
}

func TestAddBookValidation(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	cases := []struct {
		name string
		book *models.Book
	}{
		{"short title", &models.Book{Title: "Go", Author: "Alan Donovan", ISBN: "9780134190440", Category: "Programming", Copies: 1}},
		{"bad isbn", &models.Book{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "12345", Category: "Programming", Copies: 1}},
		{"zero copies", &models.Book{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "9780134190440", Category: "Programming", Copies: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.books.AddBook(ctx, tc.book)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestFindBookByIDAndISBN(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	added := env.addBook(t, "Clean Architecture", "9780134494166", 1)

	byISBN, err := env.books.FindBook(ctx, "978-0-13-449416-6")
	require.NoError(t, err)
	assert.Equal(t, added.ID, byISBN.ID)

	byID, err := env.books.FindBook(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, added.ID, byID.ID)

	_, err = env.books.FindBook(ctx, "not-an-identifier")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// hyphens are ISBN noise, not id noise: "-1" must not resolve book 1
	_, err = env.books.FindBook(ctx, "-1")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateBookKeepsISBN(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)

	updated, err := env.books.UpdateBook(ctx, "9780134494166", &models.Book{
		Title:    "Clean Architecture, 2nd Edition",
		Author:   "Robert Martin",
		Category: "Software Engineering",
		Copies:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Clean Architecture, 2nd Edition", updated.Title)
	assert.Equal(t, 4, updated.Copies)
	assert.Equal(t, "9780134494166", updated.ISBN)
}

func TestDeleteBookWithActiveLoans(t *testing.T) {
	env := newTestEnv(t, date(2025, time.June, 1))
	ctx := context.Background()

	env.addBook(t, "Clean Architecture", "9780134494166", 1)
	env.addStudent(t, "Ayse Kaya", "R102", "+905551234567", "ayse@example.edu.tr")

	record, err := env.issues.IssueBook(ctx, "9780134494166", "R102", 7)
	require.NoError(t, err)

	err = env.books.DeleteBook(ctx, "9780134494166")
	assert.ErrorIs(t, err, apperrors.ErrBookHasActiveLoans)

	_, err = env.issues.ReturnBook(ctx, "R102", record.ID)
	require.NoError(t, err)

	require.NoError(t, env.books.DeleteBook(ctx, "9780134494166"))
	_, err = env.books.FindBook(ctx, "9780134494166")
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}
