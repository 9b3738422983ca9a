package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories/memstore"
	"github.com/eren/shelfmate/internal/app/services"
)

func newBookRouter(t *testing.T) (*gin.Engine, *services.BookService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := memstore.New().Stores()
	bookService := services.NewBookService(stores.Books, stores.Issues)
	studentService := services.NewStudentService(stores.Students, stores.Issues)
	issueService := services.NewIssueService(bookService, studentService, stores.Issues)
	controller := NewBookController(bookService, issueService)

	router := gin.New()
	router.PUT("/books/:identifier", controller.UpdateBook)
	return router, bookService
}

func TestUpdateBookAllowsZeroCopies(t *testing.T) {
	router, bookService := newBookRouter(t)
	ctx := context.Background()

	_, err := bookService.AddBook(ctx, &models.Book{
		Title:    "Clean Architecture",
		Author:   "Robert Martin",
		ISBN:     "9780134494166",
		Category: "Software Engineering",
		Copies:   2,
	})
	require.NoError(t, err)

	// All copies lent out or lost: stock may legitimately be corrected to 0
	body := `{"title":"Clean Architecture","author":"Robert Martin","category":"Software Engineering","copies":0}`
	req := httptest.NewRequest(http.MethodPut, "/books/9780134494166", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	book, err := bookService.FindBook(ctx, "9780134494166")
	require.NoError(t, err)
	assert.Equal(t, 0, book.Copies)
}

func TestUpdateBookRequiresCopies(t *testing.T) {
	router, bookService := newBookRouter(t)
	ctx := context.Background()

	_, err := bookService.AddBook(ctx, &models.Book{
		Title:    "Clean Architecture",
		Author:   "Robert Martin",
		ISBN:     "9780134494166",
		Category: "Software Engineering",
		Copies:   2,
	})
	require.NoError(t, err)

	body := `{"title":"Clean Architecture","author":"Robert Martin","category":"Software Engineering"}`
	req := httptest.NewRequest(http.MethodPut, "/books/9780134494166", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	book, err := bookService.FindBook(ctx, "9780134494166")
	require.NoError(t, err)
	assert.Equal(t, 2, book.Copies, "a rejected update leaves the stock untouched")
}
