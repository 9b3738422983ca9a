package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/models/dto"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/app/services"
	"github.com/eren/shelfmate/internal/middleware"
	"github.com/eren/shelfmate/internal/pkg/helpers"
)

// BookController handles catalog and issuance operations
type BookController struct {
	bookService  *services.BookService
	issueService *services.IssueService
}

// NewBookController creates a new BookController
func NewBookController(bookService *services.BookService, issueService *services.IssueService) *BookController {
	return &BookController{
		bookService:  bookService,
		issueService: issueService,
	}
}

// AddBook handles adding copies of a book to the catalog
// @Summary Add a book
// @Description Adds copies of a book to the catalog. Re-adding an ISBN with identical metadata merges by incrementing the copy count; the same ISBN with different metadata is rejected.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book information"
// @Success 201 {object} dto.APIResponse{data=dto.BookResponse} "Book added"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Copies merged into existing book"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "ISBN already registered with different details"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [post]
func (c *BookController) AddBook(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid book data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	book := &models.Book{
		Title:    req.Title,
		Author:   req.Author,
		ISBN:     req.ISBN,
		Category: req.Category,
		Copies:   req.Copies,
	}

	merged, err := c.bookService.AddBook(ctx, book)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	message := "Book added to catalog"
	if merged {
		status = http.StatusOK
		message = "Copies added to existing book"
	}

	ctx.JSON(status, dto.NewAPIResponse(dto.FromBook(book), message))
}

// GetBook retrieves a book by ID or ISBN
// @Summary Get a book
// @Description Retrieves a single book by numeric ID or by ISBN (hyphens ignored)
// @Tags books
// @Accept json
// @Produce json
// @Param identifier path string true "Book ID or ISBN"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid identifier"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{identifier} [get]
func (c *BookController) GetBook(ctx *gin.Context) {
	book, err := c.bookService.FindBook(ctx, ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromBook(book), "Book retrieved"))
}

// ListBooks lists catalog entries with optional filters
// @Summary List books
// @Description Retrieves a paginated catalog listing with optional title, author and category filters (case-insensitive substring match)
// @Tags books
// @Accept json
// @Produce json
// @Param title query string false "Filter by title"
// @Param author query string false "Filter by author"
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.BookResponse} "Books retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	filter := repositories.BookFilter{
		Title:    ctx.Query("title"),
		Author:   ctx.Query("author"),
		Category: ctx.Query("category"),
		Offset:   offset,
		Limit:    limit,
	}

	books, total, err := c.bookService.ListBooks(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.BookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, dto.FromBook(book))
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(out, "Books retrieved", helpers.NewPaginationInfo(total, page, limit)))
}

// UpdateBook updates book metadata
// @Summary Update a book
// @Description Updates a book's metadata and copy count. The ISBN is immutable and cannot be changed.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "Book ID or ISBN"
// @Param request body dto.UpdateBookRequest true "Updated book information"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{identifier} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid book data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	updated := &models.Book{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Copies:   *req.Copies,
	}

	book, err := c.bookService.UpdateBook(ctx, ctx.Param("identifier"), updated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromBook(book), "Book updated"))
}

// DeleteBook removes a book from the catalog
// @Summary Delete a book
// @Description Removes a book from the catalog. Fails while any unreturned issuance still references it.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "Book ID or ISBN"
// @Success 204 "Book deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 409 {object} dto.ErrorResponse "Book has active loans"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{identifier} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	if err := c.bookService.DeleteBook(ctx, ctx.Param("identifier")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// IssueBook lends one copy of a book to a student
// @Summary Issue a book
// @Description Lends one copy of the book to the addressed student, decrementing the copy count and appending a ledger record atomically
// @Tags issuance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "Book ID or ISBN"
// @Param request body dto.IssueBookRequest true "Issue details"
// @Success 201 {object} dto.APIResponse{data=dto.IssuedBookResponse} "Book issued"
// @Failure 400 {object} dto.ErrorResponse "No copies available or invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Book or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already holds an unreturned copy"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{identifier}/issue [post]
func (c *BookController) IssueBook(ctx *gin.Context) {
	var req dto.IssueBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid issue request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.issueService.IssueBook(ctx, ctx.Param("identifier"), req.StudentIdentifier, req.DurationDays)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromIssuedBook(record, helpers.Today()), "Book issued"))
}

// ListOverdue lists outstanding loans past their due date
// @Summary List overdue loans
// @Description Retrieves all unreturned loans whose due date has passed, with book and student details
// @Tags issuance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param asOf query string false "Reference date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.APIResponse{data=[]dto.IssuedBookResponse} "Overdue loans retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid reference date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/overdue [get]
func (c *BookController) ListOverdue(ctx *gin.Context) {
	asOf := helpers.Today()
	if raw := ctx.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reference date")
			errorDetail = errorDetail.WithDetails("asOf must be formatted as YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		asOf = parsed
	}

	records, err := c.issueService.ListOverdue(ctx, asOf)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromIssuedBooks(records, asOf), "Overdue loans retrieved"))
}
