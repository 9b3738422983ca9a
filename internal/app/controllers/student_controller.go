package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eren/shelfmate/internal/app/models/dto"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/app/services"
	"github.com/eren/shelfmate/internal/middleware"
	"github.com/eren/shelfmate/internal/pkg/helpers"
)

// StudentController handles borrower directory operations
type StudentController struct {
	studentService *services.StudentService
	issueService   *services.IssueService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, issueService *services.IssueService) *StudentController {
	return &StudentController{
		studentService: studentService,
		issueService:   issueService,
	}
}

// AddStudent registers a new student
// @Summary Register a student
// @Description Registers a new student. Roll number, phone and email must each be unique; a conflict reports every duplicated field at once.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Duplicate roll number, phone or email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) AddStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student := req.ToStudent()
	if err := c.studentService.AddStudent(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromStudent(student), "Student registered"))
}

// GetStudent retrieves a student by identifier
// @Summary Get a student
// @Description Retrieves a student by name, roll number (both case-insensitive) or exact phone; the earliest-registered match wins
// @Tags students
// @Accept json
// @Produce json
// @Param identifier path string true "Student name, roll number or phone"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{identifier} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.FindStudent(ctx, ctx.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromStudent(student), "Student retrieved"))
}

// ListStudents lists registered students
// @Summary List students
// @Description Retrieves a paginated student listing with optional department, semester and free-text filters
// @Tags students
// @Accept json
// @Produce json
// @Param department query string false "Filter by department"
// @Param semester query int false "Filter by semester"
// @Param search query string false "Match against name, roll number or phone"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	semester := 0
	if raw := ctx.Query("semester"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester")
			errorDetail = errorDetail.WithDetails("Semester must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		semester = parsed
	}

	filter := repositories.StudentFilter{
		Department: ctx.Query("department"),
		Semester:   semester,
		Search:     ctx.Query("search"),
		Offset:     offset,
		Limit:      limit,
	}

	students, total, err := c.studentService.ListStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, dto.FromStudent(student))
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(out, "Students retrieved", helpers.NewPaginationInfo(total, page, limit)))
}

// ListStudentBooks lists a student's loans
// @Summary List a student's loans
// @Description Retrieves the student's loan records, newest first. Pass active=true to restrict to unreturned loans.
// @Tags students
// @Accept json
// @Produce json
// @Param identifier path string true "Student name, roll number or phone"
// @Param active query bool false "Only unreturned loans" default(false)
// @Success 200 {object} dto.APIResponse{data=[]dto.IssuedBookResponse} "Loans retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{identifier}/books [get]
func (c *StudentController) ListStudentBooks(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"

	records, err := c.studentService.StudentLoans(ctx, ctx.Param("identifier"), activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromIssuedBooks(records, helpers.Today()), "Loans retrieved"))
}

// ReturnBook closes a loan record
// @Summary Return a book
// @Description Marks the loan record returned and puts the copy back on the shelf atomically. A record can only be returned once.
// @Tags issuance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "Student name, roll number or phone"
// @Param issueId path int true "Loan record ID"
// @Success 200 {object} dto.APIResponse{data=dto.IssuedBookResponse} "Book returned"
// @Failure 400 {object} dto.ErrorResponse "Book already returned or invalid record ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student or loan record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{identifier}/books/{issueId}/return [post]
func (c *StudentController) ReturnBook(ctx *gin.Context) {
	issueID, err := strconv.ParseInt(ctx.Param("issueId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid loan record ID")
		errorDetail = errorDetail.WithDetails("Loan record ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.issueService.ReturnBook(ctx, ctx.Param("identifier"), issueID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromIssuedBook(record, helpers.Today()), "Book returned"))
}
