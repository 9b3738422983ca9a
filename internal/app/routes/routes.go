package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eren/shelfmate/internal/app/controllers"
	"github.com/eren/shelfmate/internal/app/models/dto"
	"github.com/eren/shelfmate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	bookController *controllers.BookController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Public catalog reads ---
	books := v1.Group("/books")
	{
		books.GET("", bookController.ListBooks)
		books.GET("/:identifier", bookController.GetBook)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:identifier", studentController.GetStudent)
		students.GET("/:identifier/books", studentController.ListStudentBooks)
	}

	// --- Staff-only routes ---
	// Everything that mutates catalog, directory or ledger state requires a
	// librarian token.
	staff := v1.Group("")
	staff.Use(authMiddleware.JWTAuth())
	{
		staffBooks := staff.Group("/books")
		{
			staffBooks.GET("/overdue", bookController.ListOverdue)
			staffBooks.POST("", bookController.AddBook)
			staffBooks.PUT("/:identifier", bookController.UpdateBook)
			staffBooks.DELETE("/:identifier", bookController.DeleteBook)
			staffBooks.POST("/:identifier/issue", bookController.IssueBook)
		}

		staffStudents := staff.Group("/students")
		{
			staffStudents.POST("", studentController.AddStudent)
			staffStudents.POST("/:identifier/books/:issueId/return", studentController.ReturnBook)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}, "ok"))
	})

	// Swagger routes are set up in bootstrap.go already
}
