package dto

import (
	"time"

	"github.com/eren/shelfmate/internal/app/models"
)

// IssueBookRequest represents a request to lend one copy of a book to a
// student. The student may be addressed by name, roll number or phone.
type IssueBookRequest struct {
	StudentIdentifier string `json:"studentIdentifier" binding:"required" example:"R102"`
	DurationDays      int    `json:"durationDays" binding:"required,min=1" example:"14"`
}

// IssuedBookResponse represents a loan record returned to clients
type IssuedBookResponse struct {
	ID           int64            `json:"id" example:"1"`
	BookID       int64            `json:"bookId" example:"3"`
	StudentID    int64            `json:"studentId" example:"7"`
	IssueDate    string           `json:"issueDate" example:"2025-06-01"`
	DueDate      string           `json:"dueDate" example:"2025-06-15"`
	ReturnedDate *string          `json:"returnedDate,omitempty" example:"2025-06-10"`
	IsOverdue    bool             `json:"isOverdue" example:"false"`
	Book         *BookResponse    `json:"book,omitempty"`
	Student      *StudentResponse `json:"student,omitempty"`
}

const dateLayout = "2006-01-02"

// FromIssuedBook converts a models.IssuedBook to an IssuedBookResponse,
// deriving the overdue flag as of the given date.
func FromIssuedBook(record *models.IssuedBook, asOf time.Time) IssuedBookResponse {
	resp := IssuedBookResponse{
		ID:        record.ID,
		BookID:    record.BookID,
		StudentID: record.StudentID,
		IssueDate: record.IssueDate.Format(dateLayout),
		DueDate:   record.DueDate.Format(dateLayout),
		IsOverdue: record.IsOverdue(asOf),
	}

	if record.ReturnedDate != nil {
		returned := record.ReturnedDate.Format(dateLayout)
		resp.ReturnedDate = &returned
	}
	if record.Book != nil {
		book := FromBook(record.Book)
		resp.Book = &book
	}
	if record.Student != nil {
		student := FromStudent(record.Student)
		resp.Student = &student
	}

	return resp
}

// FromIssuedBooks converts a slice of loan records
func FromIssuedBooks(records []*models.IssuedBook, asOf time.Time) []IssuedBookResponse {
	out := make([]IssuedBookResponse, 0, len(records))
	for _, record := range records {
		out = append(out, FromIssuedBook(record, asOf))
	}
	return out
}
