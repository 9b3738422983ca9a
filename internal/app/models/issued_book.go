package models

import "time"

// IssuedBook defines a loan record based on the 'issued_books' table.
// Records are append-only: a successful issue creates one, a return sets
// ReturnedDate exactly once, nothing ever deletes one.
type IssuedBook struct {
	ID           int64      `json:"id" db:"id" example:"1"`              // Unique identifier for the issuance record
	BookID       int64      `json:"bookId" db:"book_id" example:"3"`     // Issued book
	StudentID    int64      `json:"studentId" db:"student_id" example:"7"` // Borrowing student
	IssueDate    time.Time  `json:"issueDate" db:"issue_date"`           // Day the copy left the shelf
	DueDate      time.Time  `json:"dueDate" db:"due_date"`               // IssueDate + requested duration
	ReturnedDate *time.Time `json:"returnedDate,omitempty" db:"returned_date"` // Nil while the loan is outstanding

	// Relations (populated when needed)
	Book    *Book    `json:"book,omitempty"`    // Associated book
	Student *Student `json:"student,omitempty"` // Associated student
}

// IsOverdue reports whether the loan is still outstanding past its due date.
// A returned record is never overdue, regardless of its due date.
func (r *IssuedBook) IsOverdue(asOf time.Time) bool {
	return r.ReturnedDate == nil && r.DueDate.Before(asOf)
}
