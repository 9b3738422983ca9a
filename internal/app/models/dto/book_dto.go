package dto

import "github.com/eren/shelfmate/internal/app/models"

// CreateBookRequest represents a request to add copies of a book to the
// catalog. Adding an ISBN that already exists with identical metadata merges
// by incrementing the copy count.
type CreateBookRequest struct {
	Title    string `json:"title" binding:"required,min=3" example:"The Go Programming Language"`
	Author   string `json:"author" binding:"required,min=3" example:"Alan Donovan"`
	ISBN     string `json:"isbn" binding:"required,isbn_shape" example:"978-0-13-419044-0"`
	Category string `json:"category" binding:"required,min=3" example:"Programming"`
	Copies   int    `json:"copies" binding:"required,min=1" example:"3"`
}

// UpdateBookRequest represents a request to update book metadata.
// The ISBN is immutable after creation and is deliberately absent.
// Copies is a pointer so that an explicit 0 (fully-lent stock correction)
// passes the required check.
type UpdateBookRequest struct {
	Title    string `json:"title" binding:"required,min=3"`
	Author   string `json:"author" binding:"required,min=3"`
	Category string `json:"category" binding:"required,min=3"`
	Copies   *int   `json:"copies" binding:"required,min=0"`
}

// BookResponse represents book information returned to clients
type BookResponse struct {
	ID       int64  `json:"id" example:"1"`
	Title    string `json:"title" example:"The Go Programming Language"`
	Author   string `json:"author" example:"Alan Donovan"`
	ISBN     string `json:"isbn" example:"9780134190440"`
	Category string `json:"category" example:"Programming"`
	Copies   int    `json:"copies" example:"3"`
}

// FromBook converts a models.Book to a BookResponse
func FromBook(book *models.Book) BookResponse {
	return BookResponse{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		ISBN:     book.ISBN,
		Category: book.Category,
		Copies:   book.Copies,
	}
}
