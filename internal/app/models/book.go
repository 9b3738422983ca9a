package models

// Book defines the catalog entry model based on the 'books' table.
// Copies counts the physical copies currently in the library's custody:
// issuing a copy decrements it, a return increments it.
type Book struct {
	ID       int64  `json:"id" db:"id" example:"1"`                               // Unique identifier for the book
	Title    string `json:"title" db:"title" example:"The Go Programming Language"` // Book title
	Author   string `json:"author" db:"author" example:"Alan Donovan"`            // Book author
	ISBN     string `json:"isbn" db:"isbn" example:"9780134190440"`               // Normalized ISBN (10 or 13 characters, hyphens stripped)
	Category string `json:"category" db:"category" example:"Programming"`         // Free-text category
	Copies   int    `json:"copies" db:"copies" example:"3"`                       // Copies currently on the shelf
}

// SameEdition reports whether two catalog entries describe the same work.
// An ISBN collision with differing metadata is a conflict, not a merge.
func (b *Book) SameEdition(other *Book) bool {
	return b.Title == other.Title && b.Author == other.Author && b.Category == other.Category
}
