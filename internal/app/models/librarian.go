package models

import "time"

// Librarian defines a staff account based on the 'librarians' table
type Librarian struct {
	ID           int64     `json:"id" db:"id" example:"1"`                    // Unique identifier for the librarian
	Name         string    `json:"name" db:"name" example:"Admin"`            // Display name
	Email        string    `json:"email" db:"email" example:"admin@library"`  // Login email
	PasswordHash string    `json:"-" db:"password_hash"`                      // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`                 // Account creation time
}
