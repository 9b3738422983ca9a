package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresStores wires the pgx-backed repositories into the store
// interfaces the services consume
func NewPostgresStores(db *pgxpool.Pool) *Stores {
	return &Stores{
		Books:      NewBookRepository(db),
		Students:   NewStudentRepository(db),
		Issues:     NewIssueRepository(db),
		Librarians: NewLibrarianRepository(db),
	}
}
