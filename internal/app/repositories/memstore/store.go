// Package memstore provides an in-memory backend for the store interfaces.
// It backs tests and local runs with database.driver "memory", and honors the
// same atomicity contract as the Postgres repositories: issue and return are
// serialized per book with a keyed lock, never with a single global one.
package memstore

import (
	"sync"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
)

// core holds the shared state behind the per-entity store views
type core struct {
	mu sync.RWMutex

	books      map[int64]*models.Book
	students   map[int64]*models.Student
	issues     map[int64]*models.IssuedBook
	librarians map[int64]*models.Librarian

	nextBookID      int64
	nextStudentID   int64
	nextIssueID     int64
	nextLibrarianID int64

	lockMu    sync.Mutex
	bookLocks map[int64]*sync.Mutex
}

// bookLock returns the mutex serializing issue/return traffic for one book
func (c *core) bookLock(bookID int64) *sync.Mutex {
	c.lockMu.Lock()
	defer c.lockMu.Unlock()

	lock, ok := c.bookLocks[bookID]
	if !ok {
		lock = &sync.Mutex{}
		c.bookLocks[bookID] = lock
	}
	return lock
}

// Store is the in-memory counterpart of the Postgres repositories
type Store struct {
	Books      *BookStore
	Students   *StudentStore
	Issues     *IssueStore
	Librarians *LibrarianStore
}

// New creates an empty in-memory store
func New() *Store {
	c := &core{
		books:      make(map[int64]*models.Book),
		students:   make(map[int64]*models.Student),
		issues:     make(map[int64]*models.IssuedBook),
		librarians: make(map[int64]*models.Librarian),
		bookLocks:  make(map[int64]*sync.Mutex),
	}
	return &Store{
		Books:      &BookStore{c: c},
		Students:   &StudentStore{c: c},
		Issues:     &IssueStore{c: c},
		Librarians: &LibrarianStore{c: c},
	}
}

// Stores adapts the in-memory backend to the interface bundle services consume
func (s *Store) Stores() *repositories.Stores {
	return &repositories.Stores{
		Books:      s.Books,
		Students:   s.Students,
		Issues:     s.Issues,
		Librarians: s.Librarians,
	}
}

func cloneBook(b *models.Book) *models.Book {
	copied := *b
	return &copied
}

func cloneStudent(s *models.Student) *models.Student {
	copied := *s
	return &copied
}

func cloneIssue(r *models.IssuedBook) *models.IssuedBook {
	copied := *r
	if r.ReturnedDate != nil {
		returned := *r.ReturnedDate
		copied.ReturnedDate = &returned
	}
	copied.Book = nil
	copied.Student = nil
	return &copied
}
