package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

// StudentStore is the in-memory borrower directory backend
type StudentStore struct {
	c *core
}

// Create registers a student. The duplicate check and the insert share one
// lock, so two concurrent registrations cannot both pass the check. All
// violated uniqueness constraints are reported together.
func (s *StudentStore) Create(_ context.Context, student *models.Student) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	fields := map[string]string{}
	for _, existing := range s.c.students {
		if strings.EqualFold(existing.RollNumber, student.RollNumber) {
			fields["roll number"] = student.RollNumber
		}
		if existing.Phone == student.Phone {
			fields["phone"] = student.Phone
		}
		if strings.EqualFold(existing.Email, student.Email) {
			fields["email"] = student.Email
		}
	}
	if len(fields) > 0 {
		return apperrors.NewDuplicateStudentError(fields)
	}

	s.c.nextStudentID++
	student.ID = s.c.nextStudentID
	s.c.students[student.ID] = cloneStudent(student)
	return nil
}

// GetByID retrieves a student by ID
func (s *StudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	student, ok := s.c.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return cloneStudent(student), nil
}

// GetByIdentifier resolves a student by name, roll number (both
// case-insensitive) or phone (exact); with ambiguous matches the lowest id
// wins
func (s *StudentStore) GetByIdentifier(_ context.Context, identifier string) (*models.Student, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	var match *models.Student
	for _, student := range s.c.students {
		if strings.EqualFold(student.Name, identifier) ||
			strings.EqualFold(student.RollNumber, identifier) ||
			student.Phone == identifier {
			if match == nil || student.ID < match.ID {
				match = student
			}
		}
	}

	if match == nil {
		return nil, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, identifier)
	}
	return cloneStudent(match), nil
}

// List retrieves students matching the filter along with the unpaged total
func (s *StudentStore) List(_ context.Context, filter repositories.StudentFilter) ([]*models.Student, int64, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	var filtered []*models.Student
	for _, student := range s.c.students {
		if filter.Department != "" && !containsFold(student.Department, filter.Department) {
			continue
		}
		if filter.Semester != 0 && student.Semester != filter.Semester {
			continue
		}
		if filter.Search != "" &&
			!containsFold(student.Name, filter.Search) &&
			!containsFold(student.RollNumber, filter.Search) &&
			!strings.Contains(student.Phone, filter.Search) {
			continue
		}
		filtered = append(filtered, student)
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	total := int64(len(filtered))
	start, end := window(int(filter.Offset), filter.Limit, len(filtered))

	out := make([]*models.Student, 0, end-start)
	for _, student := range filtered[start:end] {
		out = append(out, cloneStudent(student))
	}
	return out, total, nil
}
