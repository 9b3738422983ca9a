package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

// StudentService handles borrower directory operations
type StudentService struct {
	students repositories.StudentStore
	issues   repositories.IssueStore
}

// NewStudentService creates a new student service instance
func NewStudentService(students repositories.StudentStore, issues repositories.IssueStore) *StudentService {
	return &StudentService{
		students: students,
		issues:   issues,
	}
}

// AddStudent registers a borrower. Duplicate roll number, phone or email are
// all reported together.
func (s *StudentService) AddStudent(ctx context.Context, student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.RollNumber) == "" {
		return fmt.Errorf("%w: roll number cannot be empty", apperrors.ErrValidationFailed)
	}
	if student.Semester < 1 {
		return fmt.Errorf("%w: semester must be positive", apperrors.ErrValidationFailed)
	}

	return s.students.Create(ctx, student)
}

// FindStudent resolves a borrower by name, roll number or phone.
// First match wins when an identifier is ambiguous across students.
func (s *StudentService) FindStudent(ctx context.Context, identifier string) (*models.Student, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("%w: identifier cannot be empty", apperrors.ErrValidationFailed)
	}
	return s.students.GetByIdentifier(ctx, identifier)
}

// ListStudents retrieves borrowers matching the filter
func (s *StudentService) ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, int64, error) {
	students, total, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, total, nil
}

// StudentLoans lists a borrower's loan history, outstanding loans first when
// activeOnly is set
func (s *StudentService) StudentLoans(ctx context.Context, identifier string, activeOnly bool) ([]*models.IssuedBook, error) {
	student, err := s.FindStudent(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if activeOnly {
		return s.issues.ActiveByStudent(ctx, student.ID)
	}
	return s.issues.ByStudent(ctx, student.ID)
}
