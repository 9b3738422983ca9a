package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eren/shelfmate/internal/app/models"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
	"github.com/eren/shelfmate/internal/pkg/dberrors"
)

// Unique constraint names from the students migration
const (
	constraintStudentRoll  = "uq_students_roll_number"
	constraintStudentPhone = "uq_students_phone"
	constraintStudentEmail = "uq_students_email"
)

// StudentRepository handles database operations for borrowers
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create registers a student. All violated uniqueness constraints are
// reported together; the unique indexes remain the authority when two
// registrations race past the pre-check.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	var rollTaken, phoneTaken, emailTaken bool
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(bool_or(lower(roll_number) = lower($1)), false),
			COALESCE(bool_or(phone = $2), false),
			COALESCE(bool_or(lower(email) = lower($3)), false)
		FROM students
		WHERE lower(roll_number) = lower($1) OR phone = $2 OR lower(email) = lower($3)
	`, student.RollNumber, student.Phone, student.Email).Scan(&rollTaken, &phoneTaken, &emailTaken)
	if err != nil {
		return fmt.Errorf("error checking student uniqueness: %w", err)
	}

	if rollTaken || phoneTaken || emailTaken {
		fields := map[string]string{}
		if rollTaken {
			fields["roll number"] = student.RollNumber
		}
		if phoneTaken {
			fields["phone"] = student.Phone
		}
		if emailTaken {
			fields["email"] = student.Email
		}
		return apperrors.NewDuplicateStudentError(fields)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO students (name, roll_number, department, semester, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, student.Name, student.RollNumber, student.Department,
		student.Semester, student.Phone, student.Email).Scan(&student.ID)

	if err != nil {
		// A concurrent registration won the race; map the constraint that
		// actually fired.
		switch {
		case dberrors.IsDuplicateConstraintError(err, constraintStudentRoll):
			return apperrors.NewDuplicateStudentError(map[string]string{"roll number": student.RollNumber})
		case dberrors.IsDuplicateConstraintError(err, constraintStudentPhone):
			return apperrors.NewDuplicateStudentError(map[string]string{"phone": student.Phone})
		case dberrors.IsDuplicateConstraintError(err, constraintStudentEmail):
			return apperrors.NewDuplicateStudentError(map[string]string{"email": student.Email})
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `
		SELECT id, name, roll_number, department, semester, phone, email
		FROM students
		WHERE id = $1
	`, id)
}

// GetByIdentifier resolves a student by name, roll number (both
// case-insensitive) or phone (exact). With ambiguous matches the lowest id
// wins; callers must be aware of that.
func (r *StudentRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Student, error) {
	student, err := r.getOne(ctx, `
		SELECT id, name, roll_number, department, semester, phone, email
		FROM students
		WHERE lower(name) = lower($1)
		   OR lower(roll_number) = lower($1)
		   OR phone = $1
		ORDER BY id
		LIMIT 1
	`, identifier)

	if errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, identifier)
	}
	return student, err
}

func (r *StudentRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.Name,
		&student.RollNumber,
		&student.Department,
		&student.Semester,
		&student.Phone,
		&student.Email,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// List retrieves students matching the filter along with the unpaged total
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter) ([]*models.Student, int64, error) {
	where := ` WHERE ($1 = '' OR department ILIKE '%' || $1 || '%')
		AND ($2 = 0 OR semester = $2)
		AND ($3 = '' OR name ILIKE '%' || $3 || '%'
			OR roll_number ILIKE '%' || $3 || '%'
			OR phone ILIKE '%' || $3 || '%')`

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`+where,
		filter.Department, filter.Semester, filter.Search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, roll_number, department, semester, phone, email
		FROM students`+where+`
		ORDER BY id
		OFFSET $4 LIMIT $5
	`, filter.Department, filter.Semester, filter.Search, filter.Offset, filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.RollNumber,
			&student.Department,
			&student.Semester,
			&student.Phone,
			&student.Email,
		); err != nil {
			return nil, 0, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}
