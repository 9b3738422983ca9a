package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// Book errors
var (
	ErrBookNotFound       = errors.New("book not found")
	ErrISBNConflict       = errors.New("ISBN already belongs to a different book")
	ErrBookHasActiveLoans = errors.New("book has outstanding loans and cannot be deleted")
	ErrNoCopiesAvailable  = errors.New("no copies available to issue")
	ErrCopiesNegative     = errors.New("copy count would become negative")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student with given data already exists")
)

// Issuance errors
var (
	ErrIssueNotFound       = errors.New("issue record not found")
	ErrDuplicateLoan       = errors.New("student already holds an unreturned copy of this book")
	ErrBookAlreadyReturned = errors.New("book has already been returned")
)

// Librarian errors
var (
	ErrLibrarianNotFound = errors.New("librarian not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a not-found error carrying the identifier that missed
func NewNotFoundError(base error, identifier string) error {
	return &CustomError{
		Err:     base,
		Message: base.Error() + " for identifier " + identifier,
		Details: map[string]interface{}{"identifier": identifier},
	}
}

// NewDuplicateStudentError reports every uniqueness constraint the candidate
// violated, not just the first one found.
func NewDuplicateStudentError(fields map[string]string) error {
	msg := "student with the following duplicate fields already exists:"
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	for i, field := range names {
		if i > 0 {
			msg += ","
		}
		msg += " " + field + ": " + fields[field]
	}
	return &CustomError{
		Err:     ErrStudentAlreadyExists,
		Message: msg,
		Details: map[string]interface{}{"fields": names},
	}
}

// DuplicateFields extracts the violated field names from a duplicate-student
// error, or nil if err is not one.
func DuplicateFields(err error) []string {
	var custom *CustomError
	if !errors.As(err, &custom) || !errors.Is(custom.Err, ErrStudentAlreadyExists) {
		return nil
	}
	fields, _ := custom.Details["fields"].([]string)
	return fields
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
