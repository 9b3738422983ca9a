package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eren/shelfmate/internal/app/models/dto"
	"github.com/eren/shelfmate/internal/pkg/apperrors"
)

// HandleAPIError maps domain errors to HTTP responses in one place. Domain
// errors surface unchanged to the client; anything unrecognized is a 500.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	var details interface{}
	message := err.Error()
	if errors.As(err, &custom) {
		details = custom.Details
	}

	switch {
	case apperrors.Is(err, apperrors.ErrBookNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrIssueNotFound,
		apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message).WithDetails(details)))

	case errors.Is(err, apperrors.ErrISBNConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message).WithField("isbn")))

	case errors.Is(err, apperrors.ErrStudentAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message).WithDetails(details)))

	case errors.Is(err, apperrors.ErrBookHasActiveLoans):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message)))

	case errors.Is(err, apperrors.ErrDuplicateLoan):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDuplicateLoan, message)))

	case errors.Is(err, apperrors.ErrNoCopiesAvailable):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeNoCopiesAvailable, message)))

	case errors.Is(err, apperrors.ErrBookAlreadyReturned):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeAlreadyReturned, message)))

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))

	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	case errors.Is(err, apperrors.ErrCopiesNegative):
		// Reachable only if the store's atomicity guarantee was violated.
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, message).WithSeverity(dto.ErrorSeverityCritical)))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
