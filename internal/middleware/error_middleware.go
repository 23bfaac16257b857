package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		handleKnownError(c, err, customErr.Message)
		return
	}
	handleKnownError(c, err, "")
}

func handleKnownError(c *gin.Context, err error, message string) {
	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
	}

	switch {
	// approval chain conflicts
	case errors.Is(err, apperrors.ErrOutOfTurn):
		respond(409, dto.ErrorCodeOutOfTurn, "It is not this role's turn to decide")
	case errors.Is(err, apperrors.ErrAlreadyFinalized):
		respond(409, dto.ErrorCodeAlreadyFinalized, "This request has already been decided")

	// ownership and permissions
	case errors.Is(err, apperrors.ErrNotOwner):
		respond(403, dto.ErrorCodeForbidden, "Resource belongs to another student")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(403, dto.ErrorCodeForbidden, "Permission denied")

	// request validation
	case errors.Is(err, apperrors.ErrDateOutOfRange):
		respond(400, dto.ErrorCodeDateOutOfRange, "Dates must fall within the internship period")
	case errors.Is(err, apperrors.ErrInternshipNotApproved):
		respond(400, dto.ErrorCodeNotApproved, "Internship is not approved yet")
	case errors.Is(err, apperrors.ErrCertificateTooEarly):
		respond(400, dto.ErrorCodeNotApproved, "Certificate can only be attached to an approved internship")
	case errors.Is(err, apperrors.ErrInvalidRegisterNumber):
		respond(400, dto.ErrorCodeValidationFailed, "Invalid register number format")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(400, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(400, dto.ErrorCodeValidationFailed, "Invalid request")

	// lookups
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrInternshipNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, "Internship not found")
	case errors.Is(err, apperrors.ErrODNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, "OD request not found")
	case errors.Is(err, apperrors.ErrAnnouncementNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, "Announcement not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, "Resource not found")

	// uniqueness conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrRegisterNumberExists):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Register number already registered")

	// authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(401, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(401, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(401, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(401, dto.ErrorCodeInvalidToken, "Token not found")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(401, dto.ErrorCodeInvalidToken, "Invalid token")

	default:
		respond(500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
