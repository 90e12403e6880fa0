package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/madarij/center/internal/pkg/logger"
)

// HandleAPIError maps a service error onto its HTTP status and error code.
// Messages of known errors are passed to the client; anything else is logged
// and reported as an internal error.
func HandleAPIError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, dto.ErrorCodeInternalServer

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, code = http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrInvalidState):
		status, code = http.StatusConflict, dto.ErrorCodeInvalidState
	case errors.Is(err, apperrors.ErrConflict):
		status, code = http.StatusConflict, dto.ErrorCodeConflict
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, code = http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrBadRequest):
		status, code = http.StatusBadRequest, dto.ErrorCodeBadRequest
	case errors.Is(err, apperrors.ErrAccountDisabled):
		status, code = http.StatusForbidden, dto.ErrorCodeAccountDisabled
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, code = http.StatusForbidden, dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired):
		status, code = http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		status, code = http.StatusUnauthorized, dto.ErrorCodeInvalidToken
	}

	message := "Internal server error"
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
	} else {
		message = apperrors.Message(err)
	}

	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleBindError reports a request body or query that failed binding
func HandleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
