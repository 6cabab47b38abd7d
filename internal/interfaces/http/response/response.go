package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/pkg/logger"
)

// Error codes returned in the body of failed requests
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidation       = "VALIDATION_FAILED"
	CodeForbidden        = "AUTHORIZATION_DENIED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "ALREADY_EXISTS"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error onto its HTTP status and body
func Error(c *gin.Context, err error) {
	if err != nil {
		// surfaced by the request log
		_ = c.Error(err)
	}
	var (
		appErr   *domainerrors.AppError
		authErr  *domainerrors.AuthorizationError
		validErr *domainerrors.ValidationError
	)

	switch {
	case errors.As(err, &appErr):
		ErrorWithError(c, appErr.Code, codeForStatus(appErr.Code), appErr.Message)
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{
			"code":    CodeForbidden,
			"message": authErr.Error(),
			"action":  authErr.Action,
			"reason":  authErr.Reason,
		})
	case errors.As(err, &validErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":    CodeValidation,
			"message": validErr.Error(),
			"field":   validErr.Field,
		})
	case errors.Is(err, domainerrors.ErrInvalidInput):
		ErrorWithError(c, http.StatusUnprocessableEntity, CodeValidation, err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		ErrorWithError(c, http.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, domainerrors.ErrNotFound):
		ErrorWithError(c, http.StatusNotFound, CodeNotFound, "record not found, refresh and retry")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		ErrorWithError(c, http.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized), errors.Is(err, domainerrors.ErrInvalidCredentials):
		ErrorWithError(c, http.StatusUnauthorized, CodeUnauthorized, err.Error())
	case errors.Is(err, domainerrors.ErrStoreUnavailable):
		logger.Error(c.Request.Context(), "Store unavailable", zap.Error(err))
		ErrorWithError(c, http.StatusServiceUnavailable, CodeStoreUnavailable, "store unavailable, try again later")
	default:
		logger.Error(c.Request.Context(), "Unhandled error", zap.Error(err))
		ErrorWithError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
	}
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusServiceUnavailable:
		return CodeStoreUnavailable
	}
	return CodeInternalError
}
