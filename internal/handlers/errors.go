package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/dto"
	"github.com/SscSPs/cod_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeMissingFields         = "MISSING_FIELDS"
	CodeValidation            = "VALIDATION_ERROR"
	CodeInvalidAmount         = "INVALID_AMOUNT"
	CodeInvalidCollectionSet  = "INVALID_COLLECTION_SET"
	CodeNoEligibleCollections = "NO_ELIGIBLE_COLLECTIONS"
	CodeNotFound              = "NOT_FOUND"
	CodeConflict              = "CONFLICT"
	CodeDuplicate             = "DUPLICATE"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeInternal              = "INTERNAL"
)

// classifyError maps an application error to its HTTP status and code.
func classifyError(err error) (int, string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrInvalidCollectionSet):
		return http.StatusBadRequest, CodeInvalidCollectionSet
	case errors.Is(err, apperrors.ErrNoEligibleCollections):
		return http.StatusBadRequest, CodeNoEligibleCollections
	case errors.Is(err, apperrors.ErrMissingFields):
		return http.StatusBadRequest, CodeMissingFields
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return http.StatusBadRequest, CodeInvalidAmount
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, CodeDuplicate
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		return appErr.Code, CodeValidation
	}
	return http.StatusInternalServerError, CodeInternal
}

// respondError writes the error body. Server-side failures are logged in full and
// answered with failMsg only.
func respondError(c *gin.Context, err error, failMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, code := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: failMsg, Code: code})
		return
	}

	logger.Warn(failMsg, slog.String("error", err.Error()), slog.String("code", code))
	body := dto.ErrorResponse{Error: err.Error(), Code: code}
	var setErr *apperrors.InvalidCollectionSetError
	if errors.As(err, &setErr) {
		n := setErr.Offending()
		body.OffendingCount = &n
	}
	c.JSON(status, body)
}

// respondBindError answers a request whose body or query could not be bound.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: CodeValidation})
}

// actorFromContext returns the authenticated operator, answering 401 when there is none.
func actorFromContext(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: CodeUnauthorized})
		return "", false
	}
	return userID, true
}
