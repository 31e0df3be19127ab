package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/middleware"
	"github.com/contabilis/group_ledger_app/internal/utils/pagination"
)

// ErrorBody is the inner payload of every error response.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Rule    string         `json:"rule,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the error envelope returned by all handlers.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// DataResponse wraps a single resource.
type DataResponse struct {
	Data any `json:"data"`
}

// MessageResponse wraps a resource produced by a write, with a human message.
type MessageResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// ListResponse wraps a page of resources with pagination metadata.
type ListResponse struct {
	Data       any                   `json:"data"`
	Pagination pagination.Pagination `json:"pagination"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, DataResponse{Data: data})
}

func respondMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, MessageResponse{Data: data, Message: message})
}

func respondList(c *gin.Context, data any, page, limit, totalItems int) {
	c.JSON(http.StatusOK, ListResponse{Data: data, Pagination: pagination.New(page, limit, totalItems)})
}

func errorCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "BUSINESS_RULE_VIOLATION"
	default:
		return "INTERNAL_ERROR"
	}
}

// statusForSentinel maps the bare apperrors sentinels, which repositories
// return without wrapping them in an AppError, onto their HTTP status.
func statusForSentinel(err error) (int, bool) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, true
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, true
	}
	return 0, false
}

// respondError translates service errors into the error envelope. Unknown
// errors are logged and hidden behind a generic 500 message.
func respondError(c *gin.Context, err error) {
	var ruleErr *apperrors.BusinessRuleError
	if errors.As(err, &ruleErr) {
		c.JSON(ruleErr.StatusCode(), ErrorResponse{Error: ErrorBody{
			Code:    "BUSINESS_RULE_VIOLATION",
			Message: ruleErr.Message,
			Rule:    ruleErr.Rule,
			Details: ruleErr.Details,
		}})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Request failed", slog.String("error", appErr.Error()))
			c.JSON(appErr.Code, ErrorResponse{Error: ErrorBody{
				Code:    errorCodeForStatus(appErr.Code),
				Message: "an unexpected error occurred",
			}})
			return
		}
		c.JSON(appErr.Code, ErrorResponse{Error: ErrorBody{
			Code:    errorCodeForStatus(appErr.Code),
			Message: appErr.Message,
		}})
		return
	}

	if status, ok := statusForSentinel(err); ok {
		c.JSON(status, ErrorResponse{Error: ErrorBody{
			Code:    errorCodeForStatus(status),
			Message: err.Error(),
		}})
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Error("Unhandled error in handler", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
		Code:    "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	}})
}

// respondBindingError reports a request binding or validation failure.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    "VALIDATION_ERROR",
		Message: "invalid request: " + err.Error(),
	}})
}

// requireUserID extracts the authenticated user from the request context,
// replying 401 when the middleware did not set one.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrorBody{
			Code:    "UNAUTHORIZED",
			Message: "user identity not found in request context",
		}})
		return "", false
	}
	return userID, true
}
