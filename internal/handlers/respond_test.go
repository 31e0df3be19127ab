package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var res ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestRespondError_BusinessRuleViolation(t *testing.T) {
	c, w := newTestContext(t)

	err := apperrors.NewBusinessRuleError(apperrors.RuleUnbalancedEntry, "total debits must equal total credits").
		WithDetail("totalDebits", "100").
		WithDetail("totalCredits", "90")
	respondError(c, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	res := decodeErrorResponse(t, w)
	assert.Equal(t, "BUSINESS_RULE_VIOLATION", res.Error.Code)
	assert.Equal(t, apperrors.RuleUnbalancedEntry, res.Error.Rule)
	assert.Equal(t, "total debits must equal total credits", res.Error.Message)
	assert.Equal(t, "100", res.Error.Details["totalDebits"])
	assert.Equal(t, "90", res.Error.Details["totalCredits"])
}

func TestRespondError_AppErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apperrors.NewNotFoundError("group missing not found"), http.StatusNotFound, "NOT_FOUND", "group missing not found"},
		{"conflict", apperrors.NewConflictError("email already registered"), http.StatusConflict, "CONFLICT", "email already registered"},
		{"validation", apperrors.NewValidationFailedError("month is required"), http.StatusBadRequest, "VALIDATION_ERROR", "month is required"},
		{"forbidden", apperrors.NewForbiddenError("this action requires the ADMIN role"), http.StatusForbidden, "FORBIDDEN", "this action requires the ADMIN role"},
		{"unauthorized", apperrors.NewUnauthorizedError("invalid token"), http.StatusUnauthorized, "UNAUTHORIZED", "invalid token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext(t)
			respondError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			res := decodeErrorResponse(t, w)
			assert.Equal(t, tc.code, res.Error.Code)
			assert.Equal(t, tc.message, res.Error.Message)
			assert.Empty(t, res.Error.Rule)
		})
	}
}

func TestRespondError_SentinelStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict, "CONFLICT"},
		{"validation", apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext(t)
			respondError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			res := decodeErrorResponse(t, w)
			assert.Equal(t, tc.code, res.Error.Code)
			assert.Equal(t, tc.err.Error(), res.Error.Message)
		})
	}
}

func TestRespondError_WrappedSentinel(t *testing.T) {
	c, w := newTestContext(t)

	respondError(c, fmt.Errorf("period period-1: %w", apperrors.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	res := decodeErrorResponse(t, w)
	assert.Equal(t, "NOT_FOUND", res.Error.Code)
}

func TestRespondError_InternalMessageHidden(t *testing.T) {
	c, w := newTestContext(t)

	respondError(c, apperrors.NewAppError(http.StatusInternalServerError, "pgx: connection refused", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	res := decodeErrorResponse(t, w)
	assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
	assert.Equal(t, "an unexpected error occurred", res.Error.Message)
}

func TestRespondError_UnknownErrorBecomes500(t *testing.T) {
	c, w := newTestContext(t)

	respondError(c, errors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	res := decodeErrorResponse(t, w)
	assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
	assert.Equal(t, "an unexpected error occurred", res.Error.Message)
	assert.NotContains(t, res.Error.Message, "driver")
}

func TestRespondList_PaginationEnvelope(t *testing.T) {
	c, w := newTestContext(t)

	respondList(c, []string{"a", "b"}, 2, 2, 5)

	assert.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data       []string `json:"data"`
		Pagination struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			TotalItems int `json:"totalItems"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"a", "b"}, res.Data)
	assert.Equal(t, 2, res.Pagination.Page)
	assert.Equal(t, 5, res.Pagination.TotalItems)
	assert.Equal(t, 3, res.Pagination.TotalPages)
}

func TestRequireUserID_MissingIdentity(t *testing.T) {
	c, w := newTestContext(t)

	_, ok := requireUserID(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	res := decodeErrorResponse(t, w)
	assert.Equal(t, "UNAUTHORIZED", res.Error.Code)
}
