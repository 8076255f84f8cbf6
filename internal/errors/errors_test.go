package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := InvalidInput("bad body", nil)
	assert.Equal(t, "INVALID_INPUT: bad body", err.Error())

	cause := stderrors.New("unexpected EOF")
	err = InvalidInput("bad body", cause)
	assert.Equal(t, "INVALID_INPUT: bad body (caused by: unexpected EOF)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAppError_RecordsCaller(t *testing.T) {
	err := NotFound("user not found", nil)
	assert.True(t, strings.HasSuffix(err.File, "errors_test.go"), "file was %s", err.File)
	assert.NotZero(t, err.Line)

	err = NewAppError(ErrCodeConflict, "exists", nil)
	assert.True(t, strings.HasSuffix(err.File, "errors_test.go"), "file was %s", err.File)
}

func TestAppError_Context(t *testing.T) {
	err := DatabaseError("insert failed", nil).WithOperation("CreateUser").WithDetails("email=a@b.c")
	assert.Equal(t, "CreateUser", err.Operation)
	assert.Equal(t, "email=a@b.c", err.Details)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: nil, status: http.StatusOK, code: ""},
		{err: InvalidInput("x", nil), status: http.StatusBadRequest, code: ErrCodeInvalidInput},
		{err: ValidationError("x", nil), status: http.StatusUnprocessableEntity, code: ErrCodeValidationError},
		{err: Unauthorized("x", nil), status: http.StatusUnauthorized, code: ErrCodeUnauthorized},
		{err: Forbidden("x", nil), status: http.StatusForbidden, code: ErrCodeForbidden},
		{err: NotFound("x", nil), status: http.StatusNotFound, code: ErrCodeNotFound},
		{err: Conflict("x", nil), status: http.StatusConflict, code: ErrCodeConflict},
		{err: RateLimited("x"), status: http.StatusTooManyRequests, code: ErrCodeRateLimited},
		{err: DatabaseError("x", nil), status: http.StatusInternalServerError, code: ErrCodeDatabaseError},
		{err: ServiceError("x", nil), status: http.StatusServiceUnavailable, code: ErrCodeServiceError},
		{err: InternalError("x", nil), status: http.StatusInternalServerError, code: ErrCodeInternalError},
		{err: stderrors.New("plain"), status: http.StatusInternalServerError, code: ErrCodeInternalError},
		{err: NewAppError("TEAPOT", "x", nil), status: http.StatusInternalServerError, code: "TEAPOT"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "status for %v", tt.err)
		assert.Equal(t, tt.code, Code(tt.err), "code for %v", tt.err)
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := Conflict("email taken", nil)
	wrapped := fmt.Errorf("register: %w", inner)

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Equal(t, http.StatusConflict, HTTPStatus(wrapped))

	_, ok = AsAppError(stderrors.New("plain"))
	assert.False(t, ok)
}
