package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/ajharbinger/forensic-omniscient/internal/errors"
	"github.com/ajharbinger/forensic-omniscient/internal/validation"
)

// respondOK wraps result in the standard envelope
func respondOK(c *gin.Context, status int, result interface{}) {
	c.JSON(status, gin.H{
		"result":    result,
		"timestamp": time.Now().UTC(),
	})
}

// respondError writes err with the status its code maps to. Internal
// causes are logged by the request logger, never sent to the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := apperrors.HTTPStatus(err)
	body := gin.H{"code": apperrors.Code(err)}
	if appErr, ok := apperrors.AsAppError(err); ok {
		body["error"] = appErr.Message
		if appErr.Details != "" {
			body["details"] = appErr.Details
		}
	} else {
		body["error"] = "internal error"
	}
	if status >= http.StatusInternalServerError {
		delete(body, "details")
	}
	c.AbortWithStatusJSON(status, body)
}

// bindJSON decodes the request body into dst and reports failures as
// INVALID_INPUT (malformed body) or VALIDATION_ERROR (rule violations).
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		respondError(c, apperrors.ValidationError("invalid request", err).
			WithDetails(strings.Join(validation.Describe(verrs), ", ")))
	case errors.As(err, &maxBytes):
		respondError(c, apperrors.ValidationError("request body too large", err))
	case errors.Is(err, io.EOF):
		respondError(c, apperrors.InvalidInput("request body is empty", err))
	default:
		respondError(c, apperrors.InvalidInput("invalid request format", err).WithDetails(err.Error()))
	}
	return false
}
