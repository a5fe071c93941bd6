package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cybersec-git-expert/catalog-governance/pkg/errors"
)

// Response is the error envelope for failed requests. Success payloads are
// shaped by the handler package.
type Response struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondWithError maps the error taxonomy onto HTTP statuses and sends the
// error response.
func RespondWithError(c *gin.Context, err error) {
	status := StatusForError(err)
	message := "internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		message = appErr.Message
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    status,
			Message: message,
		},
	})
}

// StatusForError returns the HTTP status for an engine error.
func StatusForError(err error) int {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrBadRequest:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrInvalidTransition:
		return http.StatusConflict
	case errors.ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
