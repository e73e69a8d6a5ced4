package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is a request failure that maps to a specific HTTP status. Anything
// that is not an *Error is treated as an internal failure and surfaced as a
// generic 500 without leaking detail.
type Error struct {
	Status        int      `json:"-"`
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// ValidationFields reports which required fields were absent from the input.
func ValidationFields(message string, missing []string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, MissingFields: missing}
}

func Duplicate(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func Auth(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Write reports err on the gin context. Classified errors keep their status
// and message; everything else becomes a 500 with a generic body.
func Write(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, appErr)
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
