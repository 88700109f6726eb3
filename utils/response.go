package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes surfaced to clients. Validation failures carry one of these
// with a 400-class status; store failures are always masked as
// CodeDatabaseError with the cause logged server-side only.
const (
	CodeEmptyNote       = "empty_note"
	CodeInvalidID       = "invalid_id"
	CodeNotFound        = "not_found"
	CodeTooManyRequests = "too_many_requests"
	CodeDatabaseError   = "database_error"
	CodeInvalidBody     = "invalid_body"
)

// CodeTooLong builds the length-cap error code for the configured cap,
// e.g. "too_long_max_2000".
func CodeTooLong(max int) string {
	return fmt.Sprintf("too_long_max_%d", max)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func Error(c *gin.Context, status int, code string) {
	c.JSON(status, ErrorResponse{Error: code})
}

func BadRequest(c *gin.Context, code string) {
	Error(c, http.StatusBadRequest, code)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, CodeNotFound)
}

func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeTooManyRequests)
}

func DatabaseError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeDatabaseError)
}
