// Package response writes the JSON bodies of the admin API. Success bodies
// are the resource itself; failures are {"message": ...} with optional
// "details" for validation problems.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
)

type ErrorBody struct {
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound, apperr.KindAuthNotFound:
		return http.StatusNotFound
	case apperr.KindConflict, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthInvalidPassword, apperr.KindAuthInvalidToken, apperr.KindAuthExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func JSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// Error writes err with the status of its kind. Unclassified errors become a
// generic 500 so driver detail never reaches the client.
func Error(c *gin.Context, err error) {
	c.JSON(StatusFor(apperr.KindOf(err)), ErrorBody{
		Message:   apperr.Message(err),
		RequestID: c.GetString("request_id"),
	})
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusFor(apperr.KindOf(err)), ErrorBody{
		Message:   apperr.Message(err),
		RequestID: c.GetString("request_id"),
	})
}

func Invalid(c *gin.Context, msg string, details map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Message:   msg,
		Details:   details,
		RequestID: c.GetString("request_id"),
	})
}
