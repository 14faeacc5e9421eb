package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// statusByCode maps business codes to HTTP statuses. Codes not listed
// are treated as bad requests.
var statusByCode = map[string]int{
	"client_not_found": http.StatusNotFound,
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError writes err as a business error when it is one, and as an
// opaque internal error otherwise. fallback is the code used for the
// internal case.
func FromError(c *gin.Context, err error, fallback string) {
	if code, ok := BusinessCode(err); ok {
		status, known := statusByCode[code]
		if !known {
			status = http.StatusBadRequest
		}
		Write(c, status, code, code)
		return
	}

	_ = c.Error(err)
	Internal(c, fallback, "internal error")
}
