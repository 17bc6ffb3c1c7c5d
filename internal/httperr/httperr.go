package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Failed  []string `json:"failed_steps,omitempty"`
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Respond maps the error taxonomy to a status and body. Partial writes are
// checked first since they wrap the causes of their failed steps.
func Respond(c *gin.Context, err error) {
	var (
		ve *ValidationError
		nf *NotFoundError
		pw *PartialWriteError
		re *RemoteError
		be BusinessError
	)

	switch {
	case errors.As(err, &pw):
		c.JSON(http.StatusMultiStatus, HTTPError{
			Code:    "partial_write",
			Message: pw.Error(),
			Failed:  pw.Failed,
		})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    "validation_failed",
			Message: ve.Error(),
			Field:   ve.Field,
		})
	case errors.As(err, &nf):
		Write(c, http.StatusNotFound, nf.Entity+"_not_found", nf.Error())
	case errors.As(err, &be):
		Write(c, businessStatus(be.Code), be.Code, be.Code)
	case errors.As(err, &re):
		Write(c, http.StatusBadGateway, "remote_operation_failed", re.Operation)
	default:
		Internal(c, "internal_error", "Unexpected error.")
	}
}
