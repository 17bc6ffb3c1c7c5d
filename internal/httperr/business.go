package httperr

import (
	"errors"
	"net/http"
)

// Business codes shared by use cases and view-models.
const (
	CodeConflict       = "conflict"
	CodeForbidden      = "forbidden"
	CodeBusy           = "busy"
	CodeLoadInProgress = "load_in_progress"
	CodeInvalidState   = "invalid_state"
)

// BusinessError is a rule rejection identified only by its code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	return errors.As(err, &be) && be.Code == code
}

// businessStatus is the HTTP status for a business code.
func businessStatus(code string) int {
	switch code {
	case CodeConflict, CodeLoadInProgress, CodeBusy:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
