package client

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/waitlistadmin/internal/netx"
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s (HTTP %d)", e.Err, e.Message, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// newStatusError consumes resp.Body.
func newStatusError(resp *http.Response, sentinel error) *StatusError {
	return &StatusError{
		StatusCode: resp.StatusCode,
		Message:    netx.ErrorMessage(resp),
		Err:        sentinel,
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
