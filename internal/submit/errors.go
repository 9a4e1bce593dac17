package submit

import (
	"errors"
	"fmt"
)

// ErrTransport indicates the request never produced an HTTP response:
// connection refused, DNS failure, timeout.
type ErrTransport struct {
	Err error
}

func (e *ErrTransport) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submission transport failed: %v", e.Err)
	}
	return "submission transport failed"
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrStatus indicates the endpoint answered with a non-2xx status.
type ErrStatus struct {
	Code int
	Body []byte
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("submission endpoint returned status %d", e.Code)
}

// ErrInvalidResponse indicates a 2xx response whose body is not a
// well-formed result.
type ErrInvalidResponse struct {
	Body []byte
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid submission response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// IsTransportFailure reports whether err belongs to the transport class:
// anything the client returned instead of a Result.
func IsTransportFailure(err error) bool {
	var te *ErrTransport
	var se *ErrStatus
	var ie *ErrInvalidResponse
	return errors.As(err, &te) || errors.As(err, &se) || errors.As(err, &ie)
}
