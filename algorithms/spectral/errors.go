package spectral

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers empty signals, mismatched lengths and
	// misconfigured output channels
	ErrInvalidInput = errors.New("invalid transform input")
	// ErrAllocation is returned when the working length exceeds the
	// configured limit
	ErrAllocation = errors.New("transform allocation failed")
	// ErrBufferShape is returned when an output buffer holds the wrong
	// number of signals
	ErrBufferShape = errors.New("transform buffer has wrong number of signals")
)

// TransformError reports which operation failed and why
type TransformError struct {
	Op     string
	Kind   error
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, format string, args ...any) *TransformError {
	return &TransformError{Op: op, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
