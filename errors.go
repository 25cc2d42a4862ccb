package streamable

import (
	"errors"
	"fmt"

	"github.com/andriiyaremenko/streamable/internal"
)

var (
	_ error = new(Error[any])
	_ error = new(UsageError)
)

var (
	// Stream was already driven by a terminal operation.
	ErrConsumed = errors.New("stream already consumed")
	// Stream handle was superseded by a later stage append.
	ErrStaleHandle = errors.New("stream handle is stale")
	// Stream is the zero value, not built by a constructor.
	ErrNilStream = errors.New("stream is not initialized")
	// Operation was given an invalid size, count or offset.
	ErrInvalidArgument = errors.New("invalid argument")
	// Attempt panicked.
	ErrRecovered = errors.New("recovered from panic")
	// Failure was created from nil error.
	ErrNilFailure = errors.New("failure without error")
)

// UsageError reports misuse of a Stream.
// Such errors are raised with panic: evaluation never continues past them.
type UsageError struct {
	Op  string
	Err error
}

func newUsageError(op string, err error) *UsageError {
	return &UsageError{Op: op, Err: err}
}

func invalidArgument(op, format string, args ...any) *UsageError {
	return newUsageError(op, fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...)))
}

// Implementation of error.
func (err *UsageError) Error() string {
	return fmt.Sprintf("streamable: %s: %s", err.Op, err.Err)
}

// Returns underlying error.
func (err *UsageError) Unwrap() error {
	return err.Err
}

// Returns new *Error[T] caused by processing payload.
func NewError[T any](err error, payload T) *Error[T] {
	return &Error[T]{cause: err, Payload: payload}
}

// Error wraps failure of an Attempt together with the input it failed on.
type Error[T any] struct {
	cause   error
	Payload T
}

// Implementation of error.
func (err *Error[T]) Error() string {
	return fmt.Sprintf("error processing %s: %s", internal.TypeName[T](), err.cause)
}

// Returns underlying error.
func (err *Error[T]) Unwrap() error {
	return err.cause
}
