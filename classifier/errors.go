package classifier

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by InferenceError through errors.Is.
var (
	ErrShapeMismatch = errors.New("input shape mismatch")
	ErrInvokerClosed = errors.New("classifier is closed")
	ErrUnderlying    = errors.New("model invocation failed")
)

// InferenceErrorKind tells why a prediction failed.
type InferenceErrorKind int

const (
	ShapeMismatch InferenceErrorKind = iota + 1
	InvokerClosed
	Underlying
)

func (k InferenceErrorKind) String() string {
	switch k {
	case ShapeMismatch:
		return "shape mismatch"
	case InvokerClosed:
		return "invoker closed"
	case Underlying:
		return "underlying"
	}
	return fmt.Sprintf("InferenceErrorKind(%d)", int(k))
}

// InferenceError is returned by Predict. Expected and Actual are set for
// ShapeMismatch, Err carries the model failure for Underlying.
type InferenceError struct {
	Kind     InferenceErrorKind
	Expected int
	Actual   int
	Err      error
}

func (e *InferenceError) Error() string {
	switch e.Kind {
	case ShapeMismatch:
		return fmt.Sprintf("model expects %d features, got %d", e.Expected, e.Actual)
	case InvokerClosed:
		if e.Err != nil {
			return e.Err.Error()
		}
		return ErrInvokerClosed.Error()
	case Underlying:
		return fmt.Sprintf("%v: %v", ErrUnderlying, e.Err)
	}
	return "inference error"
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind.
func (e *InferenceError) Is(target error) bool {
	switch target {
	case ErrShapeMismatch:
		return e.Kind == ShapeMismatch
	case ErrInvokerClosed:
		return e.Kind == InvokerClosed
	case ErrUnderlying:
		return e.Kind == Underlying
	}
	return false
}
