package vector

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by DecodeError through errors.Is.
var (
	ErrWrongLength    = errors.New("wrong number of features")
	ErrMalformedValue = errors.New("malformed feature value")
)

// DecodeErrorKind tells which rule a line broke.
type DecodeErrorKind int

const (
	WrongLength DecodeErrorKind = iota + 1
	MalformedValue
)

func (k DecodeErrorKind) String() string {
	switch k {
	case WrongLength:
		return "wrong length"
	case MalformedValue:
		return "malformed value"
	}
	return fmt.Sprintf("DecodeErrorKind(%d)", int(k))
}

// DecodeError is returned by DecodeLine. Expected and Actual are set for
// WrongLength, Index and Token for MalformedValue.
type DecodeError struct {
	Kind     DecodeErrorKind
	Expected int
	Actual   int
	Index    int
	Token    string
	Err      error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case WrongLength:
		return fmt.Sprintf("must contain %d features, got %d", e.Expected, e.Actual)
	case MalformedValue:
		return fmt.Sprintf("feature %d: %q is not a number", e.Index, e.Token)
	}
	return "decode error"
}

// Unwrap exposes the parse error of a malformed value.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrWrongLength:
		return e.Kind == WrongLength
	case ErrMalformedValue:
		return e.Kind == MalformedValue
	}
	return false
}

// DocumentError ends a document scan that could not be read as XML.
type DocumentError struct {
	Offset int64
	Err    error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document at byte %d: %v", e.Offset, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
