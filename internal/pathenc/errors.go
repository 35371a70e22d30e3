package pathenc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken is matched by every *MalformedTokenError.
	ErrMalformedToken = errors.New("malformed escape token")

	// ErrConversion is matched by every *ConversionError.
	ErrConversion = errors.New("path conversion failed")
)

// MalformedTokenError is returned by Decode when a literal holds a marker
// that does not start a complete %HH token. Well-formed input never produces
// it, so seeing one means the literal was corrupted or hand-built.
type MalformedTokenError struct {
	Literal Literal
	Offset  int
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", ErrMalformedToken, e.Offset, string(e.Literal))
}

func (e *MalformedTokenError) Is(target error) bool {
	return target == ErrMalformedToken
}

// ConversionError reports a path that cannot be represented in the form a
// consumer requires.
type ConversionError struct {
	Path   Bytes
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert path %q: %s", string(Encode(e.Path)), e.Reason)
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// IsMalformedToken returns true if the error is ErrMalformedToken
func IsMalformedToken(err error) bool {
	return errors.Is(err, ErrMalformedToken)
}

// IsConversion returns true if the error is ErrConversion
func IsConversion(err error) bool {
	return errors.Is(err, ErrConversion)
}
