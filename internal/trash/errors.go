package trash

import (
	"errors"
	"fmt"
	"strings"

	"github.com/babarot/putback/internal/pathenc"
)

// Common errors that can be returned by the deletion strategies
var (
	// ErrService is matched by every *ServiceError
	ErrService = errors.New("trash service failed")

	// ErrProcess is matched by every *ProcessError
	ErrProcess = errors.New("automation script failed")

	// ErrMove is matched by every *MoveError
	ErrMove = errors.New("direct move failed")

	// ErrUnknownMethod is returned when a Context carries a method outside the enumeration
	ErrUnknownMethod = errors.New("unknown deletion method")

	// ErrNoService is returned when MethodServiceCall is used without a Service
	ErrNoService = errors.New("no trash service configured")

	// ErrNoTrashDir is returned when MethodDirectMove is used without a trash directory
	ErrNoTrashDir = errors.New("no trash directory configured")

	// ErrEncoding is matched by every EncodingError
	ErrEncoding = pathenc.ErrMalformedToken

	// ErrConversion is matched by every ConversionError
	ErrConversion = pathenc.ErrConversion
)

// EncodingError reports a malformed escape token met while decoding a path.
type EncodingError = pathenc.MalformedTokenError

// ConversionError reports a path that cannot be turned into the text form a
// strategy requires.
type ConversionError = pathenc.ConversionError

// ServiceError is returned when the native trash service rejects a path.
// Paths before Index were relocated and stay relocated; paths after it were
// not attempted.
type ServiceError struct {
	Path  pathenc.Bytes
	Index int
	Cause string
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("while deleting %q, the trash service failed: %s", e.Path.String(), e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// ProcessError is returned when the automation script could not be started
// or did not exit with status 0. The whole batch is reported as failed even
// though Finder may have moved some of the files before failing.
type ProcessError struct {
	// Code is the exit status. It is only meaningful when Exited is true.
	Code int

	// Exited is false when the process was killed by a signal or never ran.
	Exited bool

	Stderr string
	Err    error
}

// ExitCode returns the exit status and whether there was one.
func (e *ProcessError) ExitCode() (int, bool) {
	return e.Code, e.Exited
}

func (e *ProcessError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	switch {
	case e.Err != nil:
		return fmt.Sprintf("the AppleScript could not be run: %v", e.Err)
	case e.Exited:
		return fmt.Sprintf("the AppleScript exited with error (status %d). stderr: %s", e.Code, stderr)
	default:
		return fmt.Sprintf("the AppleScript was terminated without an exit status. stderr: %s", stderr)
	}
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcess
}

// MoveError is returned when DirectMove could not relocate a path or record
// its origin.
type MoveError struct {
	Op    string
	Path  pathenc.Bytes
	Dest  pathenc.Bytes
	Index int
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %q to %q: %v", e.Op, e.Path.String(), e.Dest.String(), e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func (e *MoveError) Is(target error) bool {
	return target == ErrMove
}

// IsService returns true if the error is ErrService
func IsService(err error) bool {
	return errors.Is(err, ErrService)
}

// IsProcess returns true if the error is ErrProcess
func IsProcess(err error) bool {
	return errors.Is(err, ErrProcess)
}

// IsMove returns true if the error is ErrMove
func IsMove(err error) bool {
	return errors.Is(err, ErrMove)
}

// IsEncoding returns true if the error is ErrEncoding
func IsEncoding(err error) bool {
	return errors.Is(err, ErrEncoding)
}

// IsConversion returns true if the error is ErrConversion
func IsConversion(err error) bool {
	return errors.Is(err, ErrConversion)
}
