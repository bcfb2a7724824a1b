package dat

import (
	"errors"
	"strconv"
)

// ErrNotFound is returned by Get when a key does not terminate at a leaf
// carrying values. It is an ordinary, non-exceptional outcome, not a bug.
var ErrNotFound = errors.New("dat: key not found")

// BuildError reports a failed build step: Set returns one when the Codec
// cannot encode a value, and ToDoubleArray wraps any base-search error in
// one. Running out of memory during compilation is not reported as a
// BuildError, since the Go runtime treats it as fatal, and ToDoubleArray
// does not check the finished arrays' invariants.
type BuildError struct {
	Op  string
	Err error
}

func (e *BuildError) Error() string {
	if e.Err == nil {
		return "dat: build failed: " + e.Op
	}
	return "dat: build failed: " + e.Op + ": " + e.Err.Error()
}

func (e *BuildError) Unwrap() error { return e.Err }

// FormatError is returned by Load when the binary stream is not a valid
// dump: bad magic, unsupported version, or an inconsistent length field.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return "dat: format error: " + e.Reason
	}
	return "dat: format error: " + e.Reason + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

// DecodeError is returned by Load when a value blob fails to decode into
// the expected type via the configured Codec.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return "dat: decode error at value index " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }
