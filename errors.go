package mdfront

import (
	"errors"
	"fmt"
)

// MalformedHeaderError reports a front-fence header that failed either the
// fence heuristic or the metadata codec's parse. The codec's own error type
// never crosses the package boundary; Cause preserves it for diagnostics.
type MalformedHeaderError struct {
	Reason string
	Cause  error
}

func (e *MalformedHeaderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed header: %s: %v", e.Reason, e.Cause)
	}
	return "malformed header: " + e.Reason
}

func (e *MalformedHeaderError) Unwrap() error { return e.Cause }

// CompileError reports a failure from a transform stage or renderer after
// the header was successfully separated. Partial output is never returned
// alongside it.
type CompileError struct {
	Reason string
	Cause  error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compile failed: %s: %v", e.Reason, e.Cause)
	}
	return "compile failed: " + e.Reason
}

func (e *CompileError) Unwrap() error { return e.Cause }

// IsMalformedHeader reports whether err is (or wraps) a MalformedHeaderError.
func IsMalformedHeader(err error) bool {
	var target *MalformedHeaderError
	return errors.As(err, &target)
}

// IsCompileError reports whether err is (or wraps) a CompileError.
func IsCompileError(err error) bool {
	var target *CompileError
	return errors.As(err, &target)
}
