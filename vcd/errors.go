package vcd

import (
	"errors"
	"fmt"
)

// InvalidIDError is returned when an identifier token contains a byte
// outside the printable alphabet, is empty, or overflows an IDCode.
type InvalidIDError struct {
	Token string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("vcd: invalid identifier %q", e.Token)
}

// MalformedHeaderError is returned on a structural violation in the
// declarations section.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("vcd: malformed header: %s", e.Reason)
}

// UnknownIDError is returned when a value change references an
// identifier that was never declared in the header.
type UnknownIDError struct {
	ID IDCode
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("vcd: change for undeclared identifier %s", e.ID)
}

// WidthMismatchError is returned when a vector change carries a
// different number of bits than the variable declares.
type WidthMismatchError struct {
	ID   IDCode
	Got  int
	Want int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("vcd: vector change for %s has %d bits, declared width is %d", e.ID, e.Got, e.Want)
}

// FastPathViolationError reports that the fast scanner's formatting
// assumptions were broken. It is the only recoverable error kind: the
// offending line is left unconsumed and can be re-scanned with the
// fallback scanner.
type FastPathViolationError struct {
	Reason string
}

func (e *FastPathViolationError) Error() string {
	return fmt.Sprintf("vcd: fast path violation: %s", e.Reason)
}

// UnexpectedEOFError is returned when the stream ends mid-command or
// mid-token.
type UnexpectedEOFError struct {
	Context string
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("vcd: unexpected end of stream in %s", e.Context)
}

// SyntaxError is returned on a non-recoverable parse failure in the
// value-change section that no more specific kind covers, such as a
// non-numeric timestamp or a decreasing timestamp under strict mode.
type SyntaxError struct {
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("vcd: %s", e.Reason)
}

// IsFastPathViolation reports whether err is a FastPathViolationError.
func IsFastPathViolation(err error) bool {
	var v *FastPathViolationError
	return errors.As(err, &v)
}
