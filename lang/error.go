package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Predefined errors (sentinel values).
//
// Every error returned by this package derives from one of these and can be
// matched with [errors.Is] regardless of any attributes or causes attached.
var (
	// Parse errors.
	ErrExpectedDigits        = NewError("expected digits")
	ErrExpectedSpace         = NewError("expected space")
	ErrIdentifierExpected    = NewError("identifier expected")
	ErrExpectedLiteral       = NewError("expected literal")
	ErrInputNotFullyConsumed = NewError("input was not fully consumed")
	ErrNumberRange           = NewError("number out of range")

	// Evaluation errors.
	ErrTypeMismatch     = NewError("both operands need to be numbers")
	ErrBindingNotFound  = NewError("binding not found")
	ErrFunctionNotFound = NewError("function not found")
	ErrArityMismatch    = NewError("arity mismatch")
	ErrDivisionByZero   = NewError("division by zero")
	ErrMaxDepthExceeded = NewError("maximum call depth exceeded")

	// Driver errors.
	ErrReadInput = NewError("failed to read input")
	ErrParse     = NewError("Parse error")
	ErrEvaluate  = NewError("Evaluation error")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind      *Error      // sentinel this error derives from
	err       error       // Wrapped error (for errors.Unwrap)
	msg       string
	attrs     []slog.Attr // Attributes for structured logging
	committed bool
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e derives from the same sentinel as target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.kind == nil {
		return false
	}

	return e.kind == t.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:      e.kind,
		err:       err,
		msg:       e.msg,
		attrs:     e.attrs, // Share attrs
		committed: e.committed,
	}
}

// Wrapf is shorthand for e.Wrap(fmt.Errorf(format, args...)).
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:      e.kind,
		err:       e.err,
		msg:       e.msg,
		attrs:     newAttrs,
		committed: e.committed,
	}
}

// Attrs returns the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// commit marks a parse failure as fatal to ordered alternation. The message
// is unchanged.
func (e *Error) commit() *Error {
	c := *e
	c.committed = true

	return &c
}

// committed reports whether err is a parse failure raised after a grammar
// rule matched its distinguishing prefix.
func committed(err error) bool {
	var e *Error

	return errors.As(err, &e) && e.committed
}

// commitErr marks err as committed, wrapping foreign errors as needed.
func commitErr(err error) error {
	if err == nil {
		return nil
	}

	return WrapError(err).commit()
}

// snippetLen is the maximum number of runes of remaining input quoted in
// parse errors.
const snippetLen = 24

// near describes the input at which a parse rule failed.
type near string

func (n near) Error() string {
	s := string(n)
	if utf8.RuneCountInString(s) > snippetLen {
		r := []rune(s)
		s = string(r[:snippetLen]) + "…"
	}

	return "at " + strconv.Quote(s)
}
