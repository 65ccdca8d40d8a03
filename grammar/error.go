package grammar

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// These follow the propagation policy of the engine: a missing rule is not an
// error (it degrades to a visible {{name}} placeholder), while structural
// failures below abort the enclosing flatten operation and carry enough
// attribute context to identify the rule, modifier, or fragment involved.
var (
	// ErrModifierArity is returned when a modifier is invoked with a
	// parameter count not matching its declared arity.
	ErrModifierArity = NewError("modifier parameter count mismatch")

	// ErrBadHandler is returned when rule content is an object missing a
	// "handler" field, naming an unregistered handler, or whose handler
	// produced a non-string result.
	ErrBadHandler = NewError("bad object handler")

	// ErrHandlerParams is returned when a handler's own parameters (such as
	// "values" or "weights") are missing or malformed.
	ErrHandlerParams = NewError("missing or malformed handler parameters")

	// ErrUnexpectedType is returned when a value's kind does not match what
	// an operation requires, such as an object handler invoked on a
	// non-object or rule content that is neither string, array, nor object.
	ErrUnexpectedType = NewError("unexpected value type")

	// ErrBadGrammar is returned when grammar source is not an object mapping
	// rule names to rule contents.
	ErrBadGrammar = NewError("grammar source is not an object")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
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

// Is reports whether e matches the target sentinel.
// Two Errors match when they share the same base message, so wrapped and
// attributed copies of a sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	te := &Error{}
	if !errors.As(target, &te) {
		return false
	}

	return e.msg == te.msg
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
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Attrs returns the structured attributes attached to the error.
func (e *Error) Attrs() []slog.Attr {
	return e.attrs
}
