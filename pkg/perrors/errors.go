// Package perrors defines the error taxonomy shared by every record type:
// schema violations, invariant violations, signature failures, canonical
// codec failures, and input-shape failures. Callers branch on Kind with
// errors.Is against the sentinel values, or errors.As against *Error.
package perrors

import "fmt"

// Kind identifies which class of failure an Error represents.
type Kind uint8

const (
	KindSchema Kind = iota
	KindInvariant
	KindSignature
	KindCanonical
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindInvariant:
		return "invariant"
	case KindSignature:
		return "signature"
	case KindCanonical:
		return "canonical"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// sentinel errors usable with errors.Is to test a Kind without inspecting Message.
var (
	ErrSchema    = &Error{Kind: KindSchema}
	ErrInvariant = &Error{Kind: KindInvariant}
	ErrSignature = &Error{Kind: KindSignature}
	ErrCanonical = &Error{Kind: KindCanonical}
	ErrInput     = &Error{Kind: KindInput}
)

// Error is the concrete error type returned by every verify/construct path
// in core and pkg/canonical.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind alone, so errors.Is(err, perrors.ErrInvariant) works
// regardless of the specific message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap adds context to err under the given kind. Returns nil if err is nil.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}
