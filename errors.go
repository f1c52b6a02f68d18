package params

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies parameter failures.
type Kind int

const (
	// KindSchema reports a duplicate or colliding parameter name.
	KindSchema Kind = iota + 1
	// KindType reports a value that does not match the declared vtype or arity.
	KindType
	// KindValue reports a value rejected by allow or verify.
	KindValue
	// KindLookup reports a name that cannot be resolved.
	KindLookup
	// KindValidation reports required parameters left unset.
	KindValidation
	// KindConfiguration reports an invalid parameter declaration.
	KindConfiguration
)

// Sentinel errors matched through errors.Is against *Error values.
var (
	ErrSchema        = errors.New("params: schema error")
	ErrType          = errors.New("params: type error")
	ErrValue         = errors.New("params: value error")
	ErrLookup        = errors.New("params: lookup error")
	ErrValidation    = errors.New("params: validation error")
	ErrConfiguration = errors.New("params: configuration error")
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindType:
		return "type"
	case KindValue:
		return "value"
	case KindLookup:
		return "lookup"
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindSchema:
		return ErrSchema
	case KindType:
		return ErrType
	case KindValue:
		return ErrValue
	case KindLookup:
		return ErrLookup
	case KindValidation:
		return ErrValidation
	case KindConfiguration:
		return ErrConfiguration
	default:
		return nil
	}
}

// Error captures a localized parameter failure.
type Error struct {
	Kind    Kind
	Name    string
	Message string
	Err     error
}

func newError(kind Kind, name, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is matches the sentinel for the error kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError aggregates every failure found by a Validate pass.
type ValidationError struct {
	Failures []string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return strings.Join(e.Failures, "\n")
}

// Count returns the number of failures.
func (e *ValidationError) Count() int {
	if e == nil {
		return 0
	}
	return len(e.Failures)
}

// Is reports ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// KindOf returns the Kind carried by err, or zero when err is not a
// parameter error.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	return 0
}
