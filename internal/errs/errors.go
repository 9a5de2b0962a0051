package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can map it to a status
// code without inspecting error strings.
type Kind uint8

const (
	Internal Kind = iota
	NotFound
	InvalidArgument
	Conflict
	UpstreamUnavailable
	Unauthenticated
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	case Conflict:
		return "conflict"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error carries a Kind alongside a message and an optional cause.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// New creates a typed error with a plain message.
func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Errorf creates a typed error with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message, keeping the cause unwrappable.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf reports the kind of err, walking the wrap chain. Untyped errors
// report Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
