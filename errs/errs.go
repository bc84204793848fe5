// Package errs defines the error taxonomy shared by the token dumper.
//
// Every failure belongs to exactly one Kind. Ordinary, foreseen failures
// (bad flags, malformed input, a stalled source, overflowing the 32-bit
// position counter) exit with code 1. Internal invariant violations exit
// with code 2, so automated testing can tell "input was malformed" apart
// from "the tool itself is broken".
package errs

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindArgument
	KindRead
	KindDecode
	KindOverflow
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindRead:
		return "read"
	case KindDecode:
		return "decode"
	case KindOverflow:
		return "overflow"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

type Error struct {
	kind  Kind
	msg   string
	cause error
}

func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, msg string) error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	msg := e.msg
	if e.kind == KindInternal {
		msg = "internal error: " + msg
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Cause exposes the wrapped error to pkg/errors cause chains.
func (e *Error) Cause() error {
	return e.cause
}

// KindOf reports the Kind of the first *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsInternal(err error) bool {
	return KindOf(err) == KindInternal
}

// ExitCode maps an error to the process exit code: 0 for nil, 2 for
// internal invariant violations, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsInternal(err) {
		return 2
	}
	return 1
}

// maxMessageLen bounds the single line written to stderr. A message this
// long indicates a formatting bug, which is itself an internal error.
const maxMessageLen = 2047

const tooLongMessage = "internal error: error message is too long"

// Report renders err as the one line written to stderr together with the
// exit code. Abnormally long messages are replaced by a fixed substitute
// and reported as internal, so a formatting bug cannot cause unbounded
// output.
func Report(err error) (string, int) {
	if err == nil {
		return "", 0
	}
	msg := err.Error()
	if len(msg) >= maxMessageLen {
		return tooLongMessage, 2
	}
	return msg, ExitCode(err)
}
