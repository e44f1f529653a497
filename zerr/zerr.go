// Package zerr defines the typed error kinds that flow up through the
// interpreter's synchronous Update loop instead of panics.
package zerr

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// LoadError means the story image itself is unusable (bad header,
	// unsupported version, truncated file). Only a fresh Load can clear it.
	LoadError Kind = iota
	// BoundsError means an address fell outside memory, the stack
	// overflowed/underflowed, or a write targeted read-only memory.
	BoundsError
	// DecodeError means the instruction stream or a packed string could
	// not be decoded (bad opcode form, malformed z-string).
	DecodeError
	// SemanticError means the bytecode asked for something structurally
	// impossible (return from the outermost frame, property not found
	// where the caller required one, nested abbreviation).
	SemanticError
	// Unsupported means the opcode or feature is recognised but
	// deliberately not implemented (save/restore, the extended instruction
	// form, story versions other than 3).
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case LoadError:
		return "load error"
	case BoundsError:
		return "bounds error"
	case DecodeError:
		return "decode error"
	case SemanticError:
		return "semantic error"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown error"
	}
}

// Error is a typed interpreter error. It wraps an optional underlying
// cause so %w unwrapping still works.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func Load(format string, args ...any) *Error { return newf(LoadError, format, args...) }

func Bounds(format string, args ...any) *Error { return newf(BoundsError, format, args...) }

func Decode(format string, args ...any) *Error { return newf(DecodeError, format, args...) }

func Semantic(format string, args ...any) *Error { return newf(SemanticError, format, args...) }

func UnsupportedOp(format string, args ...any) *Error { return newf(Unsupported, format, args...) }

// Wrap attaches a Kind and message to an underlying error.
func Wrap(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Msg: msg, Err: err}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
