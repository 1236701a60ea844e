package permissions

import "fmt"

// ParseError represents a failure to decode a textual permission or ACL
// representation.
//
// These are deterministic, local errors: the same malformed input always
// produces the same error code. They are never retried and never wrap a
// transport failure.
type ParseError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Input is the offending text (may be truncated for large inputs)
	Input string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: %q", e.Message, e.Input)
	}
	return e.Message
}

// ErrorCode represents the category of a parse error.
type ErrorCode int

const (
	// ErrFormat indicates the input violates a delimiter, length, or
	// character-set rule (e.g. a symbolic permission containing 'q').
	ErrFormat ErrorCode = iota

	// ErrOutOfRange indicates a numeric value outside its valid domain
	// (e.g. an octal digit above 7) or a string of the wrong length.
	ErrOutOfRange

	// ErrInvalidArgument indicates a semantically wrong combination, such
	// as a missing required argument or an entity ID on a mask entry.
	ErrInvalidArgument

	// ErrUnknownType indicates an access control type string that is not
	// one of the four known literals (user, group, mask, other).
	ErrUnknownType
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrFormat:
		return "format"
	case ErrOutOfRange:
		return "out of range"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrUnknownType:
		return "unknown type"
	default:
		return "unknown"
	}
}
