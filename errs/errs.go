// Package errs defines the sentinel errors returned by galacticbuf packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is rather than by equality.
package errs

import "errors"

// Header and framing errors.
var (
	ErrMalformedHeader    = errors.New("malformed header")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrLengthMismatch     = errors.New("length mismatch")
	ErrTrailingBytes      = errors.New("trailing bytes")
	ErrMessageTooLarge    = errors.New("message too large")
)

// Value and payload errors.
var (
	ErrUnexpectedEndOfInput    = errors.New("unexpected end of input")
	ErrInvalidFieldNameLength  = errors.New("invalid field name length")
	ErrTooManyFields           = errors.New("too many fields")
	ErrStringTooLong           = errors.New("string too long")
	ErrTooManyListElements     = errors.New("too many list elements")
	ErrListElementTypeMismatch = errors.New("list element type mismatch")
	ErrUnknownTypeTag          = errors.New("unknown type tag")
	ErrInt64OutOfRange         = errors.New("int64 out of range")
	ErrInvalidUtf8             = errors.New("invalid utf-8")
	ErrRecursionLimitExceeded  = errors.New("recursion limit exceeded")
)

// Text grammar errors.
var (
	ErrInvalidGrammarToken = errors.New("invalid grammar token")
	ErrEmptyFieldName      = errors.New("empty field name")
)

// Service errors.
var (
	ErrMissingField        = errors.New("missing field")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrOrderExists         = errors.New("order already exists")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
)
