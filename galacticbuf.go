// Package galacticbuf implements GalacticBuf, a compact self-describing binary
// message format, together with a small text grammar for building messages
// from key=value arguments.
//
// A message is a 4-byte header (version, field count, total length) followed
// by named fields. Values are 64-bit signed integers, UTF-8 strings,
// homogeneous lists and nested objects. All multi-byte integers are
// big-endian.
//
// # Basic Usage
//
// Building and encoding a message:
//
//	msg := galacticbuf.NewObject(
//	    galacticbuf.F("user_id", galacticbuf.NewInt(1001)),
//	    galacticbuf.F("name", galacticbuf.NewStr("Alice")),
//	)
//	data, err := galacticbuf.Marshal(msg)
//
// Decoding:
//
//	msg, err := galacticbuf.Unmarshal(data)
//	id, _ := msg.GetInt("user_id")
//
// From text:
//
//	data, err := galacticbuf.EncodeText(`user_id=1001 scores=[100, 200]`)
//
// # Package Structure
//
// This package wraps the value, encoding and grammar packages for the common
// cases. Use those packages directly for encoder reuse or depth limits.
package galacticbuf

import (
	"fmt"

	"github.com/arloliu/galacticbuf/encoding"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/grammar"
	"github.com/arloliu/galacticbuf/value"
)

type (
	Value  = value.Value
	Int    = value.Int
	Str    = value.Str
	List   = value.List
	Object = value.Object
	Field  = value.Field
	Tag    = format.Tag
)

const (
	TagInt    = format.TagInt
	TagString = format.TagString
	TagList   = format.TagList
	TagObject = format.TagObject
)

// NewInt creates an Int value.
func NewInt(v int64) Int { return value.NewInt(v) }

// NewStr creates a Str value.
func NewStr(s string) Str { return value.NewStr(s) }

// NewList creates a list whose elements must all carry elemType.
func NewList(elemType Tag, elems ...Value) List { return value.NewList(elemType, elems...) }

// NewObject creates an object with fields in the given order.
func NewObject(fields ...Field) Object { return value.NewObject(fields...) }

// F is shorthand for a Field literal.
func F(name string, v Value) Field { return value.F(name, v) }

// Marshal encodes msg as a complete GalacticBuf message.
//
// Parameters:
//   - msg: The top-level object
//
// Returns:
//   - []byte: The encoded message including its header
//   - error: A wrapped errs sentinel describing the first violation found
func Marshal(msg Object) ([]byte, error) {
	return encoding.SerializeMessage(msg)
}

// Unmarshal decodes a complete message. The input must be exactly one
// message: its length must equal the header's total length.
//
// Parameters:
//   - data: The encoded message
//
// Returns:
//   - Object: The decoded top-level object, owning no memory of data
//   - error: A wrapped errs sentinel describing the failure
func Unmarshal(data []byte) (Object, error) {
	return encoding.ParseMessage(data)
}

// ParseText parses a whitespace separated list of name=value fields.
func ParseText(s string) (Object, error) {
	return grammar.Parse(s)
}

// ParseArgs parses command-line arguments joined with single spaces.
func ParseArgs(args []string) (Object, error) {
	return grammar.ParseArgs(args)
}

// EncodeText parses s with the text grammar and encodes the result.
func EncodeText(s string) ([]byte, error) {
	msg, err := grammar.Parse(s)
	if err != nil {
		return nil, err
	}

	return encoding.SerializeMessage(msg)
}

// FormatHex renders data as upper-case hex bytes separated by spaces,
// e.g. "01 02 00 22".
func FormatHex(data []byte) string {
	return fmt.Sprintf("% X", data)
}
