package encoding

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/galacticbuf/endian"
	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/internal/options"
	"github.com/arloliu/galacticbuf/internal/pool"
	"github.com/arloliu/galacticbuf/section"
	"github.com/arloliu/galacticbuf/value"
)

// maxBodySize is the largest body that still fits a message after the header.
const maxBodySize = section.MaxMessageSize - section.HeaderSize

// Encoder serializes values into the GalacticBuf wire format.
//
// The encoder appends to a pooled output buffer. Each Write method validates
// the wire limits of what it writes and fails without recovering; after an
// error the buffer content is unspecified and the encoder should be Reset.
//
// Note: The Encoder is NOT thread-safe.
type Encoder struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	maxDepth int
	depth    int
}

// NewEncoder creates a new Encoder backed by a pooled buffer.
//
// Call Release when the encoder is no longer needed to return the buffer.
//
// Parameters:
//   - opts: Optional configuration (see WithEncoderMaxDepth)
//
// Returns:
//   - *Encoder: A new encoder with an empty buffer
//   - error: ErrInvalidConfig if an option is invalid
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		buf:      pool.GetMessageBuffer(),
		engine:   endian.GetWireEngine(),
		maxDepth: DefaultMaxDepth,
	}

	if err := options.Apply(e, opts...); err != nil {
		e.Release()
		return nil, err
	}

	return e, nil
}

// Bytes returns the encoded bytes written so far.
//
// The returned slice shares the encoder's buffer and is only valid until the
// next write, Reset or Release.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Reset discards the written bytes and keeps the buffer for reuse.
func (e *Encoder) Reset() {
	e.buf.Reset()
	e.depth = 0
}

// Release returns the buffer to the pool. The encoder must not be used afterwards.
func (e *Encoder) Release() {
	if e.buf != nil {
		pool.PutMessageBuffer(e.buf)
		e.buf = nil
	}
}

// WriteU8 appends a single byte.
func (e *Encoder) WriteU8(v uint8) {
	e.buf.B = append(e.buf.B, v)
}

// WriteU16 appends a big-endian uint16.
func (e *Encoder) WriteU16(v uint16) {
	e.buf.B = e.engine.AppendUint16(e.buf.B, v)
}

// WriteI64 appends a big-endian two's-complement int64.
//
// Every Go int64 fits the wire width, so unlike the other writers this one
// cannot fail with ErrInt64OutOfRange.
func (e *Encoder) WriteI64(v int64) {
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(v)) //nolint:gosec
}

// WriteString appends a u16 byte length followed by the UTF-8 bytes of s.
//
// Returns:
//   - error: ErrStringTooLong if s exceeds 65535 bytes, ErrInvalidUtf8 if s is not valid UTF-8
func (e *Encoder) WriteString(s string) error {
	if len(s) > section.MaxStringSize {
		return fmt.Errorf("%w: %d bytes exceeds maximum %d", errs.ErrStringTooLong, len(s), section.MaxStringSize)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: string value", errs.ErrInvalidUtf8)
	}

	e.buf.Grow(2 + len(s))
	e.WriteU16(uint16(len(s))) //nolint:gosec
	e.buf.B = append(e.buf.B, s...)

	return nil
}

// WriteValue appends the tag of v followed by its payload.
//
// Returns:
//   - error: ErrUnknownTypeTag for a nil or unrecognized value, or any error of the
//     type-specific writer
func (e *Encoder) WriteValue(v value.Value) error {
	if err := e.checkSize(); err != nil {
		return err
	}

	switch tv := v.(type) {
	case value.Int:
		e.WriteU8(uint8(format.TagInt))
		e.WriteI64(int64(tv))

		return nil
	case value.Str:
		e.WriteU8(uint8(format.TagString))
		return e.WriteString(string(tv))
	case value.List:
		e.WriteU8(uint8(format.TagList))
		return e.WriteList(tv)
	case value.Object:
		e.WriteU8(uint8(format.TagObject))
		return e.WriteObjectHeaderless(tv)
	default:
		return fmt.Errorf("%w: cannot encode %T", errs.ErrUnknownTypeTag, v)
	}
}

// WriteList appends a list payload: element tag, u16 count, then each element
// without its own tag byte.
//
// Returns:
//   - error: ErrUnknownTypeTag if the element type is not Int, String or Object,
//     ErrTooManyListElements above 65535 elements, ErrListElementTypeMismatch if
//     an element's tag differs from the declared element type,
//     ErrRecursionLimitExceeded when nested too deep
func (e *Encoder) WriteList(l value.List) error {
	if !l.ElemType.IsElementTag() {
		return fmt.Errorf("%w: list element type 0x%02x", errs.ErrUnknownTypeTag, uint8(l.ElemType))
	}
	if len(l.Elems) > section.MaxListElements {
		return fmt.Errorf("%w: %d elements exceeds maximum %d",
			errs.ErrTooManyListElements, len(l.Elems), section.MaxListElements)
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	e.WriteU8(uint8(l.ElemType))
	e.WriteU16(uint16(len(l.Elems))) //nolint:gosec

	for i, el := range l.Elems {
		if el == nil || el.Tag() != l.ElemType {
			return fmt.Errorf("%w: element %d is %s, list declares %s",
				errs.ErrListElementTypeMismatch, i, tagOf(el), l.ElemType)
		}
		if err := e.writeElement(el); err != nil {
			return err
		}
	}

	return nil
}

// WriteObjectHeaderless appends a u8 field count followed by the fields of o.
//
// Returns:
//   - error: ErrTooManyFields above 255 fields, ErrInvalidFieldNameLength for a name
//     of 0 or more than 255 bytes, ErrRecursionLimitExceeded when nested too deep,
//     or any error writing a field value
func (e *Encoder) WriteObjectHeaderless(o value.Object) error {
	if len(o.Fields) > section.MaxFieldCount {
		return fmt.Errorf("%w: %d fields exceeds maximum %d", errs.ErrTooManyFields, len(o.Fields), section.MaxFieldCount)
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	e.WriteU8(uint8(len(o.Fields))) //nolint:gosec

	return e.writeFields(o.Fields)
}

// writeElement writes a list element payload with no tag byte.
func (e *Encoder) writeElement(el value.Value) error {
	if err := e.checkSize(); err != nil {
		return err
	}

	switch tv := el.(type) {
	case value.Int:
		e.WriteI64(int64(tv))
		return nil
	case value.Str:
		return e.WriteString(string(tv))
	case value.Object:
		return e.WriteObjectHeaderless(tv)
	default:
		return fmt.Errorf("%w: cannot encode list element %T", errs.ErrUnknownTypeTag, el)
	}
}

func (e *Encoder) writeFields(fields []value.Field) error {
	for _, f := range fields {
		if err := e.writeFieldName(f.Name); err != nil {
			return err
		}
		if err := e.WriteValue(f.Value); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

func (e *Encoder) writeFieldName(name string) error {
	if len(name) < section.MinFieldNameSize || len(name) > section.MaxFieldNameSize {
		return fmt.Errorf("%w: %q is %d bytes, must be %d-%d",
			errs.ErrInvalidFieldNameLength, name, len(name), section.MinFieldNameSize, section.MaxFieldNameSize)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: field name %q", errs.ErrInvalidUtf8, name)
	}

	e.WriteU8(uint8(len(name))) //nolint:gosec
	e.buf.B = append(e.buf.B, name...)

	return nil
}

func (e *Encoder) enter() error {
	e.depth++
	if e.depth > e.maxDepth {
		e.depth--
		return fmt.Errorf("%w: depth %d exceeds maximum %d", errs.ErrRecursionLimitExceeded, e.depth+1, e.maxDepth)
	}

	return nil
}

func (e *Encoder) leave() {
	e.depth--
}

// checkSize aborts as soon as the output can no longer fit a message. Every
// recursive write emits at least one byte, so this also bounds work on
// self-referencing values.
func (e *Encoder) checkSize() error {
	if e.buf.Len() > maxBodySize {
		return fmt.Errorf("%w: body exceeds %d bytes", errs.ErrMessageTooLarge, maxBodySize)
	}

	return nil
}

func tagOf(v value.Value) string {
	if v == nil {
		return "nil"
	}

	return v.Tag().String()
}
