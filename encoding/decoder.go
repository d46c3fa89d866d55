package encoding

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/internal/cursor"
	"github.com/arloliu/galacticbuf/internal/options"
	"github.com/arloliu/galacticbuf/section"
	"github.com/arloliu/galacticbuf/value"
)

// Decoder parses GalacticBuf messages back into value objects.
//
// The decoder reads exclusively through a bounds-checked cursor, so truncated
// or hostile input fails with ErrUnexpectedEndOfInput instead of reading out
// of bounds. List and object nesting is limited by the configured max depth,
// and preallocation is capped by the bytes actually remaining, so a small
// input cannot force a large allocation.
//
// A Decoder holds only configuration and is safe for concurrent use.
type Decoder struct {
	maxDepth int
}

// NewDecoder creates a new Decoder.
//
// Parameters:
//   - opts: Optional configuration (see WithMaxDepth)
//
// Returns:
//   - *Decoder: The decoder
//   - error: ErrInvalidConfig if an option is invalid
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{maxDepth: DefaultMaxDepth}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

var defaultDecoder = &Decoder{maxDepth: DefaultMaxDepth}

// ParseMessage decodes a complete message using the default decoder settings.
//
// Parameters:
//   - data: The whole message, header included
//
// Returns:
//   - value.Object: The top-level object, fields in wire order
//   - error: Header, framing or payload error; no partial result is returned
func ParseMessage(data []byte) (value.Object, error) {
	return defaultDecoder.Decode(data)
}

// Decode decodes a complete message.
//
// Decoding steps:
//  1. Fail ErrMalformedHeader if data is shorter than the header
//  2. Fail ErrUnsupportedVersion unless the version byte is 1
//  3. Fail ErrLengthMismatch unless TotalLen equals len(data) exactly
//  4. Read FieldCount fields
//  5. Fail ErrTrailingBytes unless every byte was consumed
//
// Returns:
//   - value.Object: The top-level object
//   - error: The first violation encountered
func (d *Decoder) Decode(data []byte) (value.Object, error) {
	header, err := section.ParseMessageHeader(data)
	if err != nil {
		return value.Object{}, err
	}

	if int(header.TotalLen) != len(data) {
		return value.Object{}, fmt.Errorf("%w: header declares %d bytes, input has %d",
			errs.ErrLengthMismatch, header.TotalLen, len(data))
	}

	r := reader{
		cur:      cursor.New(data),
		maxDepth: d.maxDepth,
	}
	if _, err := r.cur.ReadBytes(section.HeaderSize); err != nil {
		return value.Object{}, err
	}

	fields, err := r.readFields(int(header.FieldCount))
	if err != nil {
		return value.Object{}, err
	}

	if !r.cur.Done() {
		return value.Object{}, fmt.Errorf("%w: %d unread bytes at offset %d",
			errs.ErrTrailingBytes, r.cur.Remaining(), r.cur.Pos())
	}

	return value.Object{Fields: fields}, nil
}

// reader holds the per-call decoding state.
type reader struct {
	cur      *cursor.Cursor
	maxDepth int
	depth    int
}

func (r *reader) readFields(count int) ([]value.Field, error) {
	fields := make([]value.Field, 0, r.capHint(count))
	for i := 0; i < count; i++ {
		f, err := r.readField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return fields, nil
}

func (r *reader) readField() (value.Field, error) {
	offset := r.cur.Pos()
	nameLen, err := r.cur.ReadU8()
	if err != nil {
		return value.Field{}, err
	}
	if nameLen == 0 {
		return value.Field{}, fmt.Errorf("%w: zero-length field name at offset %d", errs.ErrInvalidFieldNameLength, offset)
	}

	nameBytes, err := r.cur.ReadBytes(int(nameLen))
	if err != nil {
		return value.Field{}, err
	}
	if !utf8.Valid(nameBytes) {
		return value.Field{}, fmt.Errorf("%w: field name at offset %d", errs.ErrInvalidUtf8, offset)
	}
	name := string(nameBytes)

	v, err := r.readValue()
	if err != nil {
		return value.Field{}, fmt.Errorf("field %q: %w", name, err)
	}

	return value.Field{Name: name, Value: v}, nil
}

func (r *reader) readValue() (value.Value, error) {
	offset := r.cur.Pos()
	tag, err := r.cur.ReadU8()
	if err != nil {
		return nil, err
	}

	switch format.Tag(tag) {
	case format.TagInt:
		return r.readInt()
	case format.TagString:
		return r.readString()
	case format.TagList:
		return r.readList()
	case format.TagObject:
		return r.readObjectHeaderless()
	default:
		return nil, fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrUnknownTypeTag, tag, offset)
	}
}

func (r *reader) readInt() (value.Value, error) {
	v, err := r.cur.ReadI64()
	if err != nil {
		return nil, err
	}

	return value.Int(v), nil
}

func (r *reader) readString() (value.Value, error) {
	n, err := r.cur.ReadU16()
	if err != nil {
		return nil, err
	}

	offset := r.cur.Pos()
	b, err := r.cur.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: string at offset %d", errs.ErrInvalidUtf8, offset)
	}

	return value.Str(b), nil
}

func (r *reader) readList() (value.Value, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	offset := r.cur.Pos()
	rawTag, err := r.cur.ReadU8()
	if err != nil {
		return nil, err
	}
	elemType := format.Tag(rawTag)
	if !elemType.IsElementTag() {
		return nil, fmt.Errorf("%w: list element type 0x%02x at offset %d", errs.ErrUnknownTypeTag, rawTag, offset)
	}

	count, err := r.cur.ReadU16()
	if err != nil {
		return nil, err
	}

	elems := make([]value.Value, 0, r.capHint(int(count)))
	for i := 0; i < int(count); i++ {
		var el value.Value
		switch elemType {
		case format.TagInt:
			el, err = r.readInt()
		case format.TagString:
			el, err = r.readString()
		case format.TagObject:
			el, err = r.readObjectHeaderless()
		}
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elems = append(elems, el)
	}

	return value.List{ElemType: elemType, Elems: elems}, nil
}

func (r *reader) readObjectHeaderless() (value.Value, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	count, err := r.cur.ReadU8()
	if err != nil {
		return nil, err
	}

	fields, err := r.readFields(int(count))
	if err != nil {
		return nil, err
	}

	return value.Object{Fields: fields}, nil
}

func (r *reader) enter() error {
	r.depth++
	if r.depth > r.maxDepth {
		return fmt.Errorf("%w: depth %d exceeds maximum %d at offset %d",
			errs.ErrRecursionLimitExceeded, r.depth, r.maxDepth, r.cur.Pos())
	}

	return nil
}

func (r *reader) leave() {
	r.depth--
}

// capHint bounds a declared count by the bytes left, since every field or
// element occupies at least one byte.
func (r *reader) capHint(count int) int {
	return min(count, r.cur.Remaining())
}
