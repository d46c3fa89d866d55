// Package cursor provides a bounds-checked, forward-only reader over a byte slice.
package cursor

import (
	"fmt"

	"github.com/arloliu/galacticbuf/endian"
	"github.com/arloliu/galacticbuf/errs"
)

// Cursor reads wire integers and raw spans from an immutable byte slice.
//
// Every read first checks that the requested span fits in the remaining bytes.
// A failed read returns errs.ErrUnexpectedEndOfInput and leaves the position
// unchanged, so a Cursor never reads past the end of its buffer.
//
// Note: Cursor is NOT thread-safe.
type Cursor struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// New creates a Cursor positioned at the start of data.
// The data slice is not copied and must not be modified while the cursor is in use.
func New(data []byte) *Cursor {
	return &Cursor{
		data:   data,
		engine: endian.GetWireEngine(),
	}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Done reports whether the whole buffer has been consumed.
func (c *Cursor) Done() bool {
	return c.pos == len(c.data)
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++

	return v, nil
}

// ReadU16 reads a big-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.ensure(2); err != nil {
		return 0, err
	}
	v := c.engine.Uint16(c.data[c.pos:])
	c.pos += 2

	return v, nil
}

// ReadI64 reads a big-endian two's-complement int64.
func (c *Cursor) ReadI64() (int64, error) {
	if err := c.ensure(8); err != nil {
		return 0, err
	}
	v := int64(c.engine.Uint64(c.data[c.pos:])) //nolint:gosec
	c.pos += 8

	return v, nil
}

// ReadBytes returns the next n bytes.
//
// The returned slice aliases the underlying buffer; callers that keep it must copy.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative span %d at offset %d", errs.ErrUnexpectedEndOfInput, n, c.pos)
	}
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

func (c *Cursor) ensure(n int) error {
	if n > len(c.data)-c.pos {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrUnexpectedEndOfInput, n, c.pos, len(c.data)-c.pos)
	}

	return nil
}
