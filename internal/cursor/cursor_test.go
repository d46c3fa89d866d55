package cursor

import (
	"testing"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/stretchr/testify/require"
)

func TestCursorReads(t *testing.T) {
	data := []byte{
		0x01,       // u8
		0x00, 0x19, // u16 = 25
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE, // i64 = -2
		'a', 'b', 'c',
	}
	c := New(data)
	require.Equal(t, len(data), c.Len())

	u8, err := c.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), u8)

	u16, err := c.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(25), u16)

	i64, err := c.ReadI64()
	require.NoError(t, err)
	require.Equal(t, int64(-2), i64)

	b, err := c.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), b)

	require.True(t, c.Done())
	require.Equal(t, 0, c.Remaining())
	require.Equal(t, len(data), c.Pos())
}

func TestCursorOutOfBoundsDoesNotAdvance(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(c *Cursor) error
	}{
		{"u8 on empty", nil, func(c *Cursor) error { _, err := c.ReadU8(); return err }},
		{"u16 with one byte", []byte{0x01}, func(c *Cursor) error { _, err := c.ReadU16(); return err }},
		{"i64 with seven bytes", make([]byte, 7), func(c *Cursor) error { _, err := c.ReadI64(); return err }},
		{"bytes beyond end", []byte("abc"), func(c *Cursor) error { _, err := c.ReadBytes(4); return err }},
		{"negative span", []byte("abc"), func(c *Cursor) error { _, err := c.ReadBytes(-1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.data)
			err := tt.read(c)
			require.ErrorIs(t, err, errs.ErrUnexpectedEndOfInput)
			require.Equal(t, 0, c.Pos())
		})
	}
}

func TestCursorZeroLengthRead(t *testing.T) {
	c := New([]byte{0x01})
	b, err := c.ReadBytes(0)
	require.NoError(t, err)
	require.Empty(t, b)
	require.Equal(t, 0, c.Pos())
}
