package encoding

import (
	"fmt"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/section"
	"github.com/arloliu/galacticbuf/value"
)

// SerializeMessage encodes msg as a complete message with its 4-byte header.
//
// The top-level field count is written as a u8 and the total length as a u16
// that includes the header itself. Both are hard limits: more than 255 fields
// fails with ErrTooManyFields and more than 65535 bytes with ErrMessageTooLarge.
//
// Parameters:
//   - msg: Top-level object to encode
//   - opts: Optional encoder configuration
//
// Returns:
//   - []byte: The finished message, owned by the caller
//   - error: Any validation error from the encoder
func SerializeMessage(msg value.Object, opts ...EncoderOption) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	defer e.Release()

	return e.EncodeMessage(msg)
}

// EncodeMessage encodes msg as a complete message, discarding anything
// previously written to the encoder.
//
// The returned slice is a fresh copy and stays valid after the encoder is
// reset or released.
func (e *Encoder) EncodeMessage(msg value.Object) ([]byte, error) {
	e.Reset()

	if len(msg.Fields) > section.MaxFieldCount {
		return nil, fmt.Errorf("%w: %d top-level fields exceeds maximum %d",
			errs.ErrTooManyFields, len(msg.Fields), section.MaxFieldCount)
	}

	if err := e.writeFields(msg.Fields); err != nil {
		return nil, err
	}

	header, err := section.NewMessageHeader(len(msg.Fields), section.HeaderSize+e.Len())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, int(header.TotalLen))
	out = header.AppendTo(out)
	out = append(out, e.Bytes()...)

	return out, nil
}
