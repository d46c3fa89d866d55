package section

import (
	"fmt"

	"github.com/arloliu/galacticbuf/endian"
	"github.com/arloliu/galacticbuf/errs"
)

// MessageHeader represents the fixed 4-byte header at the start of every message.
type MessageHeader struct {
	// Version is the protocol version, always Version for messages produced by this package.
	Version uint8 // byte offset 0
	// FieldCount is the number of top-level fields.
	FieldCount uint8 // byte offset 1
	// TotalLen is the length of the whole message in bytes, header included.
	TotalLen uint16 // byte offset 2-3
}

// NewMessageHeader creates a header for a message with the given top-level
// field count and total length.
//
// Parameters:
//   - fieldCount: Number of top-level fields (0-255)
//   - totalLen: Total message length including the header (4-65535)
//
// Returns:
//   - MessageHeader: The header
//   - error: ErrTooManyFields or ErrMessageTooLarge when a value does not fit its wire width
func NewMessageHeader(fieldCount int, totalLen int) (MessageHeader, error) {
	if fieldCount < 0 || fieldCount > MaxFieldCount {
		return MessageHeader{}, fmt.Errorf("%w: %d top-level fields exceeds maximum %d",
			errs.ErrTooManyFields, fieldCount, MaxFieldCount)
	}
	if totalLen > MaxMessageSize {
		return MessageHeader{}, fmt.Errorf("%w: %d bytes exceeds maximum %d",
			errs.ErrMessageTooLarge, totalLen, MaxMessageSize)
	}
	if totalLen < HeaderSize {
		return MessageHeader{}, fmt.Errorf("%w: total length %d is smaller than the header",
			errs.ErrMalformedHeader, totalLen)
	}

	return MessageHeader{
		Version:    Version,
		FieldCount: uint8(fieldCount), //nolint:gosec
		TotalLen:   uint16(totalLen),  //nolint:gosec
	}, nil
}

// Parse parses the header from a byte slice.
//
// Only the version is validated here; the TotalLen check against the actual
// input length belongs to the decoder, which knows the whole buffer.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 4 bytes)
//
// Returns:
//   - error: ErrMalformedHeader if data is not 4 bytes, ErrUnsupportedVersion for any version but 1
func (h *MessageHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrMalformedHeader, HeaderSize, len(data))
	}

	engine := endian.GetWireEngine()

	h.Version = data[0]
	h.FieldCount = data[1]
	h.TotalLen = engine.Uint16(data[2:4])

	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	return nil
}

// Bytes serializes the header into a new 4-byte slice.
func (h MessageHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to buf and returns the extended slice.
func (h MessageHeader) AppendTo(buf []byte) []byte {
	engine := endian.GetWireEngine()

	buf = append(buf, h.Version, h.FieldCount)

	return engine.AppendUint16(buf, h.TotalLen)
}

// ParseMessageHeader parses a MessageHeader from the start of a message.
//
// Parameters:
//   - data: Message bytes (must be at least 4 bytes)
//
// Returns:
//   - MessageHeader: Parsed header struct
//   - error: ErrMalformedHeader or ErrUnsupportedVersion
func ParseMessageHeader(data []byte) (MessageHeader, error) {
	if len(data) < HeaderSize {
		return MessageHeader{}, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrMalformedHeader, HeaderSize, len(data))
	}

	h := MessageHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return MessageHeader{}, err
	}

	return h, nil
}
