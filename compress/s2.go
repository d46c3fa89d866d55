package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor uses the S2 block format, a faster Snappy extension.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses the input data using S2 decompression.
//
// The decoded length is read from the block preamble and checked against
// MaxDecompressedSize before any output is allocated.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > MaxDecompressedSize {
		return nil, errTooLarge("s2", n)
	}

	return s2.Decode(nil, data)
}
