package compress

// NoOpCompressor passes data through untouched. It backs the "identity"
// content coding.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, or an error when it is larger
// than MaxDecompressedSize.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) > MaxDecompressedSize {
		return nil, errTooLarge("identity", len(data))
	}

	return data, nil
}
