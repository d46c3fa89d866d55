package compress

import (
	"fmt"
	"strings"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
)

// MaxDecompressedSize bounds the output of every Decompress call.
//
// A GalacticBuf message never exceeds 65535 bytes, so a request body that
// inflates past this limit is rejected instead of being buffered.
const MaxDecompressedSize = 1 << 20

func errTooLarge(coding string, n int) error {
	return fmt.Errorf("%s decompression failed: decoded length %d exceeds %d", coding, n, MaxDecompressedSize)
}

// Compressor compresses a complete message body.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller unless documented otherwise
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Implementations must be safe for concurrent use and must never return more
// than MaxDecompressedSize bytes.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if the output would exceed MaxDecompressedSize
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrUnsupportedEncoding for an unknown compression type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrUnsupportedEncoding, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, compressionType)
}

// ForContentEncoding resolves an HTTP Content-Encoding header value.
//
// Only a single coding is accepted; stacked codings such as "zstd, s2" are
// rejected with ErrUnsupportedEncoding.
func ForContentEncoding(header string) (format.CompressionType, Codec, error) {
	token := strings.ToLower(strings.TrimSpace(header))

	ct, ok := format.ParseContentEncoding(token)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedEncoding, header)
	}

	codec, err := GetCodec(ct)
	if err != nil {
		return 0, nil, err
	}

	return ct, codec, nil
}

// Negotiate picks a response encoding from an Accept-Encoding header.
//
// The first supported coding listed wins; quality values are ignored except
// that "q=0" disables a coding. fallback applies only when the header is
// absent; a header that names nothing supported yields CompressionNone.
func Negotiate(acceptEncoding string, fallback format.CompressionType) format.CompressionType {
	if strings.TrimSpace(acceptEncoding) == "" {
		return fallback
	}

	for _, part := range strings.Split(acceptEncoding, ",") {
		token, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}

		if q := strings.ReplaceAll(strings.TrimSpace(params), " ", ""); q == "q=0" || q == "q=0.0" {
			continue
		}

		if ct, ok := format.ParseContentEncoding(token); ok {
			return ct
		}
	}

	return format.CompressionNone
}
