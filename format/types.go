package format

type (
	Tag             uint8
	CompressionType uint8
)

const (
	TagInt    Tag = 0x1 // TagInt represents a signed 64-bit integer.
	TagString Tag = 0x2 // TagString represents a u16 length-prefixed UTF-8 string.
	TagList   Tag = 0x3 // TagList represents a homogeneous list with a shared element tag.
	TagObject Tag = 0x4 // TagObject represents an ordered list of named fields.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// IsValid reports whether t is one of the four wire tags.
func (t Tag) IsValid() bool {
	return t >= TagInt && t <= TagObject
}

// IsElementTag reports whether t may be declared as a list element type.
// Lists of lists are not representable on the wire.
func (t Tag) IsElementTag() bool {
	return t == TagInt || t == TagString || t == TagObject
}

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "Int"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagObject:
		return "Object"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ContentEncoding returns the HTTP Content-Encoding token for c.
// CompressionNone maps to "identity".
func (c CompressionType) ContentEncoding() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "identity"
	}
}

// ParseContentEncoding maps an HTTP Content-Encoding token to a CompressionType.
// An empty token is treated as identity.
func ParseContentEncoding(token string) (CompressionType, bool) {
	switch token {
	case "", "identity":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
