package section

import "math"

const (
	Version = 0x01 // Version is the only supported protocol version.

	HeaderSize = 4 // fixed header size in bytes

	MaxMessageSize   = math.MaxUint16 // maximum total message length, header included
	MaxFieldCount    = math.MaxUint8  // maximum fields per object level
	MaxFieldNameSize = math.MaxUint8  // maximum field name length in bytes
	MinFieldNameSize = 1              // minimum field name length in bytes
	MaxStringSize    = math.MaxUint16 // maximum string length in bytes
	MaxListElements  = math.MaxUint16 // maximum elements per list

	IntSize = 8 // encoded size of an Int payload
)
