// Package section defines the fixed binary structures and limits of the GalacticBuf wire format.
//
// # Message Structure
//
// A message is a 4-byte header followed by the top-level fields:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (4 bytes, fixed)                                 │
//	│  - Version (1 byte): always 0x01                        │
//	│  - FieldCount (1 byte): number of top-level fields      │
//	│  - TotalLen (2 bytes): whole message length, header in  │
//	├─────────────────────────────────────────────────────────┤
//	│ Fields (variable)                                       │
//	│  - NameLen (1 byte, 1..255)                             │
//	│  - Name (NameLen bytes, UTF-8)                          │
//	│  - Tag (1 byte) + Payload                               │
//	└─────────────────────────────────────────────────────────┘
//
// # Value Payloads
//
//	Tag  | Variant | Payload
//	-----|---------|------------------------------------------------------
//	0x01 | Int     | int64, 8 bytes, two's complement
//	0x02 | String  | Len (u16) + Len bytes of UTF-8
//	0x03 | List    | ElemTag (u8) + Count (u16) + Count untagged elements
//	0x04 | Object  | FieldCount (u8) + fields (headerless, no Version/TotalLen)
//
// All multi-byte integers are big-endian.
//
// # Thread Safety
//
// All types in this package are plain value types and are safe for concurrent use.
package section
