// Package encoding implements the GalacticBuf binary encoder and decoder.
//
// The Encoder writes values into a pooled, append-only buffer; the Decoder
// reads them back through a bounds-checked cursor. Both are pure transforms
// over fully buffered bytes: no I/O, no blocking, no shared mutable state.
//
// # Wire Format
//
//	Message  := Version(u8=1) FieldCount(u8) TotalLen(u16) Field*
//	Field    := NameLen(u8, 1..255) Name(NameLen bytes, utf8) Value
//	Value    := Tag(u8) Payload
//	  Tag=1 Int:    Int64 (8 bytes, signed, two's complement)
//	  Tag=2 String: Len(u16) Bytes(Len, utf8)
//	  Tag=3 List:   ElemTag(u8 ∈ {1,2,4}) Count(u16) Elem*
//	  Tag=4 Object: FieldCount(u8) Field*
//
// List elements carry no tag byte of their own: the element tag is declared
// once per list. Objects nested in fields or lists use the headerless form.
//
// # Basic Usage
//
//	msg := value.NewObject(
//	    value.F("user_id", value.NewInt(1001)),
//	    value.F("name", value.NewStr("Alice")),
//	)
//	data, err := encoding.SerializeMessage(msg)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := encoding.ParseMessage(data)
//
// # Limits
//
// Every wire width is enforced as a hard error, never truncated: field names
// are 1-255 bytes, objects hold at most 255 fields, strings at most 65535
// bytes, lists at most 65535 elements, and a whole message at most 65535
// bytes. Nesting of lists and objects is limited to DefaultMaxDepth levels
// unless configured otherwise, on both sides, so anything the encoder accepts
// the decoder accepts too.
//
// # Thread Safety
//
// An Encoder is NOT thread-safe. A Decoder holds only immutable configuration
// and may be shared between goroutines; SerializeMessage and ParseMessage are
// safe for concurrent use.
package encoding
