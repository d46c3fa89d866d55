// Package endian provides byte order utilities for the GalacticBuf wire format.
//
// The wire format is big-endian for every multi-byte integer (u16 lengths and
// counts, i64 values). This package combines the ByteOrder and AppendByteOrder
// interfaces from encoding/binary into a single EndianEngine so the encoder can
// append directly to its output buffer and the cursor can read in place.
//
// # Basic Usage
//
//	engine := endian.GetWireEngine()
//	buf = engine.AppendUint16(buf, uint16(len(s)))
//	n := engine.Uint16(data[pos:])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetWireEngine returns the engine mandated by the GalacticBuf wire format.
func GetWireEngine() EndianEngine {
	return binary.BigEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// IsWireEngine reports whether engine produces wire-compatible byte order.
func IsWireEngine(engine EndianEngine) bool {
	return engine == GetWireEngine()
}
