// Package endian provides byte order utilities for Simple-8b word streams.
//
// An encoded stream is a sequence of 64-bit words serialized in a single
// fixed byte order. This package combines the ByteOrder and AppendByteOrder
// interfaces from encoding/binary into one EndianEngine interface so the
// same engine value can both append words to an output buffer and read them
// back from an encoded span.
//
// # Basic Usage
//
// Little-endian is the standard word order for this module:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, word)    // encoder sink side
//	word = engine.Uint64(span[off : off+8]) // decoder side
//
// GetBigEndianEngine exists for interoperability with big-endian producers;
// encoder and decoder must be handed the same engine.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for word stream I/O.
//
// binary.LittleEndian and binary.BigEndian both satisfy this interface, so
// an EndianEngine interoperates with any code built on encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. On a little-endian host the LSB (0x00) is stored first,
	// on a big-endian host the MSB (0x01) is.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host stores integers little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host stores integers big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine, the standard word
// order for encoded Simple-8b streams.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
