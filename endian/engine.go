// Package endian selects the byte order used by the binary artifact envelope.
//
// An artifact records its byte order in the header flags so a reader on any
// host decodes it correctly. Little-endian is the default.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint16(buf, runLength)
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so the
// payload encoders can both put into fixed slots and append.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the byte order of the running host.
func Native() EndianEngine {
	var probe uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsLittleEndian reports whether engine writes little-endian values.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == EndianEngine(binary.LittleEndian)
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
