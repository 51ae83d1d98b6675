package section

import (
	"fmt"

	"github.com/arloliu/dyescan/endian"
	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
)

// ArtifactFlag holds the first four header bytes.
type ArtifactFlag struct {
	// Options packs the magic number and the endianness bit.
	Options uint16
	// EncodingType is the format.EncodingType of the payload.
	EncodingType uint8
	// CompressionType is the format.CompressionType of the payload.
	CompressionType uint8
}

// NewArtifactFlag returns a little-endian flag for the given payload kind.
func NewArtifactFlag(enc format.EncodingType, comp format.CompressionType) ArtifactFlag {
	return ArtifactFlag{
		Options:         MagicArtifactV1,
		EncodingType:    uint8(enc),
		CompressionType: uint8(comp),
	}
}

// Encoding returns the payload encoding.
func (f ArtifactFlag) Encoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

// Compression returns the payload compression.
func (f ArtifactFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// IsLittleEndian returns whether the header and payload are little-endian.
func (f ArtifactFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// WithLittleEndian sets little-endian byte order.
func (f *ArtifactFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *ArtifactFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f ArtifactFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// Validate checks the magic number, the reserved bits and both enums.
func (f ArtifactFlag) Validate() error {
	if f.Options&MagicNumberMask != MagicArtifactV1 {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.Options&MagicNumberMask)
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits 0x%04X", errs.ErrInvalidHeaderFlags, f.Options&ReservedBitsMask)
	}

	switch f.Encoding() {
	case format.TypeRLE, format.TypeSparse:
	default:
		return fmt.Errorf("%w: encoding 0x%02X", errs.ErrInvalidHeaderFlags, f.EncodingType)
	}

	switch f.Compression() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: compression 0x%02X", errs.ErrInvalidHeaderFlags, f.CompressionType)
	}

	return nil
}
