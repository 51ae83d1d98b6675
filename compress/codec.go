package compress

import (
	"fmt"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
)

// Compressor compresses a complete artifact payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not modified;
	// the result may alias it for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original payload. size is the uncompressed
	// length recorded in the envelope; a result of any other length is an
	// error.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions and names its algorithm.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// CompressionStats describes one compression of a payload.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, 0 for an empty
// payload.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// CompressWithStats compresses data and reports the resulting sizes.
func CompressWithStats(codec Codec, data []byte) ([]byte, CompressionStats, error) {
	packed, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return packed, CompressionStats{
		Algorithm:      codec.Type(),
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(packed)),
	}, nil
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type %s", errs.ErrInvalidHeaderFlags, compressionType)
}

func checkSize(algo string, got []byte, want int) ([]byte, error) {
	if len(got) != want {
		return nil, fmt.Errorf("%w: %s payload decompressed to %d bytes, want %d",
			errs.ErrInvalidPayloadSize, algo, len(got), want)
	}

	return got, nil
}
