package compress

import "github.com/arloliu/dyescan/format"

// ZstdCompressor compresses payloads with Zstandard.
//
// It gives the best ratio of the built-in codecs and is the default for
// artifacts that are written once and read rarely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
