// Package compress provides the payload compressors of the binary artifact
// envelope.
//
// An artifact payload (RLE pairs or sparse coordinates) is compressed as a
// whole after encoding. The envelope header records the algorithm and the
// uncompressed size, so Decompress is always given the size to expect:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(payload)
//	payload, err = codec.Decompress(packed, len(payload))
//
// Supported algorithms:
//   - None: payload stored as is
//   - Zstd: best ratio; RLE payloads of blob images shrink well since runs
//     repeat row after row
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// Zstd is provided by github.com/klauspost/compress/zstd. Building with the
// gozstd tag and cgo enabled switches to github.com/valyala/gozstd instead;
// both produce standard zstd frames and read each other's output.
//
// All codecs are stateless values and safe for concurrent use; zstd and lz4
// keep their heavy encoder state in sync.Pools.
package compress
