// Package encoding implements the two image codecs used by dyescan.
//
// # Run-Length Encoding
//
// EncodeRLE flattens a binary image in row-major order and emits alternating
// value and length items:
//
//	[v0, l0, v1, l1, ...]
//
// Every length lies in [1, MaxRunLength]. A run longer than MaxRunLength is
// split into consecutive pairs carrying the same value, so adjacent equal
// values only appear at such split points. The lengths always sum to the
// number of cells in the image.
//
// DecodeRLE needs the original shape; it is not part of the stream.
//
// # Sparse Coordinate List
//
// EncodeSparse emits one Entry{Row, Col, 1} per set cell in row-major order.
// It suits mostly-empty images such as the dye distribution. The format only
// represents unit values.
//
// DecodeSparse needs the original shape too and rejects any entry outside it
// before touching the output buffer.
//
// # Binary Payloads
//
// RLEPayloadEncoder and SparsePayloadEncoder write the same data in a compact
// fixed-width byte layout used by the binary artifact envelope:
//
//	RLE pair:     1 byte value + 2 bytes length
//	Sparse entry: 4 bytes row  + 4 bytes column
package encoding
