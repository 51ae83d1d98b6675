// Package section defines the fixed header of a binary dyescan artifact.
//
// # Artifact Layout
//
//	┌──────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                     │
//	├──────────────────────────────────────────────┤
//	│ Payload (CompressedSize bytes)               │
//	│  - RLE pairs or sparse entries, compressed   │
//	└──────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field          | Type   | Description
//	-------|----------------|--------|-----------------------------------------
//	0-1    | Options        | uint16 | magic number + endianness (always LE)
//	2      | EncodingType   | uint8  | format.TypeRLE or format.TypeSparse
//	3      | CompressionType| uint8  | format.Compression*
//	4-7    | Height         | uint32 | image rows
//	8-11   | Width          | uint32 | image columns
//	12-15  | ItemCount      | uint32 | RLE pairs or sparse entries
//	16-19  | PayloadSize    | uint32 | uncompressed payload bytes
//	20-23  | CompressedSize | uint32 | payload bytes following the header
//	24-31  | Checksum       | uint64 | xxHash64 of the uncompressed payload
//
// # Options Format
//
//	Bit 0:     reserved, must be 0
//	Bit 1:     endianness of fields 4-31 and of the payload (0=little, 1=big)
//	Bit 2-3:   reserved, must be 0
//	Bit 4-15:  magic number
//
// The shape recorded in the header lets a reader reject a decode request for
// a different shape instead of producing a silently wrong image. The magic
// number identifies the layout; there is no version negotiation.
package section
