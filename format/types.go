// Package format defines the enums that describe how an artifact is encoded,
// compressed and laid out on disk.
package format

import (
	"fmt"
	"strings"
)

type (
	EncodingType    uint8
	CompressionType uint8
	ArtifactFormat  uint8
)

const (
	TypeRLE    EncodingType = 0x1 // TypeRLE represents (value, length) run-length pairs.
	TypeSparse EncodingType = 0x2 // TypeSparse represents (row, column, value) coordinate triples.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	FormatJSON   ArtifactFormat = 0x1 // FormatJSON represents the plain nested-list numeric format.
	FormatBinary ArtifactFormat = 0x2 // FormatBinary represents the header-framed binary envelope.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRLE:
		return "RLE"
	case TypeSparse:
		return "Sparse"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (f ArtifactFormat) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Ext returns the file extension used for artifacts in this format.
func (f ArtifactFormat) Ext() string {
	if f == FormatBinary {
		return ".dsa"
	}

	return ".json"
}

// ParseCompressionType parses a case-insensitive compression name.
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// ParseArtifactFormat parses a case-insensitive artifact format name.
func ParseArtifactFormat(s string) (ArtifactFormat, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "binary", "bin":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("unknown artifact format %q", s)
	}
}
