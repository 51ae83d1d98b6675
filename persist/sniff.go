package persist

import (
	"bytes"
	"fmt"

	"github.com/arloliu/dyescan/encoding"
	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
	"github.com/arloliu/dyescan/grid"
)

// Kind describes a stored artifact without decoding its cells.
type Kind struct {
	Format   format.ArtifactFormat
	Encoding format.EncodingType
	// Items is the number of RLE pairs or sparse entries.
	Items int
}

// Sniff tells a binary envelope from a JSON artifact and, for JSON, a flat
// RLE list from a list of sparse triples. An empty JSON list is reported as
// RLE; it decodes to the same all-zero image either way.
func Sniff(data []byte) (Kind, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		header, err := InspectEnvelope(data)
		if err != nil {
			return Kind{}, err
		}

		return Kind{Format: format.FormatBinary, Encoding: header.Flag.Encoding(), Items: int(header.ItemCount)}, nil
	}

	if stream, err := UnmarshalRLE(trimmed); err == nil {
		return Kind{Format: format.FormatJSON, Encoding: format.TypeRLE, Items: len(stream) / 2}, nil
	}
	entries, err := UnmarshalSparse(trimmed)
	if err != nil {
		return Kind{}, err
	}

	return Kind{Format: format.FormatJSON, Encoding: format.TypeSparse, Items: len(entries)}, nil
}

// DecodeImage decodes any stored artifact into an image of the given shape.
func DecodeImage(data []byte, shape grid.Shape) (*grid.Binary, Kind, error) {
	kind, err := Sniff(data)
	if err != nil {
		return nil, Kind{}, err
	}

	var img *grid.Binary
	switch {
	case kind.Format == format.FormatBinary && kind.Encoding == format.TypeRLE:
		var stream []uint16
		if stream, err = DecodeRLEEnvelope(data, shape); err == nil {
			img, err = encoding.DecodeRLE(stream, shape)
		}
	case kind.Format == format.FormatBinary:
		var entries []encoding.Entry
		if entries, err = DecodeSparseEnvelope(data, shape); err == nil {
			img, err = encoding.DecodeSparse(entries, shape)
		}
	case kind.Encoding == format.TypeRLE:
		var stream []uint16
		if stream, err = UnmarshalRLE(data); err == nil {
			img, err = encoding.DecodeRLE(stream, shape)
		}
	case kind.Encoding == format.TypeSparse:
		var entries []encoding.Entry
		if entries, err = UnmarshalSparse(data); err == nil {
			img, err = encoding.DecodeSparse(entries, shape)
		}
	default:
		err = fmt.Errorf("%w: unknown encoding %s", errs.ErrInvalidHeaderFlags, kind.Encoding)
	}
	if err != nil {
		return nil, kind, err
	}

	return img, kind, nil
}
