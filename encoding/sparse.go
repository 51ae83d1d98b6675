package encoding

import (
	"fmt"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/grid"
)

// Entry is one set cell of a sparse coordinate list. Value is always 1.
type Entry struct {
	Row   uint32
	Col   uint32
	Value uint8
}

// EncodeSparse lists every set cell of img in row-major order.
//
// The entry count equals img.Count(); an all-zero image yields an empty list.
func EncodeSparse(img *grid.Binary) []Entry {
	shape := img.Shape()
	pix := img.Pix()

	entries := make([]Entry, 0, img.Count())
	for i, v := range pix {
		if v == 0 {
			continue
		}
		entries = append(entries, Entry{
			Row:   uint32(i / shape.Width), //nolint: gosec
			Col:   uint32(i % shape.Width), //nolint: gosec
			Value: 1,
		})
	}

	return entries
}

// DecodeSparse scatters entries into a zeroed image of the given shape.
//
// Every entry is checked before the first write: a position outside shape
// yields ErrOutOfBounds and a value other than 1 yields ErrMalformedEntry.
// Entry order does not matter and a repeated position is written twice with
// the same value.
func DecodeSparse(entries []Entry, shape grid.Shape) (*grid.Binary, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	for i, e := range entries {
		if !shape.Contains(int(e.Row), int(e.Col)) {
			return nil, fmt.Errorf("%w: entry %d at (%d, %d), shape %s",
				errs.ErrOutOfBounds, i, e.Row, e.Col, shape)
		}
		if e.Value != 1 {
			return nil, fmt.Errorf("%w: entry %d has value %d", errs.ErrMalformedEntry, i, e.Value)
		}
	}

	img, err := grid.New(shape)
	if err != nil {
		return nil, err
	}

	pix := img.Pix()
	for _, e := range entries {
		pix[int(e.Row)*shape.Width+int(e.Col)] = e.Value
	}

	return img, nil
}

// FlattenEntries returns the entries as consecutive (row, col, value) items.
func FlattenEntries(entries []Entry) []uint32 {
	flat := make([]uint32, 0, len(entries)*3)
	for _, e := range entries {
		flat = append(flat, e.Row, e.Col, uint32(e.Value))
	}

	return flat
}

// ParseEntries is the inverse of FlattenEntries. It returns
// ErrMalformedStream when the item count is not a multiple of three and
// ErrMalformedEntry when a value does not fit a pixel.
func ParseEntries(flat []uint32) ([]Entry, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("%w: %d items is not a multiple of 3", errs.ErrMalformedStream, len(flat))
	}

	entries := make([]Entry, 0, len(flat)/3)
	for i := 0; i < len(flat); i += 3 {
		if flat[i+2] > 1 {
			return nil, fmt.Errorf("%w: entry %d has value %d", errs.ErrMalformedEntry, i/3, flat[i+2])
		}
		entries = append(entries, Entry{Row: flat[i], Col: flat[i+1], Value: uint8(flat[i+2])})
	}

	return entries, nil
}
