package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/grid"
)

// MaxRunLength is the longest run a single (value, length) pair can carry.
const MaxRunLength = math.MaxUint16

// Run is a single (value, length) pair of an RLE stream.
type Run struct {
	Value  uint8
	Length uint16
}

// EncodeRunsOf scans items left to right and calls emit once per run.
//
// Only equality is used to detect runs. A run reaching MaxRunLength is
// flushed and a new run with the same value is started. Nothing is emitted
// for an empty input.
func EncodeRunsOf[T comparable](items []T, emit func(value T, length uint16)) {
	if len(items) == 0 {
		return
	}

	current := items[0]
	runLen := 0
	for _, item := range items {
		if item == current && runLen < MaxRunLength {
			runLen++
			continue
		}

		emit(current, uint16(runLen)) //nolint: gosec
		current = item
		runLen = 1
	}

	emit(current, uint16(runLen)) //nolint: gosec
}

// EncodeRLE encodes a binary image into a flat RLE stream of alternating
// value and length items.
//
// Parameters:
//   - img: Image to encode, flattened in row-major order
//
// Returns:
//   - []uint16: The stream; nil for an image without cells
func EncodeRLE(img *grid.Binary) []uint16 {
	var stream []uint16
	EncodeRunsOf(img.Pix(), func(value uint8, length uint16) {
		stream = append(stream, uint16(value), length)
	})

	return stream
}

// Runs views a flat stream as (value, length) pairs.
//
// Returns ErrMalformedStream when the stream has an odd number of items or a
// value that does not fit a pixel.
func Runs(stream []uint16) ([]Run, error) {
	if len(stream)%2 != 0 {
		return nil, fmt.Errorf("%w: odd item count %d", errs.ErrMalformedStream, len(stream))
	}

	runs := make([]Run, 0, len(stream)/2)
	for i := 0; i < len(stream); i += 2 {
		if stream[i] > math.MaxUint8 {
			return nil, fmt.Errorf("%w: value %d at pair %d", errs.ErrMalformedStream, stream[i], i/2)
		}
		runs = append(runs, Run{Value: uint8(stream[i]), Length: stream[i+1]})
	}

	return runs, nil
}

// FlattenRuns is the inverse of Runs.
func FlattenRuns(runs []Run) []uint16 {
	if len(runs) == 0 {
		return nil
	}

	stream := make([]uint16, 0, len(runs)*2)
	for _, r := range runs {
		stream = append(stream, uint16(r.Value), r.Length)
	}

	return stream
}

// RunLengthSum returns the total number of cells covered by the stream,
// ignoring an unpaired trailing item.
func RunLengthSum(stream []uint16) int {
	total := 0
	for i := 1; i < len(stream); i += 2 {
		total += int(stream[i])
	}

	return total
}

// DecodeRLE rebuilds an image of the given shape from a flat RLE stream.
//
// The stream is validated completely before anything is written: an odd item
// count, a zero-length run or a non-binary value yields ErrMalformedStream,
// and runs extending past shape.Cells() yield ErrOutOfBounds. Run boundaries
// come from a prefix sum of the lengths, then each [start, end) span is
// filled.
//
// When the lengths sum to fewer cells than the shape holds, the remaining
// cells stay zero.
func DecodeRLE(stream []uint16, shape grid.Shape) (*grid.Binary, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(stream)%2 != 0 {
		return nil, fmt.Errorf("%w: odd item count %d", errs.ErrMalformedStream, len(stream))
	}

	cells := shape.Cells()
	ends := make([]int, len(stream)/2)
	cursor := 0
	for i := range ends {
		value, length := stream[2*i], stream[2*i+1]
		if value > 1 {
			return nil, fmt.Errorf("%w: non-binary value %d at pair %d", errs.ErrMalformedStream, value, i)
		}
		if length == 0 {
			return nil, fmt.Errorf("%w: zero-length run at pair %d", errs.ErrMalformedStream, i)
		}

		cursor += int(length)
		if cursor > cells {
			return nil, fmt.Errorf("%w: run %d ends at cell %d, shape %s has %d cells",
				errs.ErrOutOfBounds, i, cursor, shape, cells)
		}
		ends[i] = cursor
	}

	img, err := grid.New(shape)
	if err != nil {
		return nil, err
	}

	pix := img.Pix()
	start := 0
	for i, end := range ends {
		if stream[2*i] == 1 {
			fill(pix[start:end], 1)
		}
		start = end
	}

	return img, nil
}

func fill(dst []uint8, v uint8) {
	if len(dst) == 0 {
		return
	}

	dst[0] = v
	for filled := 1; filled < len(dst); filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}
