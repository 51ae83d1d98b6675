// Package grid provides the binary image shared by the codecs, the generator,
// the heuristics and the visualization sink.
//
// A Binary image stores one byte per cell in a flat row-major slice. Every
// cell is either 0 or 1; Set normalizes any non-zero value to 1 so the
// codecs can rely on the binary invariant.
package grid

import (
	"fmt"
	"math"

	"github.com/arloliu/dyescan/errs"
)

// Shape is the (Height, Width) pair of an image.
//
// The shape is never embedded in the reference encodings, so it has to be
// passed to every decode call by the caller.
type Shape struct {
	Height int
	Width  int
}

// NewShape returns a Shape with the given dimensions.
func NewShape(height, width int) Shape {
	return Shape{Height: height, Width: width}
}

// Cells returns the number of cells, Height*Width.
func (s Shape) Cells() int {
	return s.Height * s.Width
}

// Validate reports ErrInvalidShape for negative dimensions and for shapes
// whose cell count does not fit an int.
func (s Shape) Validate() error {
	if s.Height < 0 || s.Width < 0 {
		return fmt.Errorf("%w: %s", errs.ErrInvalidShape, s)
	}
	if s.Width != 0 && s.Height > math.MaxInt/s.Width {
		return fmt.Errorf("%w: %s overflows the cell count", errs.ErrInvalidShape, s)
	}

	return nil
}

// Contains reports whether (row, col) lies within [0,H) x [0,W).
func (s Shape) Contains(row, col int) bool {
	return row >= 0 && row < s.Height && col >= 0 && col < s.Width
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// Binary is an H x W image of 0/1 cells.
type Binary struct {
	shape Shape
	pix   []uint8
}

// New returns a zero-filled image of the given shape.
func New(shape Shape) (*Binary, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &Binary{shape: shape, pix: make([]uint8, shape.Cells())}, nil
}

// MustNew is like New but panics on an invalid shape.
func MustNew(shape Shape) *Binary {
	b, err := New(shape)
	if err != nil {
		panic(err)
	}

	return b
}

// FromRows builds an image from a slice of rows. All rows must share the same
// length; non-zero cells are stored as 1.
func FromRows(rows [][]uint8) (*Binary, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	b, err := New(NewShape(len(rows), width))
	if err != nil {
		return nil, err
	}

	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", errs.ErrInvalidShape, r, len(row), width)
		}
		for c, v := range row {
			if v != 0 {
				b.pix[r*width+c] = 1
			}
		}
	}

	return b, nil
}

// FromPix wraps a flat row-major slice. The slice length must equal
// shape.Cells(); non-zero cells are normalized to 1 in place.
func FromPix(shape Shape, pix []uint8) (*Binary, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(pix) != shape.Cells() {
		return nil, fmt.Errorf("%w: %d cells for shape %s", errs.ErrShapeMismatch, len(pix), shape)
	}

	for i, v := range pix {
		if v != 0 {
			pix[i] = 1
		}
	}

	return &Binary{shape: shape, pix: pix}, nil
}

// Shape returns the image shape.
func (b *Binary) Shape() Shape {
	return b.shape
}

// Pix returns the flat row-major cells. The slice is shared with the image.
func (b *Binary) Pix() []uint8 {
	return b.pix
}

// At returns the cell at (row, col). It panics when the position is outside
// the image, like a slice index would.
func (b *Binary) At(row, col int) uint8 {
	if !b.shape.Contains(row, col) {
		panic(fmt.Sprintf("grid: At(%d, %d) outside %s", row, col, b.shape))
	}

	return b.pix[row*b.shape.Width+col]
}

// Set stores v at (row, col), normalizing any non-zero value to 1.
func (b *Binary) Set(row, col int, v uint8) {
	if !b.shape.Contains(row, col) {
		panic(fmt.Sprintf("grid: Set(%d, %d) outside %s", row, col, b.shape))
	}
	if v != 0 {
		v = 1
	}
	b.pix[row*b.shape.Width+col] = v
}

// Rows returns row views over the flat buffer; writes through them are
// visible in the image.
func (b *Binary) Rows() [][]uint8 {
	w := b.shape.Width
	rows := make([][]uint8, b.shape.Height)
	for r := range rows {
		rows[r] = b.pix[r*w : (r+1)*w : (r+1)*w]
	}

	return rows
}

// Count returns the number of set cells.
func (b *Binary) Count() int {
	n := 0
	for _, v := range b.pix {
		n += int(v)
	}

	return n
}

// CountAnd returns the number of cells set in both b and other.
func (b *Binary) CountAnd(other *Binary) (int, error) {
	if b.shape != other.shape {
		return 0, fmt.Errorf("%w: %s vs %s", errs.ErrShapeMismatch, b.shape, other.shape)
	}

	n := 0
	for i, v := range b.pix {
		n += int(v & other.pix[i])
	}

	return n, nil
}

// Equal reports whether both images have the same shape and cells.
func (b *Binary) Equal(other *Binary) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.shape != other.shape {
		return false
	}
	for i, v := range b.pix {
		if other.pix[i] != v {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the image.
func (b *Binary) Clone() *Binary {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)

	return &Binary{shape: b.shape, pix: pix}
}
