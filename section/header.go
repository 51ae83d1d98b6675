package section

import (
	"fmt"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
	"github.com/arloliu/dyescan/grid"
)

// Header is the fixed-size header at the start of a binary artifact.
type Header struct {
	Flag           ArtifactFlag // byte offset 0-3
	Height         uint32       // byte offset 4-7
	Width          uint32       // byte offset 8-11
	ItemCount      uint32       // byte offset 12-15
	PayloadSize    uint32       // byte offset 16-19
	CompressedSize uint32       // byte offset 20-23
	Checksum       uint64       // byte offset 24-31
}

// NewHeader creates a header for an image of the given shape. Counts, sizes
// and checksum are filled in once the payload is known.
func NewHeader(enc format.EncodingType, comp format.CompressionType, shape grid.Shape) (*Header, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}

	return &Header{
		Flag:   NewArtifactFlag(enc, comp),
		Height: uint32(shape.Height), //nolint: gosec
		Width:  uint32(shape.Width),  //nolint: gosec
	}, nil
}

// Shape returns the image shape recorded in the header.
func (h *Header) Shape() grid.Shape {
	return grid.NewShape(int(h.Height), int(h.Width))
}

// CheckShape returns ErrShapeMismatch when the recorded shape differs from
// the one the caller wants to decode into.
func (h *Header) CheckShape(want grid.Shape) error {
	if got := h.Shape(); got != want {
		return fmt.Errorf("%w: artifact is %s, decode requested %s", errs.ErrShapeMismatch, got, want)
	}

	return nil
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian; it tells how to read the rest.
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.Height = engine.Uint32(data[4:8])
	h.Width = engine.Uint32(data[8:12])
	h.ItemCount = engine.Uint32(data[12:16])
	h.PayloadSize = engine.Uint32(data[16:20])
	h.CompressedSize = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return checkShape(h.Shape())
}

// Bytes serializes the header into HeaderSize bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.EncodingType
	b[3] = h.Flag.CompressionType

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[4:8], h.Height)
	engine.PutUint32(b[8:12], h.Width)
	engine.PutUint32(b[12:16], h.ItemCount)
	engine.PutUint32(b[16:20], h.PayloadSize)
	engine.PutUint32(b[20:24], h.CompressedSize)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

func checkShape(shape grid.Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if shape.Height > MaxDimension || shape.Width > MaxDimension {
		return fmt.Errorf("%w: %s exceeds %d per side", errs.ErrInvalidShape, shape, MaxDimension)
	}

	return nil
}
