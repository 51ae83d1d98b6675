package persist

import (
	"fmt"
	"math"

	"github.com/arloliu/dyescan/compress"
	"github.com/arloliu/dyescan/encoding"
	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
	"github.com/arloliu/dyescan/grid"
	"github.com/arloliu/dyescan/internal/hash"
	"github.com/arloliu/dyescan/internal/options"
	"github.com/arloliu/dyescan/section"
)

// EnvelopeConfig controls how binary artifacts are written.
type EnvelopeConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

// EnvelopeOption configures an EnvelopeConfig.
type EnvelopeOption = options.Option[*EnvelopeConfig]

// WithCompression selects the payload compression. The default is Zstd.
func WithCompression(comp format.CompressionType) EnvelopeOption {
	return options.New(func(c *EnvelopeConfig) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return err
		}
		c.compression = comp

		return nil
	})
}

// WithBigEndian writes header fields and payload in big-endian order.
func WithBigEndian() EnvelopeOption {
	return options.NoError(func(c *EnvelopeConfig) {
		c.bigEndian = true
	})
}

func newEnvelopeConfig(opts ...EnvelopeOption) (*EnvelopeConfig, error) {
	cfg := &EnvelopeConfig{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EncodeRLEEnvelope wraps an RLE stream of an image with the given shape in
// a binary artifact.
func EncodeRLEEnvelope(stream []uint16, shape grid.Shape, opts ...EnvelopeOption) ([]byte, error) {
	cfg, err := newEnvelopeConfig(opts...)
	if err != nil {
		return nil, err
	}

	header, err := newEnvelopeHeader(format.TypeRLE, shape, cfg)
	if err != nil {
		return nil, err
	}

	enc := encoding.NewRLEPayloadEncoder(header.Flag.GetEndianEngine())
	defer enc.Finish()

	if err := enc.WriteStream(stream); err != nil {
		return nil, err
	}

	return seal(header, enc.Bytes(), enc.Len())
}

// EncodeSparseEnvelope wraps sparse entries of an image with the given shape
// in a binary artifact.
func EncodeSparseEnvelope(entries []encoding.Entry, shape grid.Shape, opts ...EnvelopeOption) ([]byte, error) {
	cfg, err := newEnvelopeConfig(opts...)
	if err != nil {
		return nil, err
	}

	header, err := newEnvelopeHeader(format.TypeSparse, shape, cfg)
	if err != nil {
		return nil, err
	}

	enc := encoding.NewSparsePayloadEncoder(header.Flag.GetEndianEngine())
	defer enc.Finish()

	if err := enc.WriteEntries(entries); err != nil {
		return nil, err
	}

	return seal(header, enc.Bytes(), enc.Len())
}

// DecodeRLEEnvelope extracts the RLE stream from a binary artifact after
// checking that it was written for shape.
func DecodeRLEEnvelope(data []byte, shape grid.Shape) ([]uint16, error) {
	header, payload, err := open(data, format.TypeRLE, shape)
	if err != nil {
		return nil, err
	}

	return encoding.DecodeRLEPayload(payload, int(header.ItemCount), header.Flag.GetEndianEngine())
}

// DecodeSparseEnvelope extracts the sparse entries from a binary artifact
// after checking that it was written for shape.
func DecodeSparseEnvelope(data []byte, shape grid.Shape) ([]encoding.Entry, error) {
	header, payload, err := open(data, format.TypeSparse, shape)
	if err != nil {
		return nil, err
	}

	return encoding.DecodeSparsePayload(payload, int(header.ItemCount), header.Flag.GetEndianEngine())
}

// InspectEnvelope parses and validates the header of a binary artifact
// without decompressing the payload.
func InspectEnvelope(data []byte) (section.Header, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, err
	}
	if want := section.HeaderSize + int(header.CompressedSize); len(data) != want {
		return section.Header{}, fmt.Errorf("%w: artifact has %d bytes, header announces %d",
			errs.ErrInvalidPayloadSize, len(data), want)
	}

	return header, nil
}

func newEnvelopeHeader(enc format.EncodingType, shape grid.Shape, cfg *EnvelopeConfig) (*section.Header, error) {
	header, err := section.NewHeader(enc, cfg.compression, shape)
	if err != nil {
		return nil, err
	}
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}

	return header, nil
}

func seal(header *section.Header, payload []byte, count int) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 || uint64(count) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes is too large", errs.ErrInvalidPayloadSize, len(payload))
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}

	packed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}
	if uint64(len(packed)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: compressed payload of %d bytes is too large", errs.ErrInvalidPayloadSize, len(packed))
	}

	header.ItemCount = uint32(count)            //nolint: gosec
	header.PayloadSize = uint32(len(payload))   //nolint: gosec
	header.CompressedSize = uint32(len(packed)) //nolint: gosec
	header.Checksum = hash.Checksum(payload)

	out := make([]byte, 0, section.HeaderSize+len(packed))
	out = append(out, header.Bytes()...)
	out = append(out, packed...)

	return out, nil
}

// checkPayloadSize ties the announced payload size to the item count before
// any buffer of that size is allocated.
func checkPayloadSize(header section.Header) error {
	itemSize := uint64(encoding.SparseEntrySize)
	if header.Flag.Encoding() == format.TypeRLE {
		itemSize = encoding.RLEPairSize
	}
	if want := uint64(header.ItemCount) * itemSize; uint64(header.PayloadSize) != want {
		return fmt.Errorf("%w: header announces %d bytes for %d items, want %d",
			errs.ErrInvalidPayloadSize, header.PayloadSize, header.ItemCount, want)
	}

	return nil
}

func open(data []byte, want format.EncodingType, shape grid.Shape) (section.Header, []byte, error) {
	header, err := InspectEnvelope(data)
	if err != nil {
		return section.Header{}, nil, err
	}
	if got := header.Flag.Encoding(); got != want {
		return section.Header{}, nil, fmt.Errorf("%w: artifact holds %s, want %s", errs.ErrInvalidHeaderFlags, got, want)
	}
	if err := header.CheckShape(shape); err != nil {
		return section.Header{}, nil, err
	}
	if err := checkPayloadSize(header); err != nil {
		return section.Header{}, nil, err
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return section.Header{}, nil, err
	}

	payload, err := codec.Decompress(data[section.HeaderSize:], int(header.PayloadSize))
	if err != nil {
		return section.Header{}, nil, err
	}
	if sum := hash.Checksum(payload); sum != header.Checksum {
		return section.Header{}, nil, fmt.Errorf("%w: payload 0x%016X, header 0x%016X", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	return header, payload, nil
}
