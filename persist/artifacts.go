package persist

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/arloliu/dyescan/encoding"
	"github.com/arloliu/dyescan/format"
	"github.com/arloliu/dyescan/grid"
	"github.com/arloliu/dyescan/internal/options"
)

// Artifact roles.
const (
	MicroscopeArtifact = "microscope"
	DyeSensorArtifact  = "dye_sensor"
)

// Artifacts saves and loads the two encoded images of a run.
type Artifacts struct {
	store       Store
	format      format.ArtifactFormat
	compression format.CompressionType
	bigEndian   bool
	logger      *log.Logger
}

// ArtifactsOption configures Artifacts.
type ArtifactsOption = options.Option[*Artifacts]

// WithFormat selects the artifact format. The default is JSON.
func WithFormat(f format.ArtifactFormat) ArtifactsOption {
	return options.New(func(a *Artifacts) error {
		switch f {
		case format.FormatJSON, format.FormatBinary:
			a.format = f
			return nil
		default:
			return fmt.Errorf("invalid artifact format: %s", f)
		}
	})
}

// WithArtifactCompression selects the payload compression of binary
// artifacts. It has no effect on JSON artifacts.
func WithArtifactCompression(comp format.CompressionType) ArtifactsOption {
	return options.New(func(a *Artifacts) error {
		if _, err := newEnvelopeConfig(WithCompression(comp)); err != nil {
			return err
		}
		a.compression = comp

		return nil
	})
}

// WithArtifactBigEndian writes binary artifacts in big-endian order.
func WithArtifactBigEndian() ArtifactsOption {
	return options.NoError(func(a *Artifacts) {
		a.bigEndian = true
	})
}

// WithLogger sets the logger for save/load events.
func WithLogger(logger *log.Logger) ArtifactsOption {
	return options.NoError(func(a *Artifacts) {
		if logger != nil {
			a.logger = logger
		}
	})
}

// NewArtifacts binds a store to an artifact format.
func NewArtifacts(store Store, opts ...ArtifactsOption) (*Artifacts, error) {
	a := &Artifacts{
		store:       store,
		format:      format.FormatJSON,
		compression: format.CompressionZstd,
		logger:      log.New(io.Discard, "", 0),
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	return a, nil
}

// Format returns the configured artifact format.
func (a *Artifacts) Format() format.ArtifactFormat {
	return a.format
}

// Name returns the stored name of an artifact role, e.g. "microscope.json".
func (a *Artifacts) Name(role string) string {
	return role + a.format.Ext()
}

func (a *Artifacts) envelopeOptions() []EnvelopeOption {
	opts := []EnvelopeOption{WithCompression(a.compression)}
	if a.bigEndian {
		opts = append(opts, WithBigEndian())
	}

	return opts
}

// SaveBlob stores the RLE stream of the blob image. It returns the number
// of bytes written.
func (a *Artifacts) SaveBlob(ctx context.Context, stream []uint16, shape grid.Shape) (int, error) {
	var (
		data []byte
		err  error
	)
	if a.format == format.FormatBinary {
		data, err = EncodeRLEEnvelope(stream, shape, a.envelopeOptions()...)
	} else {
		data, err = MarshalRLE(stream)
	}
	if err != nil {
		return 0, fmt.Errorf("encode %s artifact: %w", MicroscopeArtifact, err)
	}

	return a.put(ctx, MicroscopeArtifact, data)
}

// LoadBlob reads the RLE stream of the blob image. For binary artifacts the
// recorded shape must equal shape.
func (a *Artifacts) LoadBlob(ctx context.Context, shape grid.Shape) ([]uint16, error) {
	data, err := a.get(ctx, MicroscopeArtifact)
	if err != nil {
		return nil, err
	}

	var stream []uint16
	if a.format == format.FormatBinary {
		stream, err = DecodeRLEEnvelope(data, shape)
	} else {
		stream, err = UnmarshalRLE(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s artifact: %w", MicroscopeArtifact, err)
	}

	return stream, nil
}

// SaveDye stores the sparse entries of the dye image. It returns the number
// of bytes written.
func (a *Artifacts) SaveDye(ctx context.Context, entries []encoding.Entry, shape grid.Shape) (int, error) {
	var (
		data []byte
		err  error
	)
	if a.format == format.FormatBinary {
		data, err = EncodeSparseEnvelope(entries, shape, a.envelopeOptions()...)
	} else {
		data, err = MarshalSparse(entries)
	}
	if err != nil {
		return 0, fmt.Errorf("encode %s artifact: %w", DyeSensorArtifact, err)
	}

	return a.put(ctx, DyeSensorArtifact, data)
}

// LoadDye reads the sparse entries of the dye image. For binary artifacts
// the recorded shape must equal shape.
func (a *Artifacts) LoadDye(ctx context.Context, shape grid.Shape) ([]encoding.Entry, error) {
	data, err := a.get(ctx, DyeSensorArtifact)
	if err != nil {
		return nil, err
	}

	var entries []encoding.Entry
	if a.format == format.FormatBinary {
		entries, err = DecodeSparseEnvelope(data, shape)
	} else {
		entries, err = UnmarshalSparse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s artifact: %w", DyeSensorArtifact, err)
	}

	return entries, nil
}

func (a *Artifacts) put(ctx context.Context, role string, data []byte) (int, error) {
	name := a.Name(role)
	if err := a.store.Put(ctx, name, data); err != nil {
		return 0, fmt.Errorf("save %s: %w", name, err)
	}
	a.logger.Printf("saved %s (%d bytes)", name, len(data))

	return len(data), nil
}

func (a *Artifacts) get(ctx context.Context, role string) ([]byte, error) {
	name := a.Name(role)
	data, err := a.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	a.logger.Printf("loaded %s (%d bytes)", name, len(data))

	return data, nil
}
