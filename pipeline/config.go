package pipeline

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
	"github.com/arloliu/dyescan/generate"
	"github.com/arloliu/dyescan/grid"
	"github.com/arloliu/dyescan/internal/options"
	"github.com/arloliu/dyescan/persist"
	"github.com/arloliu/dyescan/visualize"
)

// DefaultShape is the image shape used when none is configured.
var DefaultShape = grid.NewShape(1000, 1000)

// Config holds the settings of a Pipeline.
type Config struct {
	shape    grid.Shape
	radius   generate.RadiusRange
	dyeRatio float64
	seed     int64
	seeded   bool

	artifactOpts []persist.ArtifactsOption
	sink         visualize.Sink
	logger       *log.Logger
}

// Option configures a Pipeline.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		shape:    DefaultShape,
		radius:   generate.DefaultRadiusRange(),
		dyeRatio: generate.DefaultDyeRatio,
		sink:     visualize.Discard,
		logger:   log.New(io.Discard, "", 0),
	}
}

// WithShape sets the image shape.
func WithShape(shape grid.Shape) Option {
	return options.New(func(c *Config) error {
		if err := shape.Validate(); err != nil {
			return err
		}
		c.shape = shape

		return nil
	})
}

// WithRadiusRange sets the range the blob radius is drawn from.
func WithRadiusRange(r generate.RadiusRange) Option {
	return options.NoError(func(c *Config) {
		c.radius = r
	})
}

// WithDyeRatio sets the base dye probability outside the blob.
func WithDyeRatio(ratio float64) Option {
	return options.NoError(func(c *Config) {
		c.dyeRatio = ratio
	})
}

// WithSeed fixes the random seed. Without it every run uses a
// time-derived seed, reported in Result.Seed.
func WithSeed(seed int64) Option {
	return options.NoError(func(c *Config) {
		c.seed = seed
		c.seeded = true
	})
}

// WithFormat selects the artifact format.
func WithFormat(f format.ArtifactFormat) Option {
	return options.NoError(func(c *Config) {
		c.artifactOpts = append(c.artifactOpts, persist.WithFormat(f))
	})
}

// WithCompression selects the payload compression of binary artifacts.
func WithCompression(comp format.CompressionType) Option {
	return options.NoError(func(c *Config) {
		c.artifactOpts = append(c.artifactOpts, persist.WithArtifactCompression(comp))
	})
}

// WithSink sets where decoded images are shown. A nil sink disables
// visualization.
func WithSink(sink visualize.Sink) Option {
	return options.NoError(func(c *Config) {
		if sink == nil {
			sink = visualize.Discard
		}
		c.sink = sink
	})
}

// WithLogger sets the logger for stage events.
func WithLogger(logger *log.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

func (c *Config) validate() error {
	if err := c.radius.Validate(c.shape); err != nil {
		return err
	}
	if math.IsNaN(c.dyeRatio) || c.dyeRatio < 0 || c.dyeRatio > 0.5 {
		return fmt.Errorf("%w: %v outside [0, 0.5]", errs.ErrInvalidDyeRatio, c.dyeRatio)
	}

	return nil
}

func (c *Config) runSeed() int64 {
	if c.seeded {
		return c.seed
	}

	return time.Now().UnixNano()
}
