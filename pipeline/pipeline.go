// Package pipeline runs one scan end to end: generate a blob and a dye
// distribution, encode and persist both, load and decode them back, show the
// decoded images and apply the cancer heuristics.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arloliu/dyescan/detect"
	"github.com/arloliu/dyescan/encoding"
	"github.com/arloliu/dyescan/generate"
	"github.com/arloliu/dyescan/grid"
	"github.com/arloliu/dyescan/internal/options"
	"github.com/arloliu/dyescan/persist"
)

// Image titles passed to the sink.
const (
	MicroscopeTitle = "Microscope Image"
	DyeSensorTitle  = "Dye Sensor Image"
)

// Result is the outcome of a run.
type Result struct {
	Shape grid.Shape
	Seed  int64

	// Microscope is the area heuristic on the decoded blob.
	Microscope bool

	// Dye is the dye heuristic. It is only evaluated when Microscope is
	// true and is false otherwise.
	Dye          bool
	DyeEvaluated bool

	BlobArea int
	DyeCount int

	// Runs and Entries count the RLE pairs and sparse entries written,
	// BlobBytes and DyeBytes the stored artifact sizes.
	Runs      int
	Entries   int
	BlobBytes int
	DyeBytes  int

	// RoundTrip reports whether both decoded images equal the generated ones.
	RoundTrip bool
	Blob      *grid.Binary
	DyeImage  *grid.Binary
	Elapsed   time.Duration
}

// Pipeline wires a generator, an artifact store and a sink.
type Pipeline struct {
	cfg       *Config
	artifacts *persist.Artifacts

	dyeCheck func(dye, blob *grid.Binary) (bool, error)
}

// New creates a pipeline persisting through store.
func New(store persist.Store, opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	artifacts, err := persist.NewArtifacts(store, append(cfg.artifactOpts, persist.WithLogger(cfg.logger))...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		artifacts: artifacts,
		dyeCheck:  detect.HasCancerDye,
	}, nil
}

// Run executes all stages. The context is checked between stages.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	logger := p.cfg.logger
	res := Result{Shape: p.cfg.shape, Seed: p.cfg.runSeed()}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	logger.Printf("generate: shape=%s seed=%d", res.Shape, res.Seed)
	gen := generate.NewSeeded(res.Seed)
	blob, err := gen.Blob(res.Shape, p.cfg.radius)
	if err != nil {
		return res, fmt.Errorf("generate blob: %w", err)
	}
	dye, err := gen.Dye(blob, p.cfg.dyeRatio)
	if err != nil {
		return res, fmt.Errorf("generate dye: %w", err)
	}
	res.BlobArea, res.DyeCount = blob.Count(), dye.Count()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	logger.Printf("encode: format=%s", p.artifacts.Format())
	err = both(
		func() error {
			stream := encoding.EncodeRLE(blob)
			n, err := p.artifacts.SaveBlob(ctx, stream, res.Shape)
			res.Runs, res.BlobBytes = len(stream)/2, n

			return err
		},
		func() error {
			entries := encoding.EncodeSparse(dye)
			n, err := p.artifacts.SaveDye(ctx, entries, res.Shape)
			res.Entries, res.DyeBytes = len(entries), n

			return err
		},
	)
	if err != nil {
		return res, err
	}
	logger.Printf("encode: %d runs (%d bytes), %d entries (%d bytes)", res.Runs, res.BlobBytes, res.Entries, res.DyeBytes)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	var decodedBlob, decodedDye *grid.Binary
	err = both(
		func() error {
			stream, err := p.artifacts.LoadBlob(ctx, res.Shape)
			if err != nil {
				return err
			}
			decodedBlob, err = encoding.DecodeRLE(stream, res.Shape)
			if err != nil {
				return fmt.Errorf("decode %s: %w", persist.MicroscopeArtifact, err)
			}

			return nil
		},
		func() error {
			entries, err := p.artifacts.LoadDye(ctx, res.Shape)
			if err != nil {
				return err
			}
			decodedDye, err = encoding.DecodeSparse(entries, res.Shape)
			if err != nil {
				return fmt.Errorf("decode %s: %w", persist.DyeSensorArtifact, err)
			}

			return nil
		},
	)
	if err != nil {
		return res, err
	}
	res.Blob, res.DyeImage = decodedBlob, decodedDye
	res.RoundTrip = blob.Equal(decodedBlob) && dye.Equal(decodedDye)
	logger.Printf("decode: round trip equal=%v", res.RoundTrip)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := p.cfg.sink.Show(decodedBlob, MicroscopeTitle); err != nil {
		return res, fmt.Errorf("show %q: %w", MicroscopeTitle, err)
	}
	if err := p.cfg.sink.Show(decodedDye, DyeSensorTitle); err != nil {
		return res, fmt.Errorf("show %q: %w", DyeSensorTitle, err)
	}

	res.Microscope = detect.HasCancerMicroscope(decodedBlob)
	if res.Microscope {
		res.Dye, err = p.dyeCheck(decodedDye, decodedBlob)
		if err != nil {
			return res, err
		}
		res.DyeEvaluated = true
	}
	res.Elapsed = time.Since(start)
	logger.Printf("detect: microscope=%v dye=%v (evaluated=%v) in %s", res.Microscope, res.Dye, res.DyeEvaluated, res.Elapsed)

	return res, nil
}

// both runs a and b concurrently and returns the first error to occur.
func both(a, b func() error) error {
	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)

	for _, fn := range []func() error{a, b} {
		fn := fn
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				once.Do(func() { first = err })
			}
		}()
	}
	wg.Wait()

	return first
}
