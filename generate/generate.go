// Package generate produces the simulated microscope and dye sensor images.
//
// All randomness comes from an injected *rand.Rand, so a fixed seed always
// yields the same pair of images.
package generate

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/grid"
)

// Defaults used when the caller does not configure the generator.
const (
	DefaultMinRadius = 100
	DefaultMaxRadius = 400
	DefaultDyeRatio  = 0.1
)

// RadiusRange is the half-open interval [Min, Max) the blob radius is drawn
// from.
type RadiusRange struct {
	Min int
	Max int
}

// DefaultRadiusRange returns [100, 400).
func DefaultRadiusRange() RadiusRange {
	return RadiusRange{Min: DefaultMinRadius, Max: DefaultMaxRadius}
}

// Validate checks that the range is non-empty and that a disk of any radius
// in it fits fully inside shape.
func (r RadiusRange) Validate(shape grid.Shape) error {
	if r.Min < 0 || r.Max <= r.Min {
		return fmt.Errorf("%w: [%d, %d)", errs.ErrInvalidRadius, r.Min, r.Max)
	}

	largest := r.Max - 1
	if 2*largest >= shape.Width || 2*largest >= shape.Height {
		return fmt.Errorf("%w: radius up to %d does not fit %s", errs.ErrInvalidRadius, largest, shape)
	}

	return nil
}

// Generator draws blobs and dye distributions. It is not safe for
// concurrent use because *rand.Rand is not.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeeded returns a generator over a fresh source seeded with seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// Blob returns an image holding one filled disk. The radius is uniform in
// the range and the centre is uniform over the positions that keep the disk
// inside the image.
func (g *Generator) Blob(shape grid.Shape, radius RadiusRange) (*grid.Binary, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if err := radius.Validate(shape); err != nil {
		return nil, err
	}

	r := radius.Min + g.rng.Intn(radius.Max-radius.Min)
	cx := r + g.rng.Intn(shape.Width-2*r)
	cy := r + g.rng.Intn(shape.Height-2*r)

	return Disk(shape, cx, cy, r)
}

// Disk returns an image where a cell is set iff its Euclidean distance to
// (cx, cy) is at most r. Parts of the disk outside the image are clipped.
func Disk(shape grid.Shape, cx, cy, r int) (*grid.Binary, error) {
	img, err := grid.New(shape)
	if err != nil {
		return nil, err
	}
	if r < 0 {
		return nil, fmt.Errorf("%w: negative radius %d", errs.ErrInvalidRadius, r)
	}

	rr := r * r
	for y := max(cy-r, 0); y <= min(cy+r, shape.Height-1); y++ {
		dy := y - cy
		half := isqrt(rr - dy*dy)
		lo, hi := max(cx-half, 0), min(cx+half, shape.Width-1)
		if lo > hi {
			continue
		}
		row := img.Pix()[y*shape.Width : (y+1)*shape.Width]
		for x := lo; x <= hi; x++ {
			row[x] = 1
		}
	}

	return img, nil
}

// isqrt returns the largest x with x*x <= n.
func isqrt(n int) int {
	x := int(math.Sqrt(float64(n)))
	for x*x > n {
		x--
	}
	for (x+1)*(x+1) <= n {
		x++
	}

	return x
}

// Dye returns a dye distribution correlated with blob: a cell inside the
// blob is dyed with probability 2*ratio, a cell outside with probability
// ratio. ratio must lie in [0, 0.5].
func (g *Generator) Dye(blob *grid.Binary, ratio float64) (*grid.Binary, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 0.5 {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidDyeRatio, ratio)
	}

	dye, err := grid.New(blob.Shape())
	if err != nil {
		return nil, err
	}

	inside, outside := 2*ratio, ratio
	out := dye.Pix()
	for i, v := range blob.Pix() {
		p := outside
		if v == 1 {
			p = inside
		}
		if g.rng.Float64() < p {
			out[i] = 1
		}
	}

	return dye, nil
}
