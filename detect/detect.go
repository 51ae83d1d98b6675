// Package detect implements the two fixed-threshold cancer heuristics.
//
// Both functions are pure reducers over decoded images. Deciding whether the
// dye check runs at all is left to the caller.
package detect

import (
	"fmt"

	"github.com/arloliu/dyescan/grid"
)

const (
	// AreaThreshold is the share of the image the blob must exceed.
	AreaThreshold = 0.25
	// DyeThreshold is the share of the blob the dyed cells inside it must exceed.
	DyeThreshold = 0.10
)

// HasCancerMicroscope reports whether the blob covers strictly more than
// AreaThreshold of the image. An empty image reports false.
func HasCancerMicroscope(blob *grid.Binary) bool {
	return float64(blob.Count()) > AreaThreshold*float64(blob.Shape().Cells())
}

// HasCancerDye reports whether the dyed cells inside the blob are strictly
// more than DyeThreshold of the blob area. An empty blob reports false.
func HasCancerDye(dye, blob *grid.Binary) (bool, error) {
	inside, err := dye.CountAnd(blob)
	if err != nil {
		return false, fmt.Errorf("dye heuristic: %w", err)
	}

	return float64(inside) > DyeThreshold*float64(blob.Count()), nil
}
