// Package dyescan simulates a microscope image of a tissue blob and a
// correlated dye sensor image, stores both in compact encodings and applies
// two threshold heuristics to the decoded images.
//
// # Encodings
//
// The blob image is mostly made of two long uniform regions, so it is stored
// as a run-length encoded stream: value, length, value, length... with every
// length at most 65535. Longer runs are split into consecutive runs of the
// same value.
//
// The dye image is sparse, so it is stored as a list of (row, col, 1)
// entries, one per set cell, in row-major order.
//
// Neither encoding records the image shape. Every decode call takes the
// shape explicitly.
//
// # Basic Usage
//
//	stream := dyescan.EncodeBlob(blob)
//	decoded, err := dyescan.DecodeBlob(stream, blob.Shape())
//
//	entries := dyescan.EncodeDye(dye)
//	decodedDye, err := dyescan.DecodeDye(entries, dye.Shape())
//
//	microscope, dyeSensor, err := dyescan.HasCancer(decoded, decodedDye)
//
// Running the whole scan, persisting artifacts under ./data:
//
//	res, err := dyescan.Run(ctx, "data", pipeline.WithSeed(42))
//	fmt.Println(res.Microscope, res.Dye)
//
// # Package Structure
//
// This package wraps the encoding, detect and pipeline packages for the
// common cases. Binary envelopes, artifact stores and visualization live in
// the persist and visualize packages.
package dyescan

import (
	"context"

	"github.com/arloliu/dyescan/detect"
	"github.com/arloliu/dyescan/encoding"
	"github.com/arloliu/dyescan/grid"
	"github.com/arloliu/dyescan/persist"
	"github.com/arloliu/dyescan/pipeline"
)

// EncodeBlob run-length encodes a microscope image.
func EncodeBlob(img *grid.Binary) []uint16 {
	return encoding.EncodeRLE(img)
}

// DecodeBlob rebuilds a microscope image of the given shape from its RLE
// stream.
func DecodeBlob(stream []uint16, shape grid.Shape) (*grid.Binary, error) {
	return encoding.DecodeRLE(stream, shape)
}

// EncodeDye lists the set cells of a dye sensor image.
func EncodeDye(img *grid.Binary) []encoding.Entry {
	return encoding.EncodeSparse(img)
}

// DecodeDye rebuilds a dye sensor image of the given shape from its entries.
func DecodeDye(entries []encoding.Entry, shape grid.Shape) (*grid.Binary, error) {
	return encoding.DecodeSparse(entries, shape)
}

// HasCancer applies the area heuristic to blob and, only when it is
// positive, the dye heuristic. dyeSensor is false whenever microscope is.
func HasCancer(blob, dye *grid.Binary) (microscope, dyeSensor bool, err error) {
	if !detect.HasCancerMicroscope(blob) {
		return false, false, nil
	}

	dyeSensor, err = detect.HasCancerDye(dye, blob)
	if err != nil {
		return true, false, err
	}

	return true, dyeSensor, nil
}

// Run executes one scan with artifacts stored as files under dataDir.
func Run(ctx context.Context, dataDir string, opts ...pipeline.Option) (pipeline.Result, error) {
	store, err := persist.NewDirStore(dataDir)
	if err != nil {
		return pipeline.Result{}, err
	}
	defer store.Close()

	p, err := pipeline.New(store, opts...)
	if err != nil {
		return pipeline.Result{}, err
	}

	return p.Run(ctx)
}
