// Package errs defines the sentinel errors returned by dyescan packages.
//
// Callers wrap these with fmt.Errorf("...: %w", err) to add context and test
// for them with errors.Is.
package errs

import "errors"

// Codec errors.
var (
	// ErrOutOfBounds is returned when a sparse entry or an RLE run references a
	// cell outside the declared shape.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrMalformedStream is returned for an RLE stream with an odd number of
	// items, a zero-length run or a non-binary value.
	ErrMalformedStream = errors.New("malformed stream")
	// ErrMalformedEntry is returned for a sparse entry whose value is not 1.
	ErrMalformedEntry = errors.New("malformed sparse entry")
	// ErrShapeMismatch is returned when two shapes that must agree do not.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidShape is returned for negative or ragged dimensions.
	ErrInvalidShape = errors.New("invalid shape")
)

// Generator errors.
var (
	ErrInvalidRadius   = errors.New("invalid radius range")
	ErrInvalidDyeRatio = errors.New("invalid dye ratio")
)

// Artifact envelope errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrInvalidPayloadSize = errors.New("invalid payload size")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// Store errors.
var (
	ErrArtifactNotFound    = errors.New("artifact not found")
	ErrInvalidArtifactName = errors.New("invalid artifact name")
)
