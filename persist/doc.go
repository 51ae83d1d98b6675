// Package persist stores encoded images as artifacts.
//
// Two artifact formats are supported:
//
//   - JSON: the plain interchange format. An RLE stream is a flat list of
//     numbers [v, l, v, l, ...] and a sparse list is a list of triples
//     [[row, col, 1], ...]. The image shape is not recorded and must be
//     supplied when decoding.
//   - Binary: a section.Header followed by the compressed payload. The header
//     records the shape, so loading it with a different shape fails with
//     errs.ErrShapeMismatch, and a checksum that catches corruption.
//
// Artifacts are kept in a Store, either a directory with one file per
// artifact (DirStore) or a SQLite database (SQLiteStore). Artifacts ties a
// store and a format together and names artifacts by role: "microscope"
// for the RLE-encoded blob and "dye_sensor" for the sparse dye image.
package persist
