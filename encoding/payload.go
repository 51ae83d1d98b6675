package encoding

import (
	"fmt"

	"github.com/arloliu/dyescan/endian"
	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/internal/pool"
)

const (
	// RLEPairSize is the encoded size of one (value, length) pair.
	RLEPairSize = 3
	// SparseEntrySize is the encoded size of one (row, col) entry. The value
	// is implied, every entry is a set cell.
	SparseEntrySize = 8
)

// RLEPayloadEncoder writes RLE pairs as 1-byte values followed by 2-byte
// lengths in the given byte order.
//
// The encoder borrows a pooled buffer; call Finish when done to return it.
type RLEPayloadEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewRLEPayloadEncoder creates an encoder using engine for the length field.
func NewRLEPayloadEncoder(engine endian.EndianEngine) *RLEPayloadEncoder {
	return &RLEPayloadEncoder{
		engine: engine,
		buf:    pool.GetPayloadBuffer(),
	}
}

// WriteStream appends all pairs of a flat RLE stream.
func (e *RLEPayloadEncoder) WriteStream(stream []uint16) error {
	runs, err := Runs(stream)
	if err != nil {
		return err
	}

	e.buf.Grow(len(runs) * RLEPairSize)
	for _, r := range runs {
		e.buf.B = append(e.buf.B, r.Value)
		e.buf.B = e.engine.AppendUint16(e.buf.B, r.Length)
	}
	e.count += len(runs)

	return nil
}

// Bytes returns the encoded payload. It is valid until Finish.
func (e *RLEPayloadEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of pairs written.
func (e *RLEPayloadEncoder) Len() int {
	return e.count
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *RLEPayloadEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
}

// DecodeRLEPayload parses count pairs from data back into a flat stream.
func DecodeRLEPayload(data []byte, count int, engine endian.EndianEngine) ([]uint16, error) {
	if count < 0 || len(data) != count*RLEPairSize {
		return nil, fmt.Errorf("%w: %d bytes for %d RLE pairs", errs.ErrInvalidPayloadSize, len(data), count)
	}

	stream := make([]uint16, 0, count*2)
	for off := 0; off < len(data); off += RLEPairSize {
		stream = append(stream, uint16(data[off]), engine.Uint16(data[off+1:off+3]))
	}

	return stream, nil
}

// SparsePayloadEncoder writes sparse entries as two 4-byte coordinates.
type SparsePayloadEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewSparsePayloadEncoder creates an encoder using engine for coordinates.
func NewSparsePayloadEncoder(engine endian.EndianEngine) *SparsePayloadEncoder {
	return &SparsePayloadEncoder{
		engine: engine,
		buf:    pool.GetPayloadBuffer(),
	}
}

// WriteEntries appends entries. Entries with a value other than 1 cannot be
// represented and yield ErrMalformedEntry.
func (e *SparsePayloadEncoder) WriteEntries(entries []Entry) error {
	e.buf.Grow(len(entries) * SparseEntrySize)
	for i, entry := range entries {
		if entry.Value != 1 {
			return fmt.Errorf("%w: entry %d has value %d", errs.ErrMalformedEntry, i, entry.Value)
		}
		e.buf.B = e.engine.AppendUint32(e.buf.B, entry.Row)
		e.buf.B = e.engine.AppendUint32(e.buf.B, entry.Col)
	}
	e.count += len(entries)

	return nil
}

// Bytes returns the encoded payload. It is valid until Finish.
func (e *SparsePayloadEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of entries written.
func (e *SparsePayloadEncoder) Len() int {
	return e.count
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *SparsePayloadEncoder) Finish() {
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
}

// DecodeSparsePayload parses count entries from data.
func DecodeSparsePayload(data []byte, count int, engine endian.EndianEngine) ([]Entry, error) {
	if count < 0 || len(data) != count*SparseEntrySize {
		return nil, fmt.Errorf("%w: %d bytes for %d sparse entries", errs.ErrInvalidPayloadSize, len(data), count)
	}

	entries := make([]Entry, 0, count)
	for off := 0; off < len(data); off += SparseEntrySize {
		entries = append(entries, Entry{
			Row:   engine.Uint32(data[off : off+4]),
			Col:   engine.Uint32(data[off+4 : off+8]),
			Value: 1,
		})
	}

	return entries, nil
}
