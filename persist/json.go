package persist

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/dyescan/encoding"
	"github.com/arloliu/dyescan/errs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalRLE renders an RLE stream as a flat JSON number list.
func MarshalRLE(stream []uint16) ([]byte, error) {
	if stream == nil {
		stream = []uint16{}
	}

	return json.Marshal(stream)
}

// UnmarshalRLE parses a flat JSON number list into an RLE stream. Pairing
// is validated by the decoder, not here.
func UnmarshalRLE(data []byte) ([]uint16, error) {
	var stream []uint16
	if err := json.Unmarshal(data, &stream); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedStream, err)
	}

	return stream, nil
}

// MarshalSparse renders sparse entries as a JSON list of [row, col, value]
// triples.
func MarshalSparse(entries []encoding.Entry) ([]byte, error) {
	flat := encoding.FlattenEntries(entries)
	triples := make([][]uint32, 0, len(entries))
	for i := 0; i < len(flat); i += 3 {
		triples = append(triples, flat[i:i+3:i+3])
	}

	return json.Marshal(triples)
}

// UnmarshalSparse parses a JSON list of triples. An inner list that is not
// exactly three numbers long yields ErrMalformedStream.
func UnmarshalSparse(data []byte) ([]encoding.Entry, error) {
	var triples [][]uint32
	if err := json.Unmarshal(data, &triples); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedStream, err)
	}

	flat := make([]uint32, 0, len(triples)*3)
	for i, t := range triples {
		if len(t) != 3 {
			return nil, fmt.Errorf("%w: triple %d has %d items", errs.ErrMalformedStream, i, len(t))
		}
		flat = append(flat, t...)
	}

	return encoding.ParseEntries(flat)
}
