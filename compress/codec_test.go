package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dyescan/errs"
	"github.com/arloliu/dyescan/format"
)

// rlePayloadLike mimics an RLE payload of a disk image: short rows of
// (value, length) triplets that repeat with small variations.
func rlePayloadLike(n int) []byte {
	data := make([]byte, 0, n)
	for i := 0; len(data) < n; i++ {
		data = append(data, 0, byte(200+i%7), 0x01, 1, byte(100-i%5), 0x00)
	}

	return data[:n]
}

func randomPayload(n int) []byte {
	data := make([]byte, n)
	rand.New(rand.NewSource(5)).Read(data)

	return data
}

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.Equal(t, ct, codec.Type())
		})
	}

	_, err := GetCodec(format.CompressionType(0x9))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}

func TestCodec_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":      nil,
		"one byte":   {0x7f},
		"rle-like":   rlePayloadLike(64 * 1024),
		"random":     randomPayload(8 * 1024),
		"all zeroes": make([]byte, 100000),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				got, err := codec.Decompress(packed, len(data))
				require.NoError(t, err)
				require.True(t, bytes.Equal(data, got))
			})
		}
	}
}

func TestCodec_CompressesRuns(t *testing.T) {
	data := rlePayloadLike(64 * 1024)
	maxRatio := map[format.CompressionType]float64{
		format.CompressionZstd: 0.5,
		format.CompressionS2:   0.75,
		format.CompressionLZ4:  0.75,
	}
	for ct, limit := range maxRatio {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, stats, err := CompressWithStats(codec, data)
		require.NoError(t, err)
		require.Equal(t, ct, stats.Algorithm)
		require.Less(t, stats.CompressionRatio(), limit, "%s ratio", ct)
		require.InDelta(t, (1-stats.CompressionRatio())*100, stats.SpaceSavings(), 1e-9)
	}
}

func TestCodec_SizeMismatch(t *testing.T) {
	data := rlePayloadLike(4096)
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(packed, len(data)+1)
			require.Error(t, err)
		})
	}
}

func TestCodec_CorruptInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage, 1024)
		require.Error(t, err, ct.String())
	}
}

func TestCompressionStats_Zero(t *testing.T) {
	var s CompressionStats
	require.Zero(t, s.CompressionRatio())
	require.Zero(t, s.SpaceSavings())
}
