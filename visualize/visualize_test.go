package visualize

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dyescan/grid"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Microscope Image":   "microscope_image",
		"Dye Sensor Image":   "dye_sensor_image",
		"  a--b  ":           "a_b",
		"../../etc/passwd":   "etc_passwd",
		"":                   "image",
		"!!!":                "image",
		"Run 42: blob (r=7)": "run_42_blob_r_7",
	}
	for in, want := range tests {
		require.Equal(t, want, Slug(in), in)
	}
}

func TestRender(t *testing.T) {
	img, err := grid.FromRows([][]uint8{
		{1, 0, 0},
		{0, 1, 0},
	})
	require.NoError(t, err)

	out := Render(img, "")
	require.Equal(t, 2, out.Bounds().Dy())
	require.Equal(t, 8, out.Bounds().Dx())
	require.Equal(t, Black, out.ColorIndexAt(0, 0))
	require.Equal(t, White, out.ColorIndexAt(1, 0))
	require.Equal(t, Black, out.ColorIndexAt(1, 1))
	require.Equal(t, White, out.ColorIndexAt(2, 1))

	captioned := Render(img, "Microscope Image")
	caption := captioned.Bounds().Dy() - 2
	require.Positive(t, caption)
	require.Equal(t, Black, captioned.ColorIndexAt(0, caption))
	require.Equal(t, Black, captioned.ColorIndexAt(1, caption+1))

	inked := 0
	for y := 0; y < caption; y++ {
		for x := 0; x < captioned.Bounds().Dx(); x++ {
			if captioned.ColorIndexAt(x, y) == Black {
				inked++
			}
		}
	}
	require.Positive(t, inked, "caption text was not drawn")
}

func TestPNGSink(t *testing.T) {
	shape := grid.NewShape(30, 40)
	img := grid.MustNew(shape)
	img.Set(29, 39, 1)

	sink := PNGSink{Dir: t.TempDir()}
	require.NoError(t, sink.Show(img, "Dye Sensor Image"))

	path := sink.Path("Dye Sensor Image")
	require.Equal(t, filepath.Join(sink.Dir, "images", "dye_sensor_image.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	bounds := decoded.Bounds()
	require.GreaterOrEqual(t, bounds.Dx(), shape.Width)
	require.Greater(t, bounds.Dy(), shape.Height)

	r, g, b, _ := decoded.At(shape.Width-1, bounds.Dy()-1).RGBA()
	require.Zero(t, r+g+b)
	r, g, b, _ = decoded.At(0, bounds.Dy()-1).RGBA()
	require.Equal(t, uint32(3*0xffff), r+g+b)

	// showing again overwrites the file
	require.NoError(t, sink.Show(grid.MustNew(shape), "Dye Sensor Image"))
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, grid.MustNew(grid.NewShape(10, 10)), "x"))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	require.Equal(t, 10+13+2*captionPad, cfg.Height)
}

func TestDiscard(t *testing.T) {
	require.NoError(t, Discard.Show(grid.MustNew(grid.NewShape(1, 1)), "anything"))
}
