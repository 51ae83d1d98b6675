// Package visualize renders decoded images for a human to look at.
//
// Sinks receive an image and a title and give nothing back to the caller
// beyond an error; the analysis never depends on what a sink does.
package visualize

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/arloliu/dyescan/grid"
)

// Palette indices of the rendered image.
const (
	White uint8 = 0
	Black uint8 = 1
)

const captionPad = 4

// Sink displays or stores a titled image.
type Sink interface {
	Show(img *grid.Binary, title string) error
}

type discard struct{}

func (discard) Show(*grid.Binary, string) error { return nil }

// Discard is a Sink that drops every image.
var Discard Sink = discard{}

// Palette returns the two-colour palette used for rendering: white
// background, black set cells.
func Palette() color.Palette {
	return color.Palette{color.White, color.Black}
}

// Render draws img below a caption strip holding title. Set cells are black.
// The result is a paletted image, which image/png writes at one bit per
// pixel.
func Render(img *grid.Binary, title string) *image.Paletted {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	shape := img.Shape()
	textWidth := font.MeasureString(face, title).Ceil()
	captionHeight := 0
	if title != "" {
		captionHeight = metrics.Height.Ceil() + 2*captionPad
	}

	width := max(shape.Width, textWidth+2*captionPad)
	out := image.NewPaletted(image.Rect(0, 0, width, captionHeight+shape.Height), Palette())

	if title != "" {
		d := &font.Drawer{
			Dst:  out,
			Src:  image.Black,
			Face: face,
			Dot:  fixed.P((width-textWidth)/2, captionPad+metrics.Ascent.Ceil()),
		}
		d.DrawString(title)
	}

	for y, row := range img.Rows() {
		line := out.Pix[(captionHeight+y)*out.Stride:]
		for x, v := range row {
			if v == 1 {
				line[x] = Black
			}
		}
	}

	return out
}

// WritePNG renders img with its title and encodes it as PNG to w.
func WritePNG(w io.Writer, img *grid.Binary, title string) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}

	return enc.Encode(w, Render(img, title))
}

// PNGSink writes each image to <Dir>/images/<slug>.png, where the slug is
// the lower-cased title with runs of other characters replaced by '_'.
type PNGSink struct {
	Dir string
}

var _ Sink = PNGSink{}

// Path returns the file a titled image is written to.
func (s PNGSink) Path(title string) string {
	return filepath.Join(s.Dir, "images", Slug(title)+".png")
}

// Show writes the rendered image, replacing any previous file.
func (s PNGSink) Show(img *grid.Binary, title string) error {
	path := s.Path(title)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := WritePNG(w, img, title); err != nil {
		f.Close()
		return fmt.Errorf("render %q: %w", title, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Slug turns a title into a file name stem, e.g. "Dye Sensor Image" becomes
// "dye_sensor_image". An empty result becomes "image".
func Slug(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)

			continue
		}
		pending = true
	}

	if b.Len() == 0 {
		return "image"
	}

	return b.String()
}
