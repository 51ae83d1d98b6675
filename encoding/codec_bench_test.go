package encoding

import (
	"math/rand"
	"testing"

	"github.com/arloliu/dyescan/grid"
)

func benchDisk(shape grid.Shape, r int) *grid.Binary {
	img := grid.MustNew(shape)
	cx, cy := shape.Width/2, shape.Height/2
	for y := 0; y < shape.Height; y++ {
		for x := 0; x < shape.Width; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(y, x, 1)
			}
		}
	}

	return img
}

func BenchmarkEncodeRLE(b *testing.B) {
	img := benchDisk(grid.NewShape(1000, 1000), 300)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		EncodeRLE(img)
	}
}

func BenchmarkDecodeRLE(b *testing.B) {
	img := benchDisk(grid.NewShape(1000, 1000), 300)
	stream := EncodeRLE(img)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeRLE(stream, img.Shape()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeSparse(b *testing.B) {
	img := randomImage(b, rand.New(rand.NewSource(1)), grid.NewShape(1000, 1000), 0.1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		EncodeSparse(img)
	}
}

func BenchmarkDecodeSparse(b *testing.B) {
	img := randomImage(b, rand.New(rand.NewSource(1)), grid.NewShape(1000, 1000), 0.1)
	entries := EncodeSparse(img)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeSparse(entries, img.Shape()); err != nil {
			b.Fatal(err)
		}
	}
}
