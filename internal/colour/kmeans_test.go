package colour

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

// solidImage returns a w×h image filled with a single colour.
func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// stripeImage returns an image whose columns cycle through the given colours.
func stripeImage(w, h int, cs []color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, cs[x%len(cs)])
		}
	}
	return img
}

func TestExtractValidation(t *testing.T) {
	extractor := NewKMeansExtractor()

	tests := []struct {
		name  string
		img   image.Image
		count int
	}{
		{name: "nil image", img: nil, count: 8},
		{name: "zero count", img: solidImage(2, 2, color.RGBA{A: 255}), count: 0},
		{name: "count too large", img: solidImage(2, 2, color.RGBA{A: 255}), count: 257},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := extractor.Extract(tt.img, tt.count); err == nil {
				t.Error("Extract() expected error")
			}
		})
	}
}

func TestExtractSolidRed(t *testing.T) {
	extractor := NewKMeansExtractor()
	img := solidImage(2, 2, color.RGBA{R: 255, A: 255})

	palette, err := extractor.Extract(img, 3)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	want := []string{"#ff0000"}
	if got := palette.ToHex(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToHex() = %v, want %v", got, want)
	}
}

func TestExtractFewerDistinctThanRequested(t *testing.T) {
	colours := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
	}
	extractor := NewKMeansExtractor()

	palette, err := extractor.Extract(stripeImage(8, 8, colours), 10)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if palette.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (distinct colours)", palette.Len())
	}
}

func TestExtractDominantFirst(t *testing.T) {
	// Three columns of red for every column of green: red must rank first.
	colours := []color.RGBA{
		{R: 255, A: 255},
		{R: 255, A: 255},
		{R: 255, A: 255},
		{G: 255, A: 255},
	}
	extractor := NewKMeansExtractor()

	palette, err := extractor.Extract(stripeImage(8, 8, colours), 8)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	hex := palette.ToHex()
	if len(hex) != 2 {
		t.Fatalf("expected 2 colours, got %d", len(hex))
	}
	if hex[0] != "#ff0000" {
		t.Errorf("dominant colour = %s, want #ff0000", hex[0])
	}
}

func TestExtractDeterministic(t *testing.T) {
	colours := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	}
	extractor := NewKMeansExtractor()
	img := stripeImage(9, 9, colours)

	first, err := extractor.Extract(img, 8)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := extractor.Extract(img, 8)
		if err != nil {
			t.Fatalf("Extract() returned error on rerun: %v", err)
		}
		if !reflect.DeepEqual(again.ToHex(), first.ToHex()) {
			t.Errorf("rerun %d produced %v, want %v", i, again.ToHex(), first.ToHex())
		}
	}
}

func TestExtractDeterministicOnClusteringPath(t *testing.T) {
	// More distinct colours than requested forces clustering; identical
	// pixel input must still yield an identical ordered colour list.
	colours := make([]color.RGBA, 8)
	for i := range colours {
		colours[i] = color.RGBA{R: uint8(i * 32), G: uint8(255 - i*32), B: uint8(i * 16), A: 255}
	}
	extractor := NewKMeansExtractor()
	img := stripeImage(16, 16, colours)

	first, err := extractor.Extract(img, 3)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := extractor.Extract(img, 3)
		if err != nil {
			t.Fatalf("Extract() returned error on rerun: %v", err)
		}
		if !reflect.DeepEqual(again.ToHex(), first.ToHex()) {
			t.Errorf("rerun %d produced %v, want %v", i, again.ToHex(), first.ToHex())
		}
	}
}

func TestExtractKMeansPath(t *testing.T) {
	// More distinct colours than requested forces the clustering path.
	colours := make([]color.RGBA, 16)
	for i := range colours {
		colours[i] = color.RGBA{R: uint8(i * 16), G: uint8(255 - i*16), B: uint8(i * 8), A: 255}
	}
	extractor := NewKMeansExtractor()

	palette, err := extractor.Extract(stripeImage(32, 32, colours), 4)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if palette.Len() != 4 {
		t.Errorf("Len() = %d, want 4", palette.Len())
	}

	for i := 1; i < len(palette.Weights); i++ {
		if palette.Weights[i] > palette.Weights[i-1] {
			t.Errorf("cluster weights not descending: %v", palette.Weights)
		}
	}
}
