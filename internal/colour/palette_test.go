package colour

import (
	"image/color"
	"testing"
)

func TestNewPalette(t *testing.T) {
	colors := []color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 255, B: 0, A: 255},
		color.RGBA{R: 0, G: 0, B: 255, A: 255},
	}

	palette := NewPalette(colors)

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}

	if len(palette.Weights) != 3 {
		t.Errorf("Expected 3 weights, got %d", len(palette.Weights))
	}
}

func TestNewPaletteWithWeightsOrdersDominantFirst(t *testing.T) {
	colors := []color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 255, B: 0, A: 255},
		color.RGBA{R: 0, G: 0, B: 255, A: 255},
	}
	weights := []float64{0.2, 0.5, 0.3}

	palette := NewPaletteWithWeights(colors, weights)

	want := []string{"#00ff00", "#0000ff", "#ff0000"}
	got := palette.ToHex()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	for i := 1; i < len(palette.Weights); i++ {
		if palette.Weights[i] > palette.Weights[i-1] {
			t.Errorf("weights not descending at index %d: %v", i, palette.Weights)
		}
	}
}

func TestNewPaletteWithWeightsStableOnTies(t *testing.T) {
	colors := []color.Color{
		color.RGBA{R: 1, A: 255},
		color.RGBA{R: 2, A: 255},
		color.RGBA{R: 3, A: 255},
	}
	weights := []float64{0.25, 0.25, 0.5}

	palette := NewPaletteWithWeights(colors, weights)

	want := []string{"#030000", "#010000", "#020000"}
	got := palette.ToHex()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "green",
			color: color.RGBA{R: 0, G: 255, B: 0, A: 255},
			want:  RGB{R: 0, G: 255, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{R: 0, G: 0, B: 0, A: 255},
			want:  RGB{R: 0, G: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{
			name: "red",
			rgb:  RGB{R: 255, G: 0, B: 0},
			want: "#ff0000",
		},
		{
			name: "mixed",
			rgb:  RGB{R: 26, G: 43, B: 60},
			want: "#1a2b3c",
		},
		{
			name: "black",
			rgb:  RGB{R: 0, G: 0, B: 0},
			want: "#000000",
		},
		{
			name: "white",
			rgb:  RGB{R: 255, G: 255, B: 255},
			want: "#ffffff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPaletteGet(t *testing.T) {
	palette := NewPalette([]color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
	})

	if _, err := palette.Get(0); err != nil {
		t.Errorf("Get(0) returned error: %v", err)
	}

	if _, err := palette.Get(1); err == nil {
		t.Error("Get(1) expected error for out-of-bounds index")
	}

	if _, err := palette.Get(-1); err == nil {
		t.Error("Get(-1) expected error for negative index")
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := NewPalette([]color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
	})

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() returned error: %v", err)
	}

	if len(data) == 0 {
		t.Error("ToJSON() returned empty data")
	}
}
