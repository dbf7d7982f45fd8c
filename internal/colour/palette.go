// Package colour provides colour extraction and palette functionality.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
)

// Palette represents an ordered collection of colours extracted from an
// image, ranked dominant-first. Weights hold the relative share of the
// image each colour covers and run parallel to Colors.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a new Palette with the given colours and equal weights.
func NewPalette(colors []color.Color) *Palette {
	weights := make([]float64, len(colors))
	if len(colors) > 0 {
		w := 1.0 / float64(len(colors))
		for i := range weights {
			weights[i] = w
		}
	}
	return &Palette{Colors: colors, Weights: weights}
}

// NewPaletteWithWeights creates a new Palette with the given colours and
// weights, sorted by descending weight so the most dominant colour comes
// first. The sort is stable so ties keep their input order.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	p := &Palette{
		Colors:  make([]color.Color, len(colors)),
		Weights: make([]float64, len(colors)),
	}
	copy(p.Colors, colors)
	copy(p.Weights, weights)
	sort.Stable(byWeightDesc{p})
	return p
}

// byWeightDesc sorts a palette's colours and weights in lockstep,
// heaviest first.
type byWeightDesc struct {
	p *Palette
}

func (s byWeightDesc) Len() int           { return len(s.p.Colors) }
func (s byWeightDesc) Less(i, j int) bool { return s.p.Weights[i] > s.p.Weights[j] }
func (s byWeightDesc) Swap(i, j int) {
	s.p.Colors[i], s.p.Colors[j] = s.p.Colors[j], s.p.Colors[i]
	s.p.Weights[i], s.p.Weights[j] = s.p.Weights[j], s.p.Weights[i]
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ToHex converts the palette colours to hex strings, dominant-first.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		hexColors[i] = rgb.Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colours to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = ToRGB(c)
	}
	return rgbColors
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		colors[i] = ColorJSON{
			Hex: rgb.Hex(),
			RGB: rgb,
		}
	}

	paletteJSON := PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, rgb.Hex(), rgb.String())
	}
	return result
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (color.Color, error) {
	if index < 0 || index >= len(p.Colors) {
		return nil, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}
