package report

import (
	"fmt"
	"html/template"
	"image/color"
	"os"

	"swatch/internal/colour"
)

// htmlImage is one image row in the HTML report.
type htmlImage struct {
	Name     string
	Path     string
	Swatches []htmlSwatch
	Error    string
}

// htmlSwatch is one colour cell with a label colour readable on top of it.
type htmlSwatch struct {
	Hex   string
	RGB   string
	Label string
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>swatch report</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #fafafa; }
.image { margin-bottom: 1.5em; }
.image h2 { font-size: 1em; margin: 0 0 0.3em 0; }
.palette { display: flex; }
.swatch { width: 6em; height: 3em; display: flex; align-items: center; justify-content: center; font-size: 0.75em; }
.error { color: #b00020; font-size: 0.85em; }
</style>
</head>
<body>
<h1>swatch report</h1>
{{range .}}
<div class="image">
<h2>{{.Name}}</h2>
{{if .Error}}<p class="error">{{.Error}}</p>{{else}}
<div class="palette">
{{range .Swatches}}<div class="swatch" title="{{.RGB}}" style="background:{{.Hex}};color:{{.Label}}">{{.Hex}}</div>{{end}}
</div>
{{end}}
</div>
{{end}}
</body>
</html>
`))

// WriteHTML renders the companion HTML report to path. It consumes the
// same result list as the JSON report plus the resolved image paths.
func (r *BatchReport) WriteHTML(path string) error {
	images := make([]htmlImage, 0, len(r.Results)+len(r.Failures))
	for _, entry := range r.Results {
		img := htmlImage{
			Name:     entry.ImageName,
			Path:     r.paths[entry.ImageName],
			Swatches: make([]htmlSwatch, 0, len(entry.Colors)),
		}
		for _, hex := range entry.Colors {
			img.Swatches = append(img.Swatches, htmlSwatch{
				Hex:   hex,
				RGB:   rgbString(hex),
				Label: labelColour(hex),
			})
		}
		images = append(images, img)
	}
	for _, entry := range r.Failures {
		images = append(images, htmlImage{
			Name:  entry.ImageName,
			Path:  r.paths[entry.ImageName],
			Error: entry.Error,
		})
	}

	f, err := os.Create(path) // #nosec G304 - User-specified report path, intended to be written
	if err != nil {
		return fmt.Errorf("failed to create HTML report: %w", err)
	}
	if err := htmlTemplate.Execute(f, images); err != nil {
		f.Close()
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close HTML report: %w", err)
	}
	return nil
}

// labelColour picks black or white text for a swatch background so the
// hex label stays readable.
func labelColour(hex string) string {
	c, err := parseHex(hex)
	if err != nil {
		return "#000000"
	}
	if colour.Luminance(c) > 0.4 {
		return "#000000"
	}
	return "#ffffff"
}

// rgbString renders a hex colour as "rgb(r, g, b)" for swatch tooltips.
func rgbString(hex string) string {
	c, err := parseHex(hex)
	if err != nil {
		return ""
	}
	return colour.ToRGB(c).String()
}

// parseHex parses a "#rrggbb" string.
func parseHex(hex string) (color.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
