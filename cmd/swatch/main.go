// Swatch - batch colour palette extraction
//
// Swatch extracts dominant colour palettes from every image in a
// directory, reducing animated GIFs to a single representative still
// first, and aggregates the results into JSON and HTML reports.
package main

import (
	"swatch/internal/cli"
)

func main() {
	cli.Execute()
}
