package pipeline

import (
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"swatch/internal/colour"
)

// writeSolidPNG writes a w×h PNG filled with one colour.
func writeSolidPNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()

	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
}

// panicExtractor simulates a quantizer that crashes.
type panicExtractor struct{}

func (panicExtractor) Extract(img stdimage.Image, count int) (*colour.Palette, error) {
	panic("quantizer crashed")
}

// failingLoader simulates a loader whose decode always fails.
type failingLoader struct{}

func (failingLoader) Load(path string) (stdimage.Image, error) {
	return nil, errors.New("unreadable source")
}

func TestExtractFileSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "red.png")
	writeSolidPNG(t, path, 2, 2, color.RGBA{R: 255, A: 255})

	unit := NewExtractionUnit(colour.NewKMeansExtractor(), 3, nil)
	res := unit.ExtractFile("red.png", path)

	if res.Failed() {
		t.Fatalf("ExtractFile() failed: %v", res.Err)
	}
	if want := []string{"#ff0000"}; !reflect.DeepEqual(res.Colors, want) {
		t.Errorf("Colors = %v, want %v", res.Colors, want)
	}
	if res.ImageName != "red.png" {
		t.Errorf("ImageName = %s, want red.png", res.ImageName)
	}
}

func TestExtractFileFailures(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	unit := NewExtractionUnit(colour.NewKMeansExtractor(), 3, nil)

	tests := []struct {
		name string
		path string
		kind ErrorKind
	}{
		{name: "no input", path: "", kind: ErrKindNoInput},
		{name: "missing file", path: filepath.Join(dir, "missing.png"), kind: ErrKindDecodeFailure},
		{name: "corrupt file", path: corrupt, kind: ErrKindDecodeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := unit.ExtractFile("img", tt.path)
			if !res.Failed() {
				t.Fatal("ExtractFile() expected failure")
			}
			if res.Err.Kind != tt.kind {
				t.Errorf("error kind = %s, want %s", res.Err.Kind, tt.kind)
			}
			if res.Colors != nil {
				t.Error("failed result must not carry colours")
			}
		})
	}
}

func TestExtractFileInjectedLoader(t *testing.T) {
	unit := NewExtractionUnit(colour.NewKMeansExtractor(), 3, nil)
	unit.loader = failingLoader{}

	res := unit.ExtractFile("red.png", "red.png")
	if !res.Failed() {
		t.Fatal("ExtractFile() expected failure from failing loader")
	}
	if res.Err.Kind != ErrKindDecodeFailure {
		t.Errorf("error kind = %s, want %s", res.Err.Kind, ErrKindDecodeFailure)
	}
	if !strings.Contains(res.Err.Message, "unreadable source") {
		t.Errorf("error message = %q, want loader error preserved", res.Err.Message)
	}
}

func TestExtractFileCapturesPanic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "red.png")
	writeSolidPNG(t, path, 2, 2, color.RGBA{R: 255, A: 255})

	unit := NewExtractionUnit(panicExtractor{}, 3, nil)
	res := unit.ExtractFile("red.png", path)

	if !res.Failed() {
		t.Fatal("ExtractFile() expected failure from panicking extractor")
	}
	if res.Err.Kind != ErrKindExtractionFailure {
		t.Errorf("error kind = %s, want %s", res.Err.Kind, ErrKindExtractionFailure)
	}
}

func TestExtractImage(t *testing.T) {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
		}
	}

	unit := NewExtractionUnit(colour.NewKMeansExtractor(), 3, nil)

	res := unit.ExtractImage("green", "green.gif", img)
	if res.Failed() {
		t.Fatalf("ExtractImage() failed: %v", res.Err)
	}
	if want := []string{"#00ff00"}; !reflect.DeepEqual(res.Colors, want) {
		t.Errorf("Colors = %v, want %v", res.Colors, want)
	}

	res = unit.ExtractImage("nil", "nil.gif", nil)
	if !res.Failed() || res.Err.Kind != ErrKindNoInput {
		t.Errorf("ExtractImage(nil) = %+v, want %s failure", res, ErrKindNoInput)
	}
}
