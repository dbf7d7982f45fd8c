package pipeline

import (
	"fmt"
	stdimage "image"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"swatch/internal/colour"
	"swatch/internal/image"
)

// ExtractionUnit decodes one still image and invokes the quantization
// capability, converting every failure mode into a structured outcome.
// A unit holds no per-invocation state beyond the read-only extractor,
// so one invocation is fully independent of any other.
type ExtractionUnit struct {
	extractor   colour.Extractor
	loader      image.Loader
	paletteSize int
	logger      hclog.Logger
}

// NewExtractionUnit creates an ExtractionUnit targeting palettes of at
// most paletteSize colours.
func NewExtractionUnit(extractor colour.Extractor, paletteSize int, logger hclog.Logger) *ExtractionUnit {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExtractionUnit{
		extractor:   extractor,
		loader:      image.NewFileLoader(),
		paletteSize: paletteSize,
		logger:      logger,
	}
}

// ExtractFile decodes the still image at path and extracts its palette.
// name is the image's report identity, usually the source base name.
// Never panics: decode errors, quantization errors and unexpected
// faults all come back as a failed PaletteResult.
func (u *ExtractionUnit) ExtractFile(name, path string) (res PaletteResult) {
	defer u.recoverFault(name, path, &res)

	if path == "" {
		return failure(name, path, ErrKindNoInput, "no input provided")
	}

	img, err := u.loader.Load(path)
	if err != nil {
		return failure(name, path, ErrKindDecodeFailure, err.Error())
	}

	return u.extract(name, path, img)
}

// ExtractImage extracts a palette from an already-decoded image. Used
// when a composited still could not be staged to disk.
func (u *ExtractionUnit) ExtractImage(name, path string, img stdimage.Image) (res PaletteResult) {
	defer u.recoverFault(name, path, &res)

	if img == nil {
		return failure(name, path, ErrKindNoInput, "no input provided")
	}

	return u.extract(name, path, img)
}

func (u *ExtractionUnit) extract(name, path string, img stdimage.Image) PaletteResult {
	palette, err := u.extractor.Extract(img, u.paletteSize)
	if err != nil {
		return failure(name, path, ErrKindExtractionFailure, err.Error())
	}

	u.logger.Debug("extracted palette", "image", name, "colours", palette.Len())
	return PaletteResult{
		ImageName: name,
		Path:      path,
		Colors:    palette.ToHex(),
	}
}

// recoverFault converts a panic escaping the unit into a structured
// extraction failure so a crashing decoder never takes down the batch.
func (u *ExtractionUnit) recoverFault(name, path string, res *PaletteResult) {
	if r := recover(); r != nil {
		u.logger.Error("extraction panicked", "image", name, "panic", fmt.Sprint(r))
		*res = failure(name, path, ErrKindExtractionFailure, fmt.Sprintf("panic during extraction: %v", r))
	}
}

// displayName returns the report identity for a source path.
func displayName(path string) string {
	return filepath.Base(path)
}
