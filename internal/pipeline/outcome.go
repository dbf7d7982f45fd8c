// Package pipeline implements the concurrent batch palette-extraction
// pipeline: per-image extraction units, a bounded-concurrency
// dispatcher, and the orchestrator that ties discovery, frame sampling
// and result aggregation together.
package pipeline

import "fmt"

// ErrorKind classifies a per-image failure.
type ErrorKind string

const (
	// ErrKindNoInput means no image source was provided to the unit.
	ErrKindNoInput ErrorKind = "no-input"

	// ErrKindDecodeFailure means the image bytes could not be decoded.
	ErrKindDecodeFailure ErrorKind = "decode-failure"

	// ErrKindExtractionFailure means quantization failed or panicked.
	ErrKindExtractionFailure ErrorKind = "extraction-failure"

	// ErrKindEmptyAnimation means an animated container held no frames.
	ErrKindEmptyAnimation ErrorKind = "empty-animation"

	// ErrKindInconsistentDimensions means an animation's frames do not
	// share a common height and could not be composited.
	ErrKindInconsistentDimensions ErrorKind = "inconsistent-dimensions"
)

// ItemError is a structured per-image failure.
type ItemError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// PaletteResult is the outcome of processing one image. Exactly one of
// Colors and Err is set: Colors holds the extracted palette as hex
// strings ranked dominant-first, Err holds the structured failure.
type PaletteResult struct {
	ImageName string
	Path      string
	Colors    []string
	Err       *ItemError
}

// Failed reports whether the image could not be processed.
func (r PaletteResult) Failed() bool {
	return r.Err != nil
}

// failure builds a failed PaletteResult.
func failure(name, path string, kind ErrorKind, message string) PaletteResult {
	return PaletteResult{
		ImageName: name,
		Path:      path,
		Err:       &ItemError{Kind: kind, Message: message},
	}
}
