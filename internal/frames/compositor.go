package frames

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// InconsistentDimensionsError reports a frame whose height does not match
// the first frame's. Frame heights are not normalized; mismatches are a
// hard error.
type InconsistentDimensionsError struct {
	Frame      int
	WantHeight int
	GotHeight  int
}

func (e *InconsistentDimensionsError) Error() string {
	return fmt.Sprintf("frame %d height %d does not match first frame height %d", e.Frame, e.GotHeight, e.WantHeight)
}

// Composite lays out a non-empty sequence of equal-height frames side by
// side into one wide image: width is the sum of the inputs' widths,
// height is the first frame's height, each frame drawn at the cumulative
// x-offset of its predecessors. No scaling or letterboxing is applied.
// Pure function, safe to call concurrently for independent frame sets.
func Composite(framesIn []*image.RGBA) (*image.RGBA, error) {
	if len(framesIn) == 0 {
		return nil, errors.New("no frames to composite")
	}

	height := framesIn[0].Bounds().Dy()
	width := 0
	for i, frame := range framesIn {
		if frame.Bounds().Dy() != height {
			return nil, &InconsistentDimensionsError{
				Frame:      i,
				WantHeight: height,
				GotHeight:  frame.Bounds().Dy(),
			}
		}
		width += frame.Bounds().Dx()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, frame := range framesIn {
		w := frame.Bounds().Dx()
		dr := image.Rect(x, 0, x+w, height)
		draw.Draw(out, dr, frame, frame.Bounds().Min, draw.Src)
		x += w
	}
	return out, nil
}

// StageComposite writes a composited still to the staging directory and
// returns its path. The artifact follows the sampler's transient naming
// pattern so directory scans skip it; callers remove it with
// RemoveArtifact once the palette has been extracted.
func StageComposite(dir, sourcePath string, img image.Image) (string, error) {
	path := compositeArtifactPath(dir, sourcePath)
	if err := writePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}
