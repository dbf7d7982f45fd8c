package frames

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"

	"github.com/hashicorp/go-hclog"
)

// ErrEmptyAnimation is returned when an animated container decodes to
// zero frames.
var ErrEmptyAnimation = errors.New("animation contains no frames")

// Sampler decodes an animated GIF into an ordered, cap-bounded sequence
// of fully-coalesced RGBA frames. Each sampled frame is staged as a
// transient PNG under the staging directory; callers must invoke
// Sampled.Cleanup once the frames have been consumed.
type Sampler struct {
	stagingDir string
	maxFrames  int // 0 means unbounded
	logger     hclog.Logger
}

// NewSampler creates a Sampler staging into dir, keeping at most
// maxFrames frames per animation (0 = keep all).
func NewSampler(dir string, maxFrames int, logger hclog.Logger) *Sampler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Sampler{
		stagingDir: dir,
		maxFrames:  maxFrames,
		logger:     logger,
	}
}

// Sampled holds the frames decoded from one animation together with the
// staging artifacts written for them.
type Sampled struct {
	// Frames are the coalesced frames in native order, truncated at the
	// sampler's cap.
	Frames []*image.RGBA

	staged []string
	logger hclog.Logger
}

// Cleanup removes every staging artifact written for this animation.
// Safe to call more than once; removal failures are logged and the
// remaining artifacts are still attempted.
func (s *Sampled) Cleanup() {
	for _, path := range s.staged {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove staging artifact", "path", path, "error", err)
		}
	}
	s.staged = nil
}

// Sample decodes the animation at path and returns its coalesced frames.
// Frames are truncated at the sampler's cap; the sequence can be
// regenerated from scratch by calling Sample again. Returns
// ErrEmptyAnimation when the container holds no frames.
func (s *Sampler) Sample(path string) (*Sampled, error) {
	f, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open animation: %w", err)
	}
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode animation: %w", err)
	}
	if len(anim.Image) == 0 {
		return nil, ErrEmptyAnimation
	}

	count := len(anim.Image)
	if s.maxFrames > 0 && count > s.maxFrames {
		count = s.maxFrames
	}

	// GIF frames may cover only the changed region of the canvas, so each
	// frame is drawn over the accumulated canvas before being snapshotted.
	bounds := canvasBounds(anim)
	canvas := image.NewRGBA(bounds)

	sampled := &Sampled{
		Frames: make([]*image.RGBA, 0, count),
		staged: make([]string, 0, count),
		logger: s.logger,
	}

	for i := 0; i < count; i++ {
		frame := anim.Image[i]
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		snapshot := image.NewRGBA(bounds)
		copy(snapshot.Pix, canvas.Pix)
		sampled.Frames = append(sampled.Frames, snapshot)

		if s.stagingDir == "" {
			continue
		}
		artifact := frameArtifactPath(s.stagingDir, path, i)
		if err := writePNG(artifact, snapshot); err != nil {
			// Staging is transient storage; losing it does not invalidate
			// the in-memory frames.
			s.logger.Warn("failed to stage frame", "source", path, "frame", i, "error", err)
			continue
		}
		sampled.staged = append(sampled.staged, artifact)
	}

	s.logger.Debug("sampled animation", "source", path, "frames", len(sampled.Frames), "total", len(anim.Image))
	return sampled, nil
}

// canvasBounds returns the logical screen size of the animation, falling
// back to the first frame's bounds when the header is missing.
func canvasBounds(anim *gif.GIF) image.Rectangle {
	if anim.Config.Width > 0 && anim.Config.Height > 0 {
		return image.Rect(0, 0, anim.Config.Width, anim.Config.Height)
	}
	return anim.Image[0].Bounds()
}
