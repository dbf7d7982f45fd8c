// Package frames reduces animated images to a single representative still
// by sampling frames and compositing them side by side.
package frames

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// stagingSuffix marks every transient file the sampler and compositor
// write. Directory scans use it to avoid reprocessing staging output as
// source images.
const stagingSuffix = ".swatch.png"

// IsStagingArtifact reports whether a file name matches the transient
// frame or composite naming pattern.
func IsStagingArtifact(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), stagingSuffix)
}

// sourceStem returns the staging key for a source image path: the full
// base name, extension included. Sources differing only in extension or
// extension case ("x.gif" vs "x.GIF") therefore never share artifacts.
func sourceStem(sourcePath string) string {
	return filepath.Base(sourcePath)
}

// frameArtifactPath names the transient file for one sampled frame.
func frameArtifactPath(dir, sourcePath string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s.frame-%03d%s", sourceStem(sourcePath), index, stagingSuffix))
}

// compositeArtifactPath names the transient file for a composited still.
func compositeArtifactPath(dir, sourcePath string) string {
	return filepath.Join(dir, sourceStem(sourcePath)+".composite"+stagingSuffix)
}

// RemoveArtifact deletes a single staging artifact. Missing files are
// not an error; cleanup may run on both success and failure paths.
func RemoveArtifact(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove staging artifact: %w", err)
	}
	return nil
}

// writePNG encodes an image to a staging file.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) // #nosec G304 - Path is derived from run-scoped staging dir
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close staging file: %w", err)
	}
	return nil
}
