// Package report renders the batch outcome into its external formats:
// a JSON report of per-image palettes and an optional HTML companion.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"swatch/internal/pipeline"
)

// SuccessEntry is one successfully processed image in the JSON report.
type SuccessEntry struct {
	ImageName string   `json:"imageName"`
	Colors    []string `json:"colors"`
}

// FailureEntry is one image that could not be processed. Failures are
// kept out of the success list and carried separately so consumers of
// "results" only ever see complete palettes.
type FailureEntry struct {
	ImageName string `json:"imageName"`
	Error     string `json:"error"`
}

// BatchReport is the aggregate outcome of one run, ordered by discovery
// order. Every attempted image appears exactly once, in either Results
// or Failures.
type BatchReport struct {
	Results  []SuccessEntry `json:"results"`
	Failures []FailureEntry `json:"failures,omitempty"`

	paths map[string]string
}

// New builds a BatchReport from per-image outcomes, preserving their
// order.
func New(results []pipeline.PaletteResult) *BatchReport {
	report := &BatchReport{
		Results:  make([]SuccessEntry, 0, len(results)),
		Failures: make([]FailureEntry, 0),
		paths:    make(map[string]string, len(results)),
	}
	for _, res := range results {
		report.paths[res.ImageName] = res.Path
		if res.Failed() {
			report.Failures = append(report.Failures, FailureEntry{
				ImageName: res.ImageName,
				Error:     res.Err.Error(),
			})
			continue
		}
		report.Results = append(report.Results, SuccessEntry{
			ImageName: res.ImageName,
			Colors:    res.Colors,
		})
	}
	return report
}

// ToJSON serializes the report.
func (r *BatchReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteJSON writes the report to path.
func (r *BatchReport) WriteJSON(path string) error {
	data, err := r.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
