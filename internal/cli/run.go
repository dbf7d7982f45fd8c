// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"swatch/internal/colour"
	"swatch/internal/config"
	"swatch/internal/pipeline"
	"swatch/internal/report"
)

var (
	// Run command flags
	runConfigPath  string
	runImagesDir   string
	runOutputDir   string
	runColours     int
	runMaxFrames   int
	runConcurrency int
	runAlgorithm   string
	runNoHTML      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract palettes from every image in a directory",
	Long: `Run the batch pipeline over a directory of images.

Every file with a recognized raster extension (.jpg, .jpeg, .png, .gif,
.webp) is processed. Animated GIFs are sampled and composited into one
representative still before quantization. The batch tolerates per-image
failures: broken images are reported in a separate failure list while
the rest of the directory is still processed.

Examples:
  # Process ./wallpapers with defaults (8 colours, 5 workers)
  swatch run -i wallpapers

  # 16 colours, 8 concurrent workers, custom output directory
  swatch run -i wallpapers -o reports -c 16 -j 8

  # Use a config file, overriding only the palette size
  swatch run --config swatch.toml -c 4`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "swatch.toml", "configuration file")
	runCmd.Flags().StringVarP(&runImagesDir, "images", "i", "", "directory of images to process")
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o", "", "output directory for reports")
	runCmd.Flags().IntVarP(&runColours, "colours", "c", 0, "number of colours per palette (1-256)")
	runCmd.Flags().IntVar(&runMaxFrames, "max-frames", -1, "frames sampled per animation (0 = all)")
	runCmd.Flags().IntVarP(&runConcurrency, "concurrency", "j", 0, "maximum concurrent extractions")
	runCmd.Flags().StringVarP(&runAlgorithm, "algorithm", "a", "kmeans", "extraction algorithm (kmeans)")
	runCmd.Flags().BoolVar(&runNoHTML, "no-html", false, "skip the HTML report")
}

// runRun executes the run command.
func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Flags override the config file only when set explicitly.
	if cmd.Flags().Changed("images") {
		cfg.ImagesDir = runImagesDir
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("colours") {
		cfg.PaletteSize = runColours
	}
	if cmd.Flags().Changed("max-frames") {
		cfg.MaxFrames = runMaxFrames
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if runNoHTML {
		cfg.ReportHTML = ""
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cmd)

	extractor, err := colour.NewExtractor(colour.Algorithm(runAlgorithm))
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	progress := newProgress(quiet)

	orch, err := pipeline.New(pipeline.Options{
		ImagesDir:   cfg.ImagesDir,
		StagingRoot: cfg.OutputDir,
		PaletteSize: cfg.PaletteSize,
		MaxFrames:   cfg.MaxFrames,
		Concurrency: cfg.Concurrency,
		OnItemDone:  progress,
	}, extractor, logger)
	if err != nil {
		return err
	}

	results, err := orch.Run()
	if err != nil {
		return err
	}

	rep := report.New(results)

	jsonPath := filepath.Join(cfg.OutputDir, cfg.ReportJSON)
	if err := rep.WriteJSON(jsonPath); err != nil {
		return err
	}
	logger.Info("wrote JSON report", "path", jsonPath)

	if cfg.ReportHTML != "" {
		htmlPath := filepath.Join(cfg.OutputDir, cfg.ReportHTML)
		if err := rep.WriteHTML(htmlPath); err != nil {
			return err
		}
		logger.Info("wrote HTML report", "path", htmlPath)
	}

	for _, failure := range rep.Failures {
		logger.Warn("image failed", "image", failure.ImageName, "error", failure.Error)
	}

	return nil
}

// newProgress returns an OnItemDone callback driving a progress bar on
// stderr, or nil when output is quiet or not a terminal.
func newProgress(quiet bool) func(done, total int, res pipeline.PaletteResult) {
	if quiet || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	var (
		once sync.Once
		bar  *progressbar.ProgressBar
	)
	return func(done, total int, res pipeline.PaletteResult) {
		once.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("extracting palettes"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
			)
		})
		_ = bar.Add(1)
	}
}
