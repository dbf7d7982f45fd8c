// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"swatch/internal/config"
	"swatch/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swatch",
	Short: "Batch colour palette extraction for image directories",
	Long: `Swatch extracts dominant colour palettes from every image in a
directory and aggregates the results into a JSON report.

Still images (JPEG, PNG, WebP) are quantized directly. Animated GIFs are
reduced first: a bounded number of frames is sampled and composited side
by side into one representative still. Images are processed concurrently
with a configurable limit, and a single broken image never aborts the
batch.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the application logger from the global flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}

	var output io.Writer = os.Stderr
	if quiet {
		output = io.Discard
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: output,
		Level:  level,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

// configCmd prints an annotated sample configuration file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print a sample configuration file",
	Long: `Print an annotated sample configuration file to stdout.

Redirect it to create a starting point:
  swatch config > swatch.toml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(config.Sample())
	},
}
