// Package commands wires the happyplates CLI: convert a whole PDF, extract a
// single page image, or serve the web shell.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/VJd357/Happyplates/cmd/happyplates/ui"
	"github.com/VJd357/Happyplates/internal/config"
	"github.com/VJd357/Happyplates/internal/observability"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "happyplates",
	Short: "Happyplates - convert scanned restaurant menu PDFs into tables",
	Long: `Happyplates rasterizes a scanned menu PDF into page images, reads each
page with a hosted vision model, and flattens the parsed sections into
per-page and combined CSV tables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			ui.DisableColor()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file (if given) plus environment overrides.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger opens the pipeline log file sink. With --verbose, debug events
// are recorded too.
func newLogger(cfg *config.Config) *observability.Logger {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return observability.NewFileLogger(cfg.Log.File, level, "happyplates")
}
