package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VJd357/Happyplates/cmd/happyplates/ui"
	"github.com/VJd357/Happyplates/internal/extract"
	"github.com/VJd357/Happyplates/internal/llm"
)

var (
	extractOutput string
	extractStrict bool
	extractXLSX   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <page.png>",
	Short: "Extract a menu table from a single page image",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "",
		"output file path (default: image path with .csv extension)")
	extractCmd.Flags().BoolVar(&extractStrict, "strict", false,
		"reject model replies that do not match the menu schema")
	extractCmd.Flags().BoolVar(&extractXLSX, "xlsx", false,
		"write an XLSX workbook instead of CSV")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("no API key: set OPENAI_API_KEY in the environment or a .env file")
	}

	logger := newLogger(cfg)
	imagePath := args[0]

	client := llm.NewClient(llm.ClientConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.RequestTimeout.Std(),
		Retry:   cfg.LLM.Retry,
		Logger:  logger,
	})

	var opts []extract.Option
	if extractStrict || cfg.Extract.StrictSchema {
		opts = append(opts, extract.WithStrictSchema())
	}
	service := extract.NewService(client, logger, opts...)

	spin := ui.NewSpinner("reading menu page...")
	spin.Start()
	table, err := service.ExtractImage(cmd.Context(), imagePath)
	spin.Stop()
	if err != nil {
		ui.Error("extraction failed: %v", err)
		return err
	}

	out := extractOutput
	if out == "" {
		ext := ".csv"
		if extractXLSX {
			ext = ".xlsx"
		}
		out = strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ext
	}

	if extractXLSX {
		err = table.WriteXLSX(out)
	} else {
		err = table.WriteCSV(out)
	}
	if err != nil {
		ui.Error("failed to write table: %v", err)
		return err
	}

	ui.Success("%d rows written to %s", table.Len(), out)
	return nil
}
