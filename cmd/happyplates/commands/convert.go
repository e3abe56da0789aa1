package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VJd357/Happyplates/cmd/happyplates/ui"
	"github.com/VJd357/Happyplates/internal/batch"
	"github.com/VJd357/Happyplates/internal/domain"
	"github.com/VJd357/Happyplates/internal/extract"
	"github.com/VJd357/Happyplates/internal/llm"
	"github.com/VJd357/Happyplates/internal/pdf"
)

var convertStrict bool

var convertCmd = &cobra.Command{
	Use:   "convert <menu.pdf>",
	Short: "Convert a scanned menu PDF into per-page and combined CSV tables",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertStrict, "strict", false,
		"reject model replies that do not match the menu schema")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("no API key: set OPENAI_API_KEY in the environment or a .env file")
	}

	logger := newLogger(cfg)
	ctx := cmd.Context()

	spin := ui.NewSpinner("rasterizing PDF pages...")
	spin.Start()
	rasterizer := pdf.NewRasterizer(logger)
	imageDir, pages, err := rasterizer.Rasterize(ctx, args[0])
	spin.Stop()
	if err != nil {
		ui.Error("rasterization failed: %v", err)
		return err
	}
	ui.Success("rasterized %d pages into %s", len(pages), imageDir)

	client := llm.NewClient(llm.ClientConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.RequestTimeout.Std(),
		Retry:   cfg.LLM.Retry,
		Logger:  logger,
	})

	var opts []extract.Option
	if convertStrict || cfg.Extract.StrictSchema {
		opts = append(opts, extract.WithStrictSchema())
	}
	service := extract.NewService(client, logger, opts...)

	bar := ui.NewProgressBar(int64(len(pages)), "extracting menu pages")
	orchestrator := batch.NewOrchestrator(service, logger,
		domain.ProgressFunc(func(done, total int, status string) {
			bar.SetTotal(int64(total))
			bar.Describe(status)
			bar.Set(int64(done))
		}))

	table, combinedPath, err := orchestrator.ProcessFolder(ctx, imageDir)
	bar.Finish()
	if err != nil {
		ui.Error("batch extraction failed: %v", err)
		return err
	}

	ui.Success("combined table with %d rows written to %s", table.Len(), combinedPath)
	return nil
}
