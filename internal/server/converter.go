package server

import (
	"context"

	"github.com/VJd357/Happyplates/internal/batch"
	"github.com/VJd357/Happyplates/internal/config"
	"github.com/VJd357/Happyplates/internal/domain"
	"github.com/VJd357/Happyplates/internal/extract"
	"github.com/VJd357/Happyplates/internal/llm"
	"github.com/VJd357/Happyplates/internal/menutable"
	"github.com/VJd357/Happyplates/internal/observability"
	"github.com/VJd357/Happyplates/internal/pdf"
)

// Converter runs the whole pipeline for one uploaded document. The web shell
// depends on this interface so tests can substitute a stub.
type Converter interface {
	Convert(ctx context.Context, pdfPath, apiKey string, report domain.ProgressFunc) (*menutable.Table, string, error)
}

// PipelineConverter wires the rasterizer, extraction service and batch
// orchestrator together with a per-request API credential. The credential is
// held only for the duration of the call.
type PipelineConverter struct {
	cfg    *config.Config
	logger *observability.Logger
}

// NewPipelineConverter creates the production converter.
func NewPipelineConverter(cfg *config.Config, logger *observability.Logger) *PipelineConverter {
	if logger == nil {
		logger = observability.Nop()
	}
	return &PipelineConverter{cfg: cfg, logger: logger}
}

// Convert rasterizes the document and processes every page image in order.
func (c *PipelineConverter) Convert(ctx context.Context, pdfPath, apiKey string, report domain.ProgressFunc) (*menutable.Table, string, error) {
	rasterizer := pdf.NewRasterizer(c.logger)
	imageDir, _, err := rasterizer.Rasterize(ctx, pdfPath)
	if err != nil {
		return nil, "", err
	}

	client := llm.NewClient(llm.ClientConfig{
		APIKey:  apiKey,
		Model:   c.cfg.LLM.Model,
		BaseURL: c.cfg.LLM.BaseURL,
		Timeout: c.cfg.LLM.RequestTimeout.Std(),
		Retry:   c.cfg.LLM.Retry,
		Logger:  c.logger,
	})

	var opts []extract.Option
	if c.cfg.Extract.StrictSchema {
		opts = append(opts, extract.WithStrictSchema())
	}
	service := extract.NewService(client, c.logger, opts...)

	orchestrator := batch.NewOrchestrator(service, c.logger, report)
	return orchestrator.ProcessFolder(ctx, imageDir)
}
