// Package pdf implements document rasterization using go-fitz.
package pdf

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/VJd357/Happyplates/internal/domain"
	"github.com/VJd357/Happyplates/internal/observability"
)

// Rasterizer renders every page of a menu PDF to a PNG file in an output
// directory derived from the document's base name. The page images are left
// on disk for the extraction client; there is no automatic cleanup.
type Rasterizer struct {
	logger *observability.Logger
}

// NewRasterizer creates a new Rasterizer.
func NewRasterizer(logger *observability.Logger) *Rasterizer {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Rasterizer{logger: logger.WithComponent("rasterizer")}
}

// OutputDirFor derives the per-document output directory from the document
// path: base name without extension, spaces replaced by underscores.
func OutputDirFor(docPath string) string {
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return strings.ReplaceAll(base, " ", "_")
}

// PageFileName names a rendered page image, 1-based.
func PageFileName(pageNumber int) string {
	return fmt.Sprintf("menu_section_page_%d.png", pageNumber)
}

// Rasterize renders every page of the document into the derived output
// directory (created if absent, reused if present) and returns the directory
// path plus one PageImage per page. The operation is all-or-nothing: if the
// document cannot be opened or any page cannot be rendered, an error is
// returned and the caller must abort the pipeline.
func (r *Rasterizer) Rasterize(ctx context.Context, docPath string) (string, []domain.PageImage, error) {
	validator := NewValidator(r.logger)
	if err := validator.ValidateDocumentPath(docPath); err != nil {
		return "", nil, err
	}

	outputDir := OutputDirFor(docPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", nil, domain.IOError("failed to create output directory", err)
	}

	doc, err := fitz.New(docPath)
	if err != nil {
		return "", nil, domain.RasterizeError("failed to open document", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return "", nil, domain.RasterizeError("document has no pages", nil)
	}

	r.logger.Info().Str("document", docPath).Int("pages", pageCount).Msg("rasterizing document")

	pages := make([]domain.PageImage, 0, pageCount)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		default:
		}

		img, err := doc.Image(pageNum)
		if err != nil {
			return "", nil, domain.RasterizeError(fmt.Sprintf("failed to render page %d", pageNum+1), err)
		}

		outputPath := filepath.Join(outputDir, PageFileName(pageNum+1))
		f, err := os.Create(outputPath)
		if err != nil {
			return "", nil, domain.IOError(fmt.Sprintf("failed to create image file for page %d", pageNum+1), err)
		}

		err = png.Encode(f, img)
		f.Close()
		if err != nil {
			return "", nil, domain.RasterizeError(fmt.Sprintf("failed to encode page %d as PNG", pageNum+1), err)
		}

		bounds := img.Bounds()
		pages = append(pages, domain.PageImage{
			PageNumber: pageNum + 1,
			ImagePath:  outputPath,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		})
	}

	return outputDir, pages, nil
}
