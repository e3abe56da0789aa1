// Package batch walks a directory of page images, extracts a table per
// image and concatenates the results into one combined table.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/VJd357/Happyplates/internal/domain"
	"github.com/VJd357/Happyplates/internal/menutable"
	"github.com/VJd357/Happyplates/internal/observability"
)

// imageExtensions are matched case-sensitively against the stored file name.
var imageExtensions = []string{".png", ".jpg", ".jpeg"}

var pageIndexPattern = regexp.MustCompile(`menu_section_page_(\d+)\.`)

// ImageExtractor produces a table for one image, or an explicit failure.
type ImageExtractor interface {
	ExtractImage(ctx context.Context, imagePath string) (*menutable.Table, error)
}

// Orchestrator processes every image in a folder sequentially. Per-image
// failures are logged and skipped; only enumeration and write failures are
// fatal to the batch.
type Orchestrator struct {
	extractor ImageExtractor
	logger    *observability.Logger
	reporter  domain.ProgressReporter
}

// NewOrchestrator creates a new batch orchestrator. The reporter may be nil.
func NewOrchestrator(extractor ImageExtractor, logger *observability.Logger, reporter domain.ProgressReporter) *Orchestrator {
	if logger == nil {
		logger = observability.Nop()
	}
	if reporter == nil {
		reporter = domain.ProgressFunc(func(int, int, string) {})
	}
	return &Orchestrator{
		extractor: extractor,
		logger:    logger.WithComponent("batch"),
		reporter:  reporter,
	}
}

// ProcessFolder extracts every image in imageDir, persists one CSV per
// successfully parsed image under "<imageDirBase>_output/", concatenates the
// persisted tables into "<imageDirBase>_output.csv" and returns the combined
// table plus its path.
func (o *Orchestrator) ProcessFolder(ctx context.Context, imageDir string) (*menutable.Table, string, error) {
	images, err := listImages(imageDir)
	if err != nil {
		return nil, "", err
	}

	outputDir := filepath.Join(filepath.Dir(imageDir), filepath.Base(imageDir)+"_output")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, "", domain.IOError("failed to create output directory", err)
	}

	total := len(images)
	if total == 0 {
		// Nothing to do; report completion rather than divide by zero.
		o.reporter.Progress(0, 0, "no images to process")
	}

	for i, name := range images {
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		default:
		}

		imagePath := filepath.Join(imageDir, name)
		table, err := o.extractor.ExtractImage(ctx, imagePath)
		if err != nil {
			// Local failure: no output file for this image, batch continues.
			o.logger.Warn().Str("image", imagePath).Err(err).Msg("skipping image")
		} else {
			csvName := strings.TrimSuffix(name, filepath.Ext(name)) + ".csv"
			csvPath := filepath.Join(outputDir, csvName)
			if err := table.WriteCSV(csvPath); err != nil {
				return nil, "", err
			}
			o.logger.Info().Str("image", imagePath).Str("table", csvPath).
				Int("rows", table.Len()).Msg("saved per-image table")
		}

		o.reporter.Progress(i+1, total, fmt.Sprintf("processing %d of %d images", i+1, total))
	}

	return o.combine(outputDir)
}

// combine concatenates every persisted per-image table, in discovery order,
// into "<outputDir>.csv".
func (o *Orchestrator) combine(outputDir string) (*menutable.Table, string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, "", domain.IOError("failed to list output directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sortByPageIndex(names)

	combined := menutable.New()
	for _, name := range names {
		t, err := menutable.ReadCSV(filepath.Join(outputDir, name))
		if err != nil {
			return nil, "", err
		}
		combined.Append(t)
	}

	combinedPath := outputDir + ".csv"
	if err := combined.WriteCSV(combinedPath); err != nil {
		return nil, "", err
	}

	o.logger.Info().Str("table", combinedPath).Int("rows", combined.Len()).
		Msg("saved combined table")

	return combined, combinedPath, nil
}

// listImages returns image file names in deterministic processing order.
func listImages(imageDir string) ([]string, error) {
	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return nil, domain.IOError("failed to list image directory", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, ext := range imageExtensions {
			if strings.HasSuffix(entry.Name(), ext) {
				names = append(names, entry.Name())
				break
			}
		}
	}

	sortByPageIndex(names)
	return names, nil
}

// sortByPageIndex orders names numerically by the page index embedded by the
// rasterizer, so the combined table reads page 1, 2, 3... regardless of what
// order the filesystem listed them in. Names without an index sort after
// indexed ones, lexicographically.
func sortByPageIndex(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		pi, iOK := pageIndex(names[i])
		pj, jOK := pageIndex(names[j])
		switch {
		case iOK && jOK:
			return pi < pj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return names[i] < names[j]
		}
	})
}

func pageIndex(name string) (int, bool) {
	m := pageIndexPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
