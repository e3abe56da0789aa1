package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/VJd357/Happyplates/internal/domain"
	"github.com/VJd357/Happyplates/internal/observability"
)

// Validator provides input validation for menu documents.
type Validator struct {
	logger *observability.Logger
}

// NewValidator creates a new validator instance.
func NewValidator(logger *observability.Logger) *Validator {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Validator{logger: logger}
}

// ValidateDocumentPath validates that a file path is valid and points to a PDF.
func (v *Validator) ValidateDocumentPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ValidationError("document path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ValidationError(fmt.Sprintf("document does not exist: %s", path), err)
		}
		return domain.ValidationError(fmt.Sprintf("cannot access document: %s", path), err)
	}

	if info.IsDir() {
		return domain.ValidationError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" {
		return domain.ValidationError(fmt.Sprintf("document is not a PDF (has extension %s)", ext), nil)
	}

	// Large menus are fine, just slow.
	const maxSize = 100 * 1024 * 1024 // 100MB
	if info.Size() > maxSize {
		v.logger.Warn().Str("document", path).Int("size_mb", int(info.Size()/(1024*1024))).
			Msg("document is very large, rasterization may take a while")
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.ValidationError(fmt.Sprintf("cannot open document: %s", path), err)
	}
	f.Close()

	return nil
}
