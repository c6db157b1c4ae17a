package site2pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// verifyArtifact checks that the exported file is a structurally valid,
// non-empty PDF and returns its page count. A browser that half-wrote the
// stream should fail here instead of shipping a corrupt artifact.
func verifyArtifact(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExport, err)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("%w: %s is empty", ErrExport, path)
	}

	if err := api.ValidateFile(path, nil); err != nil {
		return 0, fmt.Errorf("%w: invalid PDF: %v", ErrExport, err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: counting pages: %v", ErrExport, err)
	}
	return pages, nil
}
