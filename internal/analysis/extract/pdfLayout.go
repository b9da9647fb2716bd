package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/gen2brain/go-fitz"
)

// extractLayout runs the MuPDF backend. fitz wants a file path, so the raw
// bytes are spooled to a temp file that is removed on every exit path.
func extractLayout(doc commonModels.Document) (string, error) {
	tmpPath, cleanup, err := writeTempCopy(doc.Raw, ".pdf")
	if err != nil {
		return "", err
	}
	defer cleanup()

	f, err := fitz.New(tmpPath)
	if err != nil {
		logger.Error("failed opening pdf with layout parser", "error", err)
		return "", fmt.Errorf("%w: layout parser open: %v", commonModels.ErrExtraction, err)
	}
	defer f.Close()

	var text strings.Builder
	numPages := f.NumPage()
	logger.Debug("extractLayout", "number of pages", numPages)
	for i := 0; i < numPages; i++ {
		content, err := f.Text(i)
		if err != nil {
			// keep going with the remaining pages
			logger.Error("error extracting page text", "page", i+1, "error", err)
			continue
		}
		text.WriteString(content)
	}
	return text.String(), nil
}

// writeTempCopy spools raw bytes to a temp file for parsers that need path
// access. The returned cleanup always removes the file, even when the caller
// bails out mid-extraction.
func writeTempCopy(raw []byte, suffix string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "pdfinsight-*"+suffix)
	if err != nil {
		return "", nil, fmt.Errorf("%w: temp file: %v", commonModels.ErrExtraction, err)
	}
	path := tmp.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Error("error removing temp copy", "path", path, "error", err)
		}
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("%w: temp write: %v", commonModels.ErrExtraction, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("%w: temp close: %v", commonModels.ErrExtraction, err)
	}
	return path, cleanup, nil
}
