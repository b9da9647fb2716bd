package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// extractSequential reads pages straight from memory with the pure-Go
// reader. Fidelity is lower than the layout parser on complex documents but
// there is no temp file and no cgo.
func extractSequential(doc commonModels.Document) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(doc.Raw), int64(len(doc.Raw)))
	if err != nil {
		logger.Error("failed opening of pdf file", "error", err)
		return "", fmt.Errorf("%w: sequential parser open: %v", commonModels.ErrExtraction, err)
	}

	var text strings.Builder
	numPages := r.NumPage()
	logger.Debug("extractSequential", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			logger.Debug("extractSequential", "null page", i)
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log and continue with other pages
			logger.Error("error parsing page content", "page", i, "error", err)
			continue
		}
		text.WriteString(content)
	}
	return text.String(), nil
}

// extractDocxTxtRtf reads a .docx, .rtf or plaintext upload through lu4p/cat,
// which wants a file path.
func extractDocxTxtRtf(doc commonModels.Document) (string, error) {
	tmpPath, cleanup, err := writeTempCopy(doc.Raw, strings.ToLower(filepath.Ext(doc.Name)))
	if err != nil {
		return "", err
	}
	defer cleanup()

	text, err := cat.File(tmpPath)
	if err != nil {
		logger.Error("error extracting content from doc", "error", err)
		return "", fmt.Errorf("%w: doc extract: %v", commonModels.ErrExtraction, err)
	}
	return text, nil
}

// protectExtract guards GetPlainText with a timeout - some malformed pages
// make the reader spin.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		logger.Error("pageExtract", "timeout", true)
		return "", errors.New("timeout")
	}
}
