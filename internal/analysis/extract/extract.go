package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var logger = logger_i.NewLogger("Extractor")

// Text returns the concatenated page text of the document under the chosen
// parser. Page order is preserved; no page-break markers are inserted beyond
// whatever the backend emits. Every failure wraps commonModels.ErrExtraction.
func Text(doc commonModels.Document, choice commonModels.ParserChoice) (string, error) {
	if len(doc.Raw) == 0 {
		return "", fmt.Errorf("%w: empty document %q", commonModels.ErrExtraction, doc.Name)
	}

	switch getDocType(doc.Name) {
	case commonModels.PDF:
		return extractPDF(doc, choice)
	case commonModels.DOCX:
		return extractDocxTxtRtf(doc)
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", commonModels.ErrExtraction, filepath.Ext(doc.Name))
	}
}

func extractPDF(doc commonModels.Document, choice commonModels.ParserChoice) (string, error) {
	if err := validatePDF(doc.Raw); err != nil {
		return "", err
	}

	switch choice {
	case commonModels.ParserLayout:
		return extractLayout(doc)
	case commonModels.ParserSequential:
		return extractSequential(doc)
	default:
		return "", fmt.Errorf("%w: unknown parser %q", commonModels.ErrExtraction, choice)
	}
}

// validatePDF runs a relaxed pdfcpu pass over the raw bytes so structurally
// broken uploads fail here with a readable cause instead of deep inside a
// parser.
func validatePDF(raw []byte) error {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	pageCount, err := api.PageCount(bytes.NewReader(raw), cfg)
	if err != nil {
		logger.Error("pdf validation failed", "error", err)
		return fmt.Errorf("%w: malformed pdf: %v", commonModels.ErrExtraction, err)
	}
	if pageCount == 0 {
		return fmt.Errorf("%w: pdf has no pages", commonModels.ErrExtraction)
	}
	logger.Debug("pdf validated", "pages", pageCount)
	return nil
}

func getDocType(name string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}
