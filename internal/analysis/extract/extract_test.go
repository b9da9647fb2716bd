package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

// minimalPDF assembles a one-page PDF with the given text drawn in Helvetica.
// Object offsets are recorded while writing so the xref table is always
// consistent.
func minimalPDF(text string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 6)

	buf.WriteString("%PDF-1.4\n")
	writeObj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	xrefPos := buf.Len()
	buf.WriteString("xref\n0 6\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	return buf.Bytes()
}

func TestText_ValidPDF_BothParsers(t *testing.T) {
	const content = "extraction fidelity check"
	doc := commonModels.Document{Name: "fixture.pdf", Raw: minimalPDF(content)}

	for _, parser := range []commonModels.ParserChoice{commonModels.ParserLayout, commonModels.ParserSequential} {
		t.Run(string(parser), func(t *testing.T) {
			got, err := Text(doc, parser)
			if err != nil {
				t.Fatalf("Text failed under %s parser: %v", parser, err)
			}

			normalized := strings.Join(strings.Fields(got), " ")
			if !strings.Contains(normalized, content) {
				t.Errorf("%s parser lost the page text: got %q, want it to contain %q", parser, normalized, content)
			}
		})
	}
}

func TestText_FailureModes(t *testing.T) {
	tests := []struct {
		name string
		doc  commonModels.Document
	}{
		{
			name: "Empty_Document",
			doc:  commonModels.Document{Name: "empty.pdf", Raw: nil},
		},
		{
			name: "Unsupported_Extension",
			doc:  commonModels.Document{Name: "report.xlsx", Raw: []byte("data")},
		},
		{
			name: "No_Extension",
			doc:  commonModels.Document{Name: "README", Raw: []byte("data")},
		},
		{
			name: "Garbage_PDF_Bytes",
			doc:  commonModels.Document{Name: "broken.pdf", Raw: []byte("this is not a pdf")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text(tt.doc, commonModels.ParserLayout)
			if err == nil {
				t.Fatal("expected an extraction error, got none")
			}
			if !errors.Is(err, commonModels.ErrExtraction) {
				t.Errorf("error should wrap ErrExtraction, got: %v", err)
			}
		})
	}
}

func TestText_PlainTextFile(t *testing.T) {
	content := "plain text content for extraction"
	doc := commonModels.Document{Name: "notes.txt", Raw: []byte(content)}

	got, err := Text(doc, commonModels.ParserLayout)
	if err != nil {
		t.Fatalf("Text failed on txt input: %v", err)
	}
	if !strings.Contains(got, "plain text content") {
		t.Errorf("extracted text missing content, got %q", got)
	}
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		name string
		want commonModels.DocType
	}{
		{"paper.pdf", commonModels.PDF},
		{"paper.PDF", commonModels.PDF},
		{"letter.docx", commonModels.DOCX},
		{"notes.txt", commonModels.DOCX},
		{"memo.rtf", commonModels.DOCX},
		{"image.png", commonModels.ERR},
		{"noextension", commonModels.ERR},
	}

	for _, tt := range tests {
		if got := getDocType(tt.name); got != tt.want {
			t.Errorf("getDocType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWriteTempCopy_Cleanup(t *testing.T) {
	path, cleanup, err := writeTempCopy([]byte("pdf bytes"), ".pdf")
	if err != nil {
		t.Fatalf("writeTempCopy failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("temp copy should exist before cleanup: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil || string(raw) != "pdf bytes" {
		t.Errorf("temp copy content mismatch: %q (err %v)", raw, err)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("temp copy still on disk after cleanup")
	}

	// a second cleanup must be harmless
	cleanup()
}
