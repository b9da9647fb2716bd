package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

// QAText renders Q&A pairs as the plain-text download artifact:
// "Q{i}: {question}\nA: {answer}" blocks joined by blank lines.
func QAText(pairs []commonModels.QARecord) string {
	blocks := make([]string, 0, len(pairs))
	for i, qa := range pairs {
		blocks = append(blocks, fmt.Sprintf("Q%d: %s\nA: %s", i+1, qa.Question, qa.Answer))
	}
	return strings.Join(blocks, "\n\n")
}

// ResultsJSON renders the batch output as pretty-printed JSON, one
// AnalysisResult per processed document in input order.
func ResultsJSON(results []commonModels.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
