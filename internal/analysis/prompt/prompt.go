package prompt

import (
	"fmt"

	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

var questionTemplates = map[commonModels.QuestionType]string{
	commonModels.QuestionFactual:     "Generate %d factual questions that test knowledge of specific information from the text.",
	commonModels.QuestionConceptual:  "Generate %d conceptual questions that require understanding of main ideas and themes.",
	commonModels.QuestionAnalytical:  "Generate %d analytical questions that require critical thinking and analysis of the content.",
	commonModels.QuestionApplication: "Generate %d questions that ask how the concepts from the text can be applied to real-world situations.",
}

// BuildSummary renders the summary instruction around the first
// config.PromptTextLimit characters of the extracted text.
func BuildSummary(text string) string {
	return fmt.Sprintf(`Please provide a comprehensive summary of the following text, including:
1. Main topics and key points
2. Important findings or conclusions
3. Notable details or examples

Text: %s`, Truncate(text))
}

// BuildQA renders the Q&A instruction for the given question type. The
// response contract is a strict JSON array so the interpreter never has to
// guess at the format. An unknown question type or non-positive count is a
// caller error and fails before any network call.
func BuildQA(text string, questionType commonModels.QuestionType, count int) (string, error) {
	template, ok := questionTemplates[questionType]
	if !ok {
		return "", fmt.Errorf("unknown question type %q", questionType)
	}
	if count < 1 {
		return "", fmt.Errorf("question count must be positive, got %d", count)
	}

	return fmt.Sprintf(`%s
Return a strict JSON array of objects, each with exactly a "question" key and an "answer" key.
No markdown, no extra keys, no text outside the JSON array.
Make answers detailed and comprehensive.

Text: %s`, fmt.Sprintf(template, count), Truncate(text)), nil
}

// Truncate cuts text to the configured prompt budget. Unconditional prefix
// cut - not token-aware.
func Truncate(text string) string {
	if len(text) > config.PromptTextLimit {
		return text[:config.PromptTextLimit]
	}
	return text
}
