package prompt

import (
	"strings"
	"testing"

	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

func TestBuildSummary_ShortTextKeptWhole(t *testing.T) {
	text := "A short document about turtles."
	p := BuildSummary(text)

	if !strings.Contains(p, text) {
		t.Errorf("prompt should contain the full text, got: %s", p)
	}
	if !strings.Contains(p, "Main topics and key points") {
		t.Error("summary instruction missing from prompt")
	}
}

func TestBuildSummary_LongTextTruncated(t *testing.T) {
	text := strings.Repeat("x", config.PromptTextLimit+500)
	p := BuildSummary(text)

	if strings.Contains(p, text) {
		t.Error("full oversized text should not survive into the prompt")
	}
	if !strings.Contains(p, text[:config.PromptTextLimit]) {
		t.Error("truncated prefix missing from prompt")
	}
}

func TestBuildQA_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		questionType commonModels.QuestionType
		count        int
		wantErr      bool
		wantSnippet  string
	}{
		{
			name:         "Factual",
			questionType: commonModels.QuestionFactual,
			count:        5,
			wantSnippet:  "Generate 5 factual questions",
		},
		{
			name:         "Conceptual",
			questionType: commonModels.QuestionConceptual,
			count:        3,
			wantSnippet:  "Generate 3 conceptual questions",
		},
		{
			name:         "Analytical",
			questionType: commonModels.QuestionAnalytical,
			count:        2,
			wantSnippet:  "Generate 2 analytical questions",
		},
		{
			name:         "Application",
			questionType: commonModels.QuestionApplication,
			count:        4,
			wantSnippet:  "applied to real-world situations",
		},
		{
			name:         "Unknown_Type_Fails_Fast",
			questionType: commonModels.QuestionType("trivia"),
			count:        3,
			wantErr:      true,
		},
		{
			name:         "Zero_Count_Fails_Fast",
			questionType: commonModels.QuestionFactual,
			count:        0,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildQA("some document text", tt.questionType, tt.count)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildQA failed: %v", err)
			}
			if !strings.Contains(p, tt.wantSnippet) {
				t.Errorf("prompt missing %q, got: %s", tt.wantSnippet, p)
			}
			if !strings.Contains(p, "JSON array") {
				t.Error("response format contract missing from prompt")
			}
		})
	}
}

func TestTruncate_Boundary(t *testing.T) {
	exact := strings.Repeat("a", config.PromptTextLimit)
	if got := Truncate(exact); len(got) != config.PromptTextLimit {
		t.Errorf("text at the limit should pass untouched, got len %d", len(got))
	}
	over := exact + "b"
	if got := Truncate(over); len(got) != config.PromptTextLimit {
		t.Errorf("oversized text should be cut to the limit, got len %d", len(got))
	}
}
