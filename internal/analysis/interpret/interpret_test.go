package interpret

import (
	"errors"
	"testing"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

func TestParseQA_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "Clean_Array",
			raw:       `[{"question":"What is Go?","answer":"A language."},{"question":"Who made it?","answer":"Google."}]`,
			wantCount: 2,
		},
		{
			name: "Markdown_Fenced",
			raw: "```json\n" +
				`[{"question":"Q1","answer":"A1"}]` +
				"\n```",
			wantCount: 1,
		},
		{
			name:      "Chatty_Preamble_And_Postscript",
			raw:       `Sure! Here are your questions: [{"question":"Q1","answer":"A1"}] Let me know if you need more.`,
			wantCount: 1,
		},
		{
			name:    "No_Array_At_All",
			raw:     "I cannot generate questions for this text.",
			wantErr: true,
		},
		{
			name:    "Malformed_JSON",
			raw:     `[{"question":"Q1","answer":}]`,
			wantErr: true,
		},
		{
			name:    "Extra_Keys_Rejected",
			raw:     `[{"question":"Q1","answer":"A1","difficulty":"hard"}]`,
			wantErr: true,
		},
		{
			name:    "Empty_Array",
			raw:     `[]`,
			wantErr: true,
		},
		{
			name:    "Missing_Answer",
			raw:     `[{"question":"Q1","answer":""}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseQA(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected a parse error, got none")
				}
				if !errors.Is(err, commonModels.ErrParse) {
					t.Errorf("error should wrap ErrParse, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQA failed: %v", err)
			}
			if len(records) != tt.wantCount {
				t.Errorf("got %d records, want %d", len(records), tt.wantCount)
			}
		})
	}
}

func TestParseQA_OrderPreserved(t *testing.T) {
	raw := `[
		{"question":"first","answer":"a"},
		{"question":"second","answer":"b"},
		{"question":"third","answer":"c"}
	]`
	records, err := ParseQA(raw)
	if err != nil {
		t.Fatalf("ParseQA failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, q := range want {
		if records[i].Question != q {
			t.Errorf("record %d: got %q, want %q", i, records[i].Question, q)
		}
	}
}
