package commonModels

import "errors"

// ParserChoice selects the PDF extraction backend.
type ParserChoice string

const (
	// ParserLayout is the high-fidelity MuPDF-backed parser. It needs a
	// file path, so extraction goes through a transient temp copy.
	ParserLayout ParserChoice = "layout"
	// ParserSequential is the pure-Go page reader. Slightly lower fidelity
	// but reads straight from memory.
	ParserSequential ParserChoice = "sequential"
)

func (p ParserChoice) Valid() bool {
	return p == ParserLayout || p == ParserSequential
}

// QuestionType maps to the instructional template used for Q&A generation.
type QuestionType string

const (
	QuestionFactual     QuestionType = "factual"
	QuestionConceptual  QuestionType = "conceptual"
	QuestionAnalytical  QuestionType = "analytical"
	QuestionApplication QuestionType = "application"
)

func (q QuestionType) Valid() bool {
	switch q {
	case QuestionFactual, QuestionConceptual, QuestionAnalytical, QuestionApplication:
		return true
	}
	return false
}

// Document is one uploaded file treated as a unit of processing. The raw
// bytes live only for the duration of a single extraction call.
type Document struct {
	Name string `json:"name"`
	Raw  []byte `json:"-"`
}

// QARecord is one generated question/answer pair. Order matches the
// generation sequence returned by the model.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnalysisResult is the per-document output of an analysis pass. Summary and
// QAPairs stay nil when the corresponding step failed or was skipped.
type AnalysisResult struct {
	Filename string     `json:"filename"`
	Summary  *string    `json:"summary"`
	QAPairs  []QARecord `json:"qa_pairs"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)

// Failure kinds. Every recoverable failure in the pipeline wraps exactly one
// of these so callers can classify without string matching.
var (
	ErrExtraction = errors.New("extraction failure")
	ErrGeneration = errors.New("generation failure")
	ErrParse      = errors.New("parse failure")
)
