package analysis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akolanti/PDFInsight/internal/analysis/extract"
	"github.com/akolanti/PDFInsight/internal/analysis/interpret"
	"github.com/akolanti/PDFInsight/internal/analysis/llm"
	"github.com/akolanti/PDFInsight/internal/analysis/prompt"
	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/internal/domain/jobModel"
	"github.com/akolanti/PDFInsight/internal/metrics"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
)

// Service is the worker's whole view of the analysis pipeline. The worker
// never touches the parsers or the LLM provider directly.
type Service interface {
	AnalyzeDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	ProcessBatch(ctx context.Context, job jobModel.Job) jobModel.Job
	ProcessAll(ctx context.Context, documents []commonModels.Document, parser commonModels.ParserChoice) []commonModels.AnalysisResult
}

// ExtractFunc matches extract.Text; injected so tests can fail extraction
// for a chosen document without real PDF bytes.
type ExtractFunc func(doc commonModels.Document, choice commonModels.ParserChoice) (string, error)

type service struct {
	llmProvider llm.Provider
	resultStore jobModel.ResultStore
	extractText ExtractFunc
	logger      *logger_i.Logger
}

// NewService wires the production pipeline.
func NewService(provider llm.Provider, results jobModel.ResultStore) Service {
	return NewServiceWithExtractor(provider, results, extract.Text)
}

// NewServiceWithExtractor exists for tests that need a controllable
// extraction step.
func NewServiceWithExtractor(provider llm.Provider, results jobModel.ResultStore, extractor ExtractFunc) Service {
	return &service{
		llmProvider: provider,
		resultStore: results,
		extractText: extractor,
		logger:      logger_i.NewLogger("Analysis Service"),
	}
}

// AnalyzeDocument runs the single-document flow: extract, summarize, then
// generate Q&A with the requested type and count. Summary/Q&A failures leave
// the matching field absent and annotate the job; an extraction failure is
// terminal since nothing downstream can run.
func (s *service) AnalyzeDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", job.Id)

	if len(job.JobPayload.Documents) == 0 {
		return s.jobError(job, fmt.Errorf("no document in payload"), "EMPTY_PAYLOAD", false)
	}
	doc, err := loadDocument(job.JobPayload.Documents[0])
	if err != nil {
		return s.jobError(job, err, "DOCUMENT_READ_FAILURE", false)
	}

	job.CurrentStep = jobModel.ExtractCall
	text, err := s.executeExtractStep(doc, job.JobPayload.Parser)
	if err != nil {
		log.Error("extraction failed", "document", doc.Name, "error", err)
		return s.jobError(job, err, "EXTRACTION_FAILURE", false)
	}

	result := commonModels.AnalysisResult{Filename: doc.Name}
	var stepFailures []string

	job.CurrentStep = jobModel.SummaryCall
	summary, err := s.executeSummaryStep(ctx, text)
	if err != nil {
		log.Error("summary generation failed", "document", doc.Name, "error", err)
		stepFailures = append(stepFailures, "summary: "+err.Error())
	} else {
		result.Summary = &summary
	}

	job.CurrentStep = jobModel.QACall
	pairs, err := s.executeQAStep(ctx, text, job.JobPayload.QuestionType, job.JobPayload.NumQuestions)
	if err != nil {
		log.Error("Q&A generation failed", "document", doc.Name, "error", err)
		stepFailures = append(stepFailures, "qa: "+err.Error())
	} else {
		result.QAPairs = pairs
	}

	job.JobPayload.Results = []commonModels.AnalysisResult{result}
	job.CurrentStep = jobModel.Complete
	if len(stepFailures) > 0 {
		// Partial result: surfaced to the user, job itself still completes.
		job.Error = jobModel.JobError{Code: 0, Message: joinFailures(stepFailures), Retry: true}
	}
	return job
}

// ProcessBatch applies the fixed batch recipe and records every document in
// the result store as it finishes.
func (s *service) ProcessBatch(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("batch_analysis", time.Since(start)) }()

	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", job.Id)
	job.CurrentStep = jobModel.BatchStep

	documents := make([]commonModels.Document, 0, len(job.JobPayload.Documents))
	for _, ref := range job.JobPayload.Documents {
		doc, err := loadDocument(ref)
		if err != nil {
			log.Error("skipping unreadable upload", "document", ref.DisplayName, "error", err)
			documents = append(documents, commonModels.Document{Name: ref.DisplayName})
			continue
		}
		documents = append(documents, doc)
	}

	parser := job.JobPayload.Parser
	if parser == "" {
		parser = commonModels.ParserLayout
	}

	results := s.ProcessAll(ctx, documents, parser)
	for _, r := range results {
		if err := s.resultStore.AppendResult(ctx, job.BatchId, r); err != nil {
			log.Error("failed to record batch result", "document", r.Filename, "error", err)
		}
	}

	job.JobPayload.Results = results
	job.CurrentStep = jobModel.Complete
	return job
}

// ProcessAll is the batch core: one AnalysisResult per input document, in
// input order. Per document: extract, summarize, then a fixed number of
// factual Q&A pairs. A failed step leaves its field absent and never stops
// the remaining documents.
func (s *service) ProcessAll(ctx context.Context, documents []commonModels.Document, parser commonModels.ParserChoice) []commonModels.AnalysisResult {
	results := make([]commonModels.AnalysisResult, 0, len(documents))

	for _, doc := range documents {
		result := commonModels.AnalysisResult{Filename: doc.Name}

		text, err := s.executeExtractStep(doc, parser)
		if err != nil {
			s.logger.Error("batch extraction failed", "document", doc.Name, "error", err)
			results = append(results, result)
			continue
		}

		if summary, err := s.executeSummaryStep(ctx, text); err != nil {
			s.logger.Error("batch summary failed", "document", doc.Name, "error", err)
		} else {
			result.Summary = &summary
		}

		if pairs, err := s.executeQAStep(ctx, text, commonModels.QuestionFactual, config.BatchQuestionCount); err != nil {
			s.logger.Error("batch Q&A failed", "document", doc.Name, "error", err)
		} else {
			result.QAPairs = pairs
		}

		results = append(results, result)
	}
	return results
}

func (s *service) executeSummaryStep(ctx context.Context, text string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_summary", time.Since(start)) }()

	callCtx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	return s.llmProvider.Generate(callCtx, prompt.BuildSummary(text))
}

func (s *service) executeQAStep(ctx context.Context, text string, questionType commonModels.QuestionType, count int) ([]commonModels.QARecord, error) {
	qaPrompt, err := prompt.BuildQA(text, questionType, count)
	if err != nil {
		// Caller error - fails before any network call.
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_qa", time.Since(start)) }()

	callCtx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	raw, err := s.llmProvider.Generate(callCtx, qaPrompt)
	if err != nil {
		return nil, err
	}
	return interpret.ParseQA(raw)
}

func (s *service) executeExtractStep(doc commonModels.Document, parser commonModels.ParserChoice) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()
	return s.extractText(doc, parser)
}

func loadDocument(ref jobModel.DocumentRef) (commonModels.Document, error) {
	raw, err := os.ReadFile(ref.Path)
	if err != nil {
		return commonModels.Document{}, fmt.Errorf("reading upload %q: %w", ref.DisplayName, err)
	}
	return commonModels.Document{Name: ref.DisplayName, Raw: raw}, nil
}
