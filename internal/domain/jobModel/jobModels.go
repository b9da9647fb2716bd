package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	AnalyzeInit InternalStatus = "Init"
	ExtractCall InternalStatus = "Extraction"
	SummaryCall InternalStatus = "Summary"
	QACall      InternalStatus = "QAGeneration"
	BatchStep   InternalStatus = "BatchProcessing"
	Error       InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeAnalyze JobType = "Analyze"
	JobTypeBatch   JobType = "Batch"
)

type Job struct {
	Id          string         `json:"id"`
	BatchId     string         `json:"batch_id,omitempty"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// DocumentRef points at one uploaded file spooled to the temp directory.
// The worker owns the file and removes it after the job finishes.
type DocumentRef struct {
	DisplayName string `json:"display_name"`
	Path        string `json:"path"`
}

type JobPayload struct {
	Documents    []DocumentRef                 `json:"documents,omitempty"`
	Parser       commonModels.ParserChoice     `json:"parser,omitempty"`
	QuestionType commonModels.QuestionType     `json:"question_type,omitempty"`
	NumQuestions int                           `json:"num_questions,omitempty"`
	Results      []commonModels.AnalysisResult `json:"results,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// ResultStore keeps the per-document results of a batch as an append-only
// list keyed by batch id, so a half-finished batch is already exportable.
type ResultStore interface {
	AppendResult(ctx context.Context, batchId string, result commonModels.AnalysisResult) error
	GetResults(ctx context.Context, batchId string) ([]commonModels.AnalysisResult, error)
	BatchExists(ctx context.Context, batchId string) bool
}
