package api

import (
	"time"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	BatchId   string            `json:"batch_id,omitempty" example:"batch_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status          string                        `json:"status"`
	AnalysisResults []commonModels.AnalysisResult `json:"analysis_results,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	BatchId   string `json:"batch_id,omitempty"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type AnalyzeRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
	Parser       string `json:"parser,omitempty"`
	QuestionType string `json:"question_type,omitempty"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
