package analysis

import (
	"net/http"
	"strings"

	"github.com/akolanti/PDFInsight/internal/domain/jobModel"
)

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func joinFailures(failures []string) string {
	return strings.Join(failures, "; ")
}
