package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/internal/domain/jobModel"
	"github.com/akolanti/PDFInsight/internal/job"
	"github.com/akolanti/PDFInsight/internal/metrics"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "jobId", newJob.id)
	logJH.Info("To create new job", "type", newJob.jobType)
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// GetBatchResults reads from the durable result store, so a half-finished
// batch already exports what has been processed so far.
func GetBatchResults(batchId string, traceId string) ([]commonModels.AnalysisResult, bool) {
	if handlerInstance == nil || batchId == "" {
		return nil, false
	}
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if !handlerInstance.service.ResultStore.BatchExists(ctxC, batchId) {
		return nil, false
	}
	results, err := handlerInstance.service.ResultStore.GetResults(ctxC, batchId)
	if err != nil {
		logJH.Error("Error reading batch results", "batchId", batchId, "error", err)
		return nil, false
	}
	return results, true
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType
	_job.BatchId = newJob.batchId
	_job.CurrentStep = jobModel.AnalyzeInit
	_job.JobPayload = jobModel.JobPayload{
		Documents:    newJob.documents,
		Parser:       newJob.parser,
		QuestionType: newJob.questionType,
		NumQuestions: newJob.numQuestions,
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//a new worker is started every N requests, or immediately for batch
	//jobs - batches fan out into several extraction + LLM calls and hog a
	//worker for a while
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeBatch {
		metrics.StartDispatcherSignalCount()
		logJH.Debug("Request count ", "count", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
