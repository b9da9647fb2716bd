package worker

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/akolanti/PDFInsight/internal/config"
	jobmodel "github.com/akolanti/PDFInsight/internal/domain/jobModel"
	"github.com/akolanti/PDFInsight/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 10*time.Minute)
	defer cancel()
	logger.Debug("Processing job:", "jobId", job.Id, "traceId", job.TraceId)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	if job.JobType == jobmodel.JobTypeBatch {
		job = _analysisService.ProcessBatch(ctx, job)
	} else {
		job = _analysisService.AnalyzeDocument(ctx, job)
	}

	countOutcomes(job)
	removeSpooledUploads(job)

	job.EndTime = time.Now()
	if job.Status != jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusComplete)
	} else {
		saveJobState(ctx, job, jobmodel.JobStatusError)
	}
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

// The handler spools uploads to the temp dir; once the job is done the files
// have no further use.
func removeSpooledUploads(job jobmodel.Job) {
	for _, ref := range job.JobPayload.Documents {
		if err := os.Remove(ref.Path); err != nil && !os.IsNotExist(err) {
			logger.Error("Error removing uploaded file", "path", ref.Path, "error", err)
		}
	}
}

func countOutcomes(job jobmodel.Job) {
	for _, result := range job.JobPayload.Results {
		if result.Summary == nil && result.QAPairs == nil {
			metrics.CountDocumentProcessed("failed")
		} else {
			metrics.CountDocumentProcessed("ok")
		}
	}
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
