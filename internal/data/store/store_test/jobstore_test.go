package store_test

import (
	"context"
	"testing"

	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/data/redisStore"
	"github.com/akolanti/PDFInsight/internal/data/store"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	jobStore := store.TestJobStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:     jobID,
		Status: jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{
			Parser:       commonModels.ParserSequential,
			QuestionType: commonModels.QuestionConceptual,
			NumQuestions: 4,
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobPayload.Parser != testJob.JobPayload.Parser {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.JobPayload.Parser, testJob.JobPayload.Parser)
		}
		if retrievedJob.JobPayload.NumQuestions != 4 {
			t.Errorf("NumQuestions got %d, want 4", retrievedJob.JobPayload.NumQuestions)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisResultStore_BatchLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	resultStore := store.TestResultStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "batch-trace")
	batchID := "batch_xyz_789"

	summary := "summary of one"
	first := commonModels.AnalysisResult{
		Filename: "one.pdf",
		Summary:  &summary,
		QAPairs:  []commonModels.QARecord{{Question: "Q", Answer: "A"}},
	}
	second := commonModels.AnalysisResult{Filename: "two.pdf"} // failed doc

	t.Run("Empty batch does not exist", func(t *testing.T) {
		if resultStore.BatchExists(ctx, batchID) {
			t.Error("batch should not exist before any result was appended")
		}
	})

	t.Run("Append preserves order", func(t *testing.T) {
		if err := resultStore.AppendResult(ctx, batchID, first); err != nil {
			t.Fatalf("AppendResult failed: %v", err)
		}
		if err := resultStore.AppendResult(ctx, batchID, second); err != nil {
			t.Fatalf("AppendResult failed: %v", err)
		}

		results, err := resultStore.GetResults(ctx, batchID)
		if err != nil {
			t.Fatalf("GetResults failed: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].Filename != "one.pdf" || results[1].Filename != "two.pdf" {
			t.Error("results came back out of append order")
		}
		if results[0].Summary == nil || *results[0].Summary != summary {
			t.Error("summary did not survive the roundtrip")
		}
		if results[1].Summary != nil {
			t.Error("failed document should keep a nil summary")
		}
	})

	t.Run("Batch exists after append", func(t *testing.T) {
		if !resultStore.BatchExists(ctx, batchID) {
			t.Error("batch should exist after results were appended")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
}
