package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/PDFInsight/internal/config"
	"github.com/akolanti/PDFInsight/internal/data/redisStore"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
)

// RedisResultStore keeps batch results as a redis list per batch id. Results
// land in processing order, which matches upload order since batches run
// sequentially.
type RedisResultStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisResultStore(ctx context.Context) *RedisResultStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisResultStore)
	if inner == nil {
		return nil
	}
	return &RedisResultStore{
		store:  inner,
		logger: logger_i.NewLogger("ResultStore"),
	}
}

func (s *RedisResultStore) AppendResult(ctx context.Context, batchId string, result commonModels.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err := s.store.ListPush(ctx, batchId, data); err != nil {
		return err
	}
	return s.store.Expire(ctx, batchId, config.RedisResultStoreTTL)
}

func (s *RedisResultStore) GetResults(ctx context.Context, batchId string) ([]commonModels.AnalysisResult, error) {
	entries, err := s.store.ListGetAll(ctx, batchId)
	if err != nil {
		return nil, err
	}

	results := make([]commonModels.AnalysisResult, 0, len(entries))
	for _, entry := range entries {
		var r commonModels.AnalysisResult
		if err := json.Unmarshal([]byte(entry), &r); err != nil {
			s.logger.Error("corrupt result entry", "batchId", batchId, "error", err)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *RedisResultStore) BatchExists(ctx context.Context, batchId string) bool {
	exists, err := s.store.Exists(ctx, batchId)
	if err != nil {
		return false
	}
	return exists
}

func TestResultStore(store *redisStore.Store) *RedisResultStore {
	return &RedisResultStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
