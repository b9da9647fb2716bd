package store

import (
	"context"
	"sync"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

type InMemoryResultStore struct {
	mu      sync.RWMutex
	batches map[string][]commonModels.AnalysisResult
}

func InitInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{
		batches: make(map[string][]commonModels.AnalysisResult),
	}
}

func (s *InMemoryResultStore) AppendResult(ctx context.Context, batchId string, result commonModels.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batchId] = append(s.batches[batchId], result)
	return nil
}

func (s *InMemoryResultStore) GetResults(ctx context.Context, batchId string) ([]commonModels.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]commonModels.AnalysisResult, len(s.batches[batchId]))
	copy(results, s.batches[batchId])
	return results, nil
}

func (s *InMemoryResultStore) BatchExists(ctx context.Context, batchId string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.batches[batchId]
	return ok
}
