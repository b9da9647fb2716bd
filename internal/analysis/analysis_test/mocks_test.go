package analysis_test

import (
	"context"
	"sync"

	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
)

// MockProvider stands in for the LLM. Tests wire OnGenerate to script the
// model's response per prompt.
type MockProvider struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
	CallCount  int
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.CallCount++
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "", nil
}

// MockResultStore records appended batch results in memory.
type MockResultStore struct {
	mu       sync.Mutex
	appended map[string][]commonModels.AnalysisResult

	OnAppend func(batchId string, result commonModels.AnalysisResult) error
}

func NewMockResultStore() *MockResultStore {
	return &MockResultStore{appended: make(map[string][]commonModels.AnalysisResult)}
}

func (m *MockResultStore) AppendResult(ctx context.Context, batchId string, result commonModels.AnalysisResult) error {
	if m.OnAppend != nil {
		if err := m.OnAppend(batchId, result); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended[batchId] = append(m.appended[batchId], result)
	return nil
}

func (m *MockResultStore) GetResults(ctx context.Context, batchId string) ([]commonModels.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appended[batchId], nil
}

func (m *MockResultStore) BatchExists(ctx context.Context, batchId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.appended[batchId]
	return ok
}
