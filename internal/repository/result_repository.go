package repository

import (
	"context"
	"sync"

	"go-resistor-inspector/pkg/models"
)

// maxStoredResults bounds the in-memory history.
const maxStoredResults = 100

// MemoryResultRepository is an in-memory ResultRepository holding the
// most recent analysis results.
type MemoryResultRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.AnalysisResult
	ordered []string
}

// NewMemoryResultRepository creates an empty in-memory result store.
func NewMemoryResultRepository() ResultRepository {
	return &MemoryResultRepository{
		byID: make(map[string]models.AnalysisResult),
	}
}

// SaveResult stores one analysis result, evicting the oldest entry once
// the history is full.
func (m *MemoryResultRepository) SaveResult(_ context.Context, result models.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[result.ID]; !exists {
		m.ordered = append(m.ordered, result.ID)
		if len(m.ordered) > maxStoredResults {
			oldest := m.ordered[0]
			m.ordered = m.ordered[1:]
			delete(m.byID, oldest)
		}
	}
	m.byID[result.ID] = result
	return nil
}

// GetResult retrieves a stored result by ID.
func (m *MemoryResultRepository) GetResult(_ context.Context, id string) (models.AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result, ok := m.byID[id]
	if !ok {
		return models.AnalysisResult{}, ErrResultNotFound
	}
	return result, nil
}

// ListResults returns up to limit recent results, newest first.
func (m *MemoryResultRepository) ListResults(_ context.Context, limit int) []models.AnalysisResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.ordered) {
		limit = len(m.ordered)
	}
	results := make([]models.AnalysisResult, 0, limit)
	for i := len(m.ordered) - 1; i >= 0 && len(results) < limit; i-- {
		results = append(results, m.byID[m.ordered[i]])
	}
	return results
}
