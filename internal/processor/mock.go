package processor

import (
	"context"
	"sync"
)

// MockRecorder is a mock implementation of MatchRecorder for testing.
// It is safe for concurrent use.
type MockRecorder struct {
	mu sync.Mutex

	RecordResultFunc func(ctx context.Context, in RecordInput) (*RecordResult, error)
	PreviewFunc      func(ctx context.Context, in RecordInput) (*RankingChanges, error)

	RecordResultCalls []RecordInput
	PreviewCalls      []RecordInput
}

// NewMockRecorder creates a new mock instance.
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

func (m *MockRecorder) RecordResult(ctx context.Context, in RecordInput) (*RecordResult, error) {
	m.mu.Lock()
	m.RecordResultCalls = append(m.RecordResultCalls, in)
	fn := m.RecordResultFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, in)
	}
	return &RecordResult{}, nil
}

func (m *MockRecorder) Preview(ctx context.Context, in RecordInput) (*RankingChanges, error) {
	m.mu.Lock()
	m.PreviewCalls = append(m.PreviewCalls, in)
	fn := m.PreviewFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, in)
	}
	return &RankingChanges{}, nil
}

// MockProcessor is a mock implementation of MatchProcessor for testing.
type MockProcessor struct {
	mu sync.Mutex

	ProcessFunc func(ctx context.Context, data MatchData) (*RankingChanges, error)
	PreviewFunc func(ctx context.Context, data MatchData) (*RankingChanges, error)

	ProcessCalls []MatchData
}

// NewMockProcessor creates a new mock instance.
func NewMockProcessor() *MockProcessor {
	return &MockProcessor{}
}

func (m *MockProcessor) Process(ctx context.Context, data MatchData) (*RankingChanges, error) {
	m.mu.Lock()
	m.ProcessCalls = append(m.ProcessCalls, data)
	fn := m.ProcessFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, data)
	}
	return &RankingChanges{}, nil
}

func (m *MockProcessor) Preview(ctx context.Context, data MatchData) (*RankingChanges, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, data)
	}
	return &RankingChanges{}, nil
}
