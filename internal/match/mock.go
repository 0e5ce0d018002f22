package match

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	SaveFunc         func(ctx context.Context, m Match) (*Match, error)
	FindByIDFunc     func(ctx context.Context, tenantID, id string) (*Match, error)
	ListByTenantFunc func(ctx context.Context, tenantID string, limit int) ([]Match, error)
	ListByUserFunc   func(ctx context.Context, tenantID, userID string, limit int) ([]Match, error)

	SaveCalls       []Match
	ListByUserCalls []struct {
		TenantID string
		UserID   string
		Limit    int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Save(ctx context.Context, match Match) (*Match, error) {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, match)
	fn := m.SaveFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, match)
	}
	return &match, nil
}

func (m *MockStore) FindByID(ctx context.Context, tenantID, id string) (*Match, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tenantID, id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListByTenant(ctx context.Context, tenantID string, limit int) ([]Match, error) {
	if m.ListByTenantFunc != nil {
		return m.ListByTenantFunc(ctx, tenantID, limit)
	}
	return []Match{}, nil
}

func (m *MockStore) ListByUser(ctx context.Context, tenantID, userID string, limit int) ([]Match, error) {
	m.mu.Lock()
	m.ListByUserCalls = append(m.ListByUserCalls, struct {
		TenantID string
		UserID   string
		Limit    int
	}{tenantID, userID, limit})
	fn := m.ListByUserFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, userID, limit)
	}
	return []Match{}, nil
}
