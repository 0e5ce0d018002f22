package club

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	UpsertPlayersFunc func(ctx context.Context, tenantID string, players []PlayerInfo) error
	IsKnownPlayerFunc func(ctx context.Context, tenantID, playerID string) bool
	GetPlayersFunc    func(ctx context.Context, tenantID string, playerIDs []string) ([]PlayerInfo, error)
	GetAllPlayersFunc func(ctx context.Context, tenantID string) ([]PlayerInfo, error)

	UpsertPlayersCalls []struct {
		TenantID string
		Players  []PlayerInfo
	}
	GetPlayersCalls [][]string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = nil
	m.GetPlayersCalls = nil
}

func (m *MockStore) UpsertPlayers(ctx context.Context, tenantID string, players []PlayerInfo) error {
	m.mu.Lock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, struct {
		TenantID string
		Players  []PlayerInfo
	}{tenantID, players})
	fn := m.UpsertPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, players)
	}
	return nil
}

func (m *MockStore) IsKnownPlayer(ctx context.Context, tenantID, playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(ctx, tenantID, playerID)
	}
	return false
}

func (m *MockStore) GetPlayers(ctx context.Context, tenantID string, playerIDs []string) ([]PlayerInfo, error) {
	m.mu.Lock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	fn := m.GetPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, playerIDs)
	}
	return []PlayerInfo{}, nil
}

func (m *MockStore) GetAllPlayers(ctx context.Context, tenantID string) ([]PlayerInfo, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc(ctx, tenantID)
	}
	return []PlayerInfo{}, nil
}
