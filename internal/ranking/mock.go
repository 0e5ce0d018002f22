package ranking

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	FindByUserAndTenantFunc  func(ctx context.Context, tenantID, userID string) (*Ranking, error)
	CreateFunc               func(ctx context.Context, r Ranking) (*Ranking, error)
	UpdateFunc               func(ctx context.Context, id string, u RankingUpdate) (*Ranking, error)
	ApplyResultFunc          func(ctx context.Context, id string, inc ResultIncrement) (*Ranking, error)
	GetTopByEloFunc          func(ctx context.Context, tenantID string, limit int) ([]Ranking, error)
	GetRankingsWithUsersFunc func(ctx context.Context, tenantID string, t LeaderboardType, limit int) ([]RankingWithDetails, error)
	ResetMonthlyRaceFunc     func(ctx context.Context, tenantID string) (int64, error)
	ListTenantsFunc          func(ctx context.Context) ([]string, error)

	FindByUserAndTenantCalls []string
	CreateCalls              []Ranking
	UpdateCalls              []struct {
		ID     string
		Update RankingUpdate
	}
	ApplyResultCalls []struct {
		ID        string
		Increment ResultIncrement
	}
	GetTopByEloCalls []struct {
		TenantID string
		Limit    int
	}
	GetRankingsWithUsersCalls []struct {
		TenantID string
		Type     LeaderboardType
		Limit    int
	}
	ResetMonthlyRaceCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) FindByUserAndTenant(ctx context.Context, tenantID, userID string) (*Ranking, error) {
	m.mu.Lock()
	m.FindByUserAndTenantCalls = append(m.FindByUserAndTenantCalls, userID)
	fn := m.FindByUserAndTenantFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, userID)
	}
	return nil, nil
}

func (m *MockStore) Create(ctx context.Context, r Ranking) (*Ranking, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, r)
	fn := m.CreateFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, r)
	}
	return &r, nil
}

func (m *MockStore) Update(ctx context.Context, id string, u RankingUpdate) (*Ranking, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, struct {
		ID     string
		Update RankingUpdate
	}{id, u})
	fn := m.UpdateFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id, u)
	}
	return &Ranking{ID: id}, nil
}

func (m *MockStore) ApplyResult(ctx context.Context, id string, inc ResultIncrement) (*Ranking, error) {
	m.mu.Lock()
	m.ApplyResultCalls = append(m.ApplyResultCalls, struct {
		ID        string
		Increment ResultIncrement
	}{id, inc})
	fn := m.ApplyResultFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id, inc)
	}
	return &Ranking{ID: id, EloScore: inc.EloGain, MonthlyRacePoints: inc.RacePoints, TotalMatches: 1}, nil
}

func (m *MockStore) GetTopByElo(ctx context.Context, tenantID string, limit int) ([]Ranking, error) {
	m.mu.Lock()
	m.GetTopByEloCalls = append(m.GetTopByEloCalls, struct {
		TenantID string
		Limit    int
	}{tenantID, limit})
	fn := m.GetTopByEloFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, limit)
	}
	return []Ranking{}, nil
}

func (m *MockStore) GetRankingsWithUsers(ctx context.Context, tenantID string, t LeaderboardType, limit int) ([]RankingWithDetails, error) {
	m.mu.Lock()
	m.GetRankingsWithUsersCalls = append(m.GetRankingsWithUsersCalls, struct {
		TenantID string
		Type     LeaderboardType
		Limit    int
	}{tenantID, t, limit})
	fn := m.GetRankingsWithUsersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, t, limit)
	}
	return []RankingWithDetails{}, nil
}

func (m *MockStore) ResetMonthlyRace(ctx context.Context, tenantID string) (int64, error) {
	m.mu.Lock()
	m.ResetMonthlyRaceCalls = append(m.ResetMonthlyRaceCalls, tenantID)
	fn := m.ResetMonthlyRaceFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID)
	}
	return 0, nil
}

func (m *MockStore) ListTenants(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	fn := m.ListTenantsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil, nil
}
