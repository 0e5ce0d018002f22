package leaderboard

import (
	"context"
	"sync"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// Mock is a mock implementation of Querier for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	GetRankingsFunc      func(ctx context.Context, tenantID string, t ranking.LeaderboardType, limit int) ([]ranking.RankingWithDetails, error)
	GetHeadsOfSeriesFunc func(ctx context.Context, tenantID string, count int) ([]ranking.Ranking, error)
	ResetMonthlyRaceFunc func(ctx context.Context, tenantID string) (int64, error)

	GetRankingsCalls []struct {
		TenantID string
		Type     ranking.LeaderboardType
		Limit    int
	}
	ResetMonthlyRaceCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetRankings(ctx context.Context, tenantID string, t ranking.LeaderboardType, limit int) ([]ranking.RankingWithDetails, error) {
	m.mu.Lock()
	m.GetRankingsCalls = append(m.GetRankingsCalls, struct {
		TenantID string
		Type     ranking.LeaderboardType
		Limit    int
	}{tenantID, t, limit})
	fn := m.GetRankingsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, t, limit)
	}
	return []ranking.RankingWithDetails{}, nil
}

func (m *Mock) GetHeadsOfSeries(ctx context.Context, tenantID string, count int) ([]ranking.Ranking, error) {
	if m.GetHeadsOfSeriesFunc != nil {
		return m.GetHeadsOfSeriesFunc(ctx, tenantID, count)
	}
	return []ranking.Ranking{}, nil
}

func (m *Mock) ResetMonthlyRace(ctx context.Context, tenantID string) (int64, error) {
	m.mu.Lock()
	m.ResetMonthlyRaceCalls = append(m.ResetMonthlyRaceCalls, tenantID)
	fn := m.ResetMonthlyRaceFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID)
	}
	return 0, nil
}
