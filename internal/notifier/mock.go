package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendRaceStandingsFunc      func(ctx context.Context, tenantID string, rows []ranking.RankingWithDetails, dryRun bool) error
	FormatRankingsResponseFunc func(t ranking.LeaderboardType, rows []ranking.RankingWithDetails) (any, error)
	FormatErrorResponseFunc    func(message string) (any, error)

	// Call records
	SendRaceStandingsCalls []struct {
		TenantID string
		Rows     []ranking.RankingWithDetails
		DryRun   bool
	}
	FormatRankingsResponseCalls []struct {
		Type ranking.LeaderboardType
		Rows []ranking.RankingWithDetails
	}
	FormatErrorResponseCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRaceStandingsCalls = nil
	m.FormatRankingsResponseCalls = nil
	m.FormatErrorResponseCalls = nil
}

func (m *Mock) SendRaceStandings(ctx context.Context, tenantID string, rows []ranking.RankingWithDetails, dryRun bool) error {
	m.mu.Lock()
	m.SendRaceStandingsCalls = append(m.SendRaceStandingsCalls, struct {
		TenantID string
		Rows     []ranking.RankingWithDetails
		DryRun   bool
	}{tenantID, rows, dryRun})
	fn := m.SendRaceStandingsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, tenantID, rows, dryRun)
	}
	return nil
}

func (m *Mock) FormatRankingsResponse(t ranking.LeaderboardType, rows []ranking.RankingWithDetails) (any, error) {
	m.mu.Lock()
	m.FormatRankingsResponseCalls = append(m.FormatRankingsResponseCalls, struct {
		Type ranking.LeaderboardType
		Rows []ranking.RankingWithDetails
	}{t, rows})
	fn := m.FormatRankingsResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(t, rows)
	}
	return nil, nil
}

func (m *Mock) FormatErrorResponse(message string) (any, error) {
	m.mu.Lock()
	m.FormatErrorResponseCalls = append(m.FormatErrorResponseCalls, message)
	fn := m.FormatErrorResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(message)
	}
	return nil, nil
}
