// Package leaderboard serves ranking reads and the monthly Race reset.
package leaderboard

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// DefaultLimit is the leaderboard size when the caller gives none.
const DefaultLimit = 50

// Querier is the read side used by the HTTP and Slack surfaces.
type Querier interface {
	GetRankings(ctx context.Context, tenantID string, t ranking.LeaderboardType, limit int) ([]ranking.RankingWithDetails, error)
	GetHeadsOfSeries(ctx context.Context, tenantID string, count int) ([]ranking.Ranking, error)
	ResetMonthlyRace(ctx context.Context, tenantID string) (int64, error)
}

// Service is a thin layer over the ranking store.
type Service struct {
	rankings ranking.Store
	metrics  metrics.Metrics
}

var _ Querier = (*Service)(nil)

func New(rankings ranking.Store, metrics metrics.Metrics) *Service {
	return &Service{rankings: rankings, metrics: metrics}
}

// GetRankings returns the tenant leaderboard ordered by t. A limit of zero means DefaultLimit.
func (s *Service) GetRankings(ctx context.Context, tenantID string, t ranking.LeaderboardType, limit int) ([]ranking.RankingWithDetails, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	return s.rankings.GetRankingsWithUsers(ctx, tenantID, t, limit)
}

// GetHeadsOfSeries returns the top count players by ELO, for tournament seeding.
func (s *Service) GetHeadsOfSeries(ctx context.Context, tenantID string, count int) ([]ranking.Ranking, error) {
	return s.rankings.GetTopByElo(ctx, tenantID, count)
}

// ResetMonthlyRace zeroes Race points of one tenant, or all tenants when tenantID is empty.
func (s *Service) ResetMonthlyRace(ctx context.Context, tenantID string) (int64, error) {
	n, err := s.rankings.ResetMonthlyRace(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	s.metrics.IncRaceResets()
	log.Info("Race reset", "tenantID", tenantID, "rankings", n)
	return n, nil
}
