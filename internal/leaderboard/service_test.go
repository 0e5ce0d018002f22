package leaderboard

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRankings(t *testing.T) {
	t.Run("defaults the limit", func(t *testing.T) {
		store := ranking.NewMock()
		svc := New(store, metrics.NewMock())

		_, err := svc.GetRankings(context.Background(), "club-a", ranking.LeaderboardRace, 0)
		require.NoError(t, err)
		require.Len(t, store.GetRankingsWithUsersCalls, 1)
		assert.Equal(t, DefaultLimit, store.GetRankingsWithUsersCalls[0].Limit)
		assert.Equal(t, ranking.LeaderboardRace, store.GetRankingsWithUsersCalls[0].Type)
	})

	t.Run("passes rows through untouched", func(t *testing.T) {
		rows := []ranking.RankingWithDetails{
			{UserID: "alice", UserName: "Alice", EloScore: 1300, Position: 1},
			{UserID: "bob", UserName: "Bob", EloScore: 1250, Position: 2},
		}
		store := ranking.NewMock()
		store.GetRankingsWithUsersFunc = func(ctx context.Context, tenantID string, lt ranking.LeaderboardType, limit int) ([]ranking.RankingWithDetails, error) {
			return rows, nil
		}
		svc := New(store, metrics.NewMock())

		got, err := svc.GetRankings(context.Background(), "club-a", ranking.LeaderboardElo, 10)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
		assert.Equal(t, 10, store.GetRankingsWithUsersCalls[0].Limit)
	})

	t.Run("errors propagate", func(t *testing.T) {
		store := ranking.NewMock()
		store.GetRankingsWithUsersFunc = func(ctx context.Context, tenantID string, lt ranking.LeaderboardType, limit int) ([]ranking.RankingWithDetails, error) {
			return nil, ranking.ErrInvalidLeaderboardType
		}
		svc := New(store, metrics.NewMock())

		_, err := svc.GetRankings(context.Background(), "club-a", "wins", 10)
		assert.ErrorIs(t, err, ranking.ErrInvalidLeaderboardType)
	})
}

func TestGetHeadsOfSeries(t *testing.T) {
	store := ranking.NewMock()
	store.GetTopByEloFunc = func(ctx context.Context, tenantID string, limit int) ([]ranking.Ranking, error) {
		return []ranking.Ranking{{UserID: "alice", EloScore: 1400}, {UserID: "bob", EloScore: 1300}}, nil
	}
	svc := New(store, metrics.NewMock())

	heads, err := svc.GetHeadsOfSeries(context.Background(), "club-a", 2)
	require.NoError(t, err)
	assert.Len(t, heads, 2)
	require.Len(t, store.GetTopByEloCalls, 1)
	assert.Equal(t, 2, store.GetTopByEloCalls[0].Limit)
}

func TestResetMonthlyRace(t *testing.T) {
	t.Run("tenant scoped", func(t *testing.T) {
		store := ranking.NewMock()
		store.ResetMonthlyRaceFunc = func(ctx context.Context, tenantID string) (int64, error) { return 3, nil }
		metr := metrics.NewMock()
		svc := New(store, metr)

		n, err := svc.ResetMonthlyRace(context.Background(), "club-a")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, []string{"club-a"}, store.ResetMonthlyRaceCalls)
		assert.Equal(t, 1, metr.RaceResets())
	})

	t.Run("errors propagate unchanged", func(t *testing.T) {
		boom := errors.New("read only database")
		store := ranking.NewMock()
		store.ResetMonthlyRaceFunc = func(ctx context.Context, tenantID string) (int64, error) { return 0, boom }
		metr := metrics.NewMock()
		svc := New(store, metr)

		_, err := svc.ResetMonthlyRace(context.Background(), "")
		assert.Equal(t, boom, err)
		assert.Equal(t, 0, metr.RaceResets())
	})
}
