package leaderboard_test

import (
	"context"
	"testing"

	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/mauv0809/club-ladder/internal/leaderboard"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/mauv0809/club-ladder/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardAfterMatches(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	store := ranking.New(db)
	proc := processor.New(store, rating.NewCalculator(rating.DefaultConfig()), metrics.NewMock())
	svc := leaderboard.New(store, metrics.NewMock())
	ctx := context.Background()

	for _, m := range []processor.MatchData{
		{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"},
		{TenantID: "club-a", WinnerID: "carol", LoserID: "bob", IsTournament: true},
		{TenantID: "club-a", WinnerID: "alice", LoserID: "carol", IsOffPeak: true},
		{TenantID: "club-a", WinnerID: "dave", LoserID: "erin"},
		{TenantID: "club-b", WinnerID: "zoe", LoserID: "yan"},
	} {
		_, err := proc.Process(ctx, m)
		require.NoError(t, err)
	}

	for _, lt := range []ranking.LeaderboardType{ranking.LeaderboardElo, ranking.LeaderboardRace} {
		rows, err := svc.GetRankings(ctx, "club-a", lt, 0)
		require.NoError(t, err)
		require.Len(t, rows, 5)
		for i := 1; i < len(rows); i++ {
			if lt == ranking.LeaderboardElo {
				assert.GreaterOrEqual(t, rows[i-1].EloScore, rows[i].EloScore)
			} else {
				assert.GreaterOrEqual(t, rows[i-1].MonthlyRacePoints, rows[i].MonthlyRacePoints)
			}
			assert.Equal(t, i+1, rows[i].Position)
		}

		again, err := svc.GetRankings(ctx, "club-a", lt, 0)
		require.NoError(t, err)
		assert.Equal(t, rows, again)
	}

	heads, err := svc.GetHeadsOfSeries(ctx, "club-a", 2)
	require.NoError(t, err)
	require.Len(t, heads, 2)
	assert.Equal(t, "alice", heads[0].UserID)

	_, err = svc.ResetMonthlyRace(ctx, "club-a")
	require.NoError(t, err)
	race, err := svc.GetRankings(ctx, "club-a", ranking.LeaderboardRace, 0)
	require.NoError(t, err)
	for _, row := range race {
		assert.Zero(t, row.MonthlyRacePoints)
	}
	other, err := svc.GetRankings(ctx, "club-b", ranking.LeaderboardRace, 0)
	require.NoError(t, err)
	assert.Equal(t, 25, other[0].MonthlyRacePoints)
}
