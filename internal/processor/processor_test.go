package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/mauv0809/club-ladder/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRankingStore(t *testing.T) ranking.Store {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return ranking.New(db)
}

func newCalculator() *rating.Calculator {
	return rating.NewCalculator(rating.DefaultConfig())
}

func TestProcess_FriendlyBetweenNewPlayers(t *testing.T) {
	store := setupRankingStore(t)
	metr := metrics.NewMock()
	p := New(store, newCalculator(), metr)
	ctx := context.Background()

	changes, err := p.Process(ctx, MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
	require.NoError(t, err)

	assert.Equal(t, EloDelta{Previous: 1200, New: 1216, Gain: 16}, changes.Winner.Elo)
	assert.Equal(t, EloDelta{Previous: 1200, New: 1184, Gain: -16}, changes.Loser.Elo)
	assert.Equal(t, 0, changes.Winner.Race.Previous)
	assert.Equal(t, 25, changes.Winner.Race.Gain)
	assert.Equal(t, 25, changes.Winner.Race.New)
	assert.Equal(t, 10, changes.Loser.Race.New)
	assert.NotEmpty(t, changes.Winner.Race.Details)

	alice, err := store.FindByUserAndTenant(ctx, "club-a", "alice")
	require.NoError(t, err)
	assert.Equal(t, 1216, alice.EloScore)
	assert.Equal(t, 25, alice.MonthlyRacePoints)
	assert.Equal(t, 1, alice.TotalMatches)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 100.0, alice.WinRate)

	bob, err := store.FindByUserAndTenant(ctx, "club-a", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1184, bob.EloScore)
	assert.Equal(t, 10, bob.MonthlyRacePoints)
	assert.Equal(t, 1, bob.TotalMatches)
	assert.Equal(t, 0, bob.Wins)
	assert.Equal(t, 0.0, bob.WinRate)

	assert.Equal(t, 2, metr.RankingUpdates())
	assert.Len(t, metr.ProcessingDurations(), 1)
}

func TestProcess_TournamentOffPeak(t *testing.T) {
	store := setupRankingStore(t)
	p := New(store, newCalculator(), metrics.NewMock())

	changes, err := p.Process(context.Background(), MatchData{
		TenantID:     "club-a",
		WinnerID:     "alice",
		LoserID:      "bob",
		IsTournament: true,
		IsOffPeak:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 16, changes.Winner.Elo.Gain)
	assert.Equal(t, -16, changes.Loser.Elo.Gain)
	assert.Equal(t, 75, changes.Winner.Race.Gain)
	assert.Equal(t, 38, changes.Loser.Race.Gain)
}

func TestProcess_AccumulatesWinRate(t *testing.T) {
	store := setupRankingStore(t)
	p := New(store, newCalculator(), metrics.NewMock())
	ctx := context.Background()

	results := []MatchData{
		{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"},
		{TenantID: "club-a", WinnerID: "bob", LoserID: "alice"},
		{TenantID: "club-a", WinnerID: "alice", LoserID: "carol"},
	}
	for _, r := range results {
		_, err := p.Process(ctx, r)
		require.NoError(t, err)
	}

	alice, err := store.FindByUserAndTenant(ctx, "club-a", "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, alice.TotalMatches)
	assert.Equal(t, 2, alice.Wins)
	assert.Equal(t, 66.67, alice.WinRate)
	assert.Equal(t, 25+10+25, alice.MonthlyRacePoints)
}

func TestProcess_ConcurrentMatchesForSamePlayer(t *testing.T) {
	store := setupRankingStore(t)
	metr := metrics.NewMock()
	p := New(store, newCalculator(), metr)
	ctx := context.Background()

	const matches = 10
	var wg sync.WaitGroup
	results := make(chan *RankingChanges, matches)
	errs := make(chan error, matches)
	for i := 0; i < matches; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			changes, err := p.Process(ctx, MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: fmt.Sprintf("opponent-%d", i)})
			errs <- err
			results <- changes
		}(i)
	}
	wg.Wait()
	close(errs)
	close(results)
	for err := range errs {
		require.NoError(t, err)
	}
	eloGained := 0
	for changes := range results {
		eloGained += changes.Winner.Elo.Gain
		assert.Equal(t, changes.Winner.Elo.Previous+changes.Winner.Elo.Gain, changes.Winner.Elo.New)
	}

	alice, err := store.FindByUserAndTenant(ctx, "club-a", "alice")
	require.NoError(t, err)
	assert.Equal(t, matches, alice.TotalMatches, "no update is lost")
	assert.Equal(t, matches, alice.Wins)
	assert.Equal(t, 100.0, alice.WinRate)
	assert.Equal(t, matches*25, alice.MonthlyRacePoints)
	assert.Equal(t, 1200+eloGained, alice.EloScore)

	for i := 0; i < matches; i++ {
		opponent, err := store.FindByUserAndTenant(ctx, "club-a", fmt.Sprintf("opponent-%d", i))
		require.NoError(t, err)
		require.NotNil(t, opponent, "both sides of every match are written")
		assert.Equal(t, 1, opponent.TotalMatches)
	}
	assert.Equal(t, 2*matches, metr.RankingUpdates())
	assert.Zero(t, metr.RankingUpdateFailures())
}

func TestProcess_AfterMonthlyReset(t *testing.T) {
	store := setupRankingStore(t)
	p := New(store, newCalculator(), metrics.NewMock())
	ctx := context.Background()

	_, err := p.Process(ctx, MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
	require.NoError(t, err)
	_, err = store.ResetMonthlyRace(ctx, "club-a")
	require.NoError(t, err)

	changes, err := p.Process(ctx, MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, RaceDelta{Previous: 0, New: 25, Gain: 25, Details: changes.Winner.Race.Details}, changes.Winner.Race)
	assert.Equal(t, 1216, changes.Winner.Elo.Previous, "ELO survives the reset")
}

func TestProcess_ResetBetweenReadAndWrite(t *testing.T) {
	store := ranking.NewMock()
	p := New(store, newCalculator(), metrics.NewMock())

	store.FindByUserAndTenantFunc = func(ctx context.Context, tenantID, userID string) (*ranking.Ranking, error) {
		return &ranking.Ranking{ID: userID + "-id", TenantID: tenantID, UserID: userID, EloScore: 1200, MonthlyRacePoints: 40}, nil
	}
	// The stored Race counter was zeroed after the read, so only the gain is left.
	store.ApplyResultFunc = func(ctx context.Context, id string, inc ranking.ResultIncrement) (*ranking.Ranking, error) {
		return &ranking.Ranking{ID: id, EloScore: 1200 + inc.EloGain, MonthlyRacePoints: inc.RacePoints}, nil
	}

	changes, err := p.Process(context.Background(), MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
	require.NoError(t, err)

	assert.Equal(t, 0, changes.Winner.Race.Previous)
	assert.Equal(t, 25, changes.Winner.Race.New, "gain lands on the reset counter")
	assert.Equal(t, 1216, changes.Winner.Elo.New)
	assert.Empty(t, store.UpdateCalls)
}

func TestProcess_Failures(t *testing.T) {
	existing := func(ctx context.Context, tenantID, userID string) (*ranking.Ranking, error) {
		return &ranking.Ranking{ID: userID + "-id", TenantID: tenantID, UserID: userID, EloScore: 1200}, nil
	}

	t.Run("record vanished before update", func(t *testing.T) {
		store := ranking.NewMock()
		metr := metrics.NewMock()
		store.FindByUserAndTenantFunc = existing
		store.ApplyResultFunc = func(ctx context.Context, id string, inc ranking.ResultIncrement) (*ranking.Ranking, error) {
			if id == "bob-id" {
				return nil, nil
			}
			return &ranking.Ranking{ID: id}, nil
		}
		p := New(store, newCalculator(), metr)

		_, err := p.Process(context.Background(), MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
		assert.ErrorIs(t, err, ErrRankingVanished)
		assert.Equal(t, 1, metr.RankingUpdateFailures())
	})

	t.Run("store read error propagates", func(t *testing.T) {
		boom := errors.New("connection reset")
		store := ranking.NewMock()
		store.FindByUserAndTenantFunc = func(ctx context.Context, tenantID, userID string) (*ranking.Ranking, error) {
			return nil, boom
		}
		p := New(store, newCalculator(), metrics.NewMock())

		_, err := p.Process(context.Background(), MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, store.ApplyResultCalls)
	})

	t.Run("store write error propagates", func(t *testing.T) {
		boom := errors.New("disk full")
		store := ranking.NewMock()
		store.FindByUserAndTenantFunc = existing
		store.ApplyResultFunc = func(ctx context.Context, id string, inc ranking.ResultIncrement) (*ranking.Ranking, error) {
			return nil, boom
		}
		p := New(store, newCalculator(), metrics.NewMock())

		_, err := p.Process(context.Background(), MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("invalid matches are rejected before any read", func(t *testing.T) {
		store := ranking.NewMock()
		p := New(store, newCalculator(), metrics.NewMock())

		for _, data := range []MatchData{
			{TenantID: "club-a", WinnerID: "alice", LoserID: "alice"},
			{TenantID: "", WinnerID: "alice", LoserID: "bob"},
			{TenantID: "club-a", WinnerID: "", LoserID: "bob"},
		} {
			_, err := p.Process(context.Background(), data)
			assert.ErrorIs(t, err, ErrInvalidMatch)
		}
		assert.Empty(t, store.FindByUserAndTenantCalls)
	})
}

func TestProcess_CreatesMissingRankingsWithDefaults(t *testing.T) {
	store := ranking.NewMock()
	store.FindByUserAndTenantFunc = func(ctx context.Context, tenantID, userID string) (*ranking.Ranking, error) {
		return nil, nil
	}
	store.CreateFunc = func(ctx context.Context, r ranking.Ranking) (*ranking.Ranking, error) {
		r.ID = r.UserID + "-id"
		return &r, nil
	}
	p := New(store, newCalculator(), metrics.NewMock())

	_, err := p.Process(context.Background(), MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob"})
	require.NoError(t, err)

	require.Len(t, store.CreateCalls, 2)
	for _, c := range store.CreateCalls {
		assert.Equal(t, "club-a", c.TenantID)
		assert.Equal(t, 1200, c.EloScore)
		assert.Equal(t, 0, c.MonthlyRacePoints)
		assert.Equal(t, 0, c.TotalMatches)
	}
	require.Len(t, store.ApplyResultCalls, 2)
	for _, c := range store.ApplyResultCalls {
		assert.Equal(t, c.Increment.Won, c.ID == "alice-id")
	}
}

func TestPreview_WritesNothing(t *testing.T) {
	store := setupRankingStore(t)
	p := New(store, newCalculator(), metrics.NewMock())
	ctx := context.Background()

	changes, err := p.Preview(ctx, MatchData{TenantID: "club-a", WinnerID: "alice", LoserID: "bob", IsTournament: true})
	require.NoError(t, err)
	assert.Equal(t, 1216, changes.Winner.Elo.New)
	assert.Equal(t, 63, changes.Winner.Race.New)
	assert.Equal(t, 25, changes.Loser.Race.New)

	alice, err := store.FindByUserAndTenant(ctx, "club-a", "alice")
	require.NoError(t, err)
	assert.Nil(t, alice)
}
