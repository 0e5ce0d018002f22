package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/mauv0809/club-ladder/internal/rating"
	"golang.org/x/sync/errgroup"
)

var _ MatchProcessor = (*Processor)(nil)

// New creates a new Processor.
func New(rankings ranking.Store, calc *rating.Calculator, metrics metrics.Metrics) *Processor {
	return &Processor{
		rankings: rankings,
		calc:     calc,
		metrics:  metrics,
	}
}

func (d MatchData) validate() error {
	switch {
	case d.TenantID == "":
		return fmt.Errorf("%w: missing tenant", ErrInvalidMatch)
	case d.WinnerID == "" || d.LoserID == "":
		return fmt.Errorf("%w: missing player", ErrInvalidMatch)
	case d.WinnerID == d.LoserID:
		return fmt.Errorf("%w: winner and loser are the same player", ErrInvalidMatch)
	}
	return nil
}

// Process rates a match and persists both players' new rankings.
//
// Gains are computed once from the rankings read before the update and added to each
// side's stored counters in place. If either write fails the error is returned and the
// other side keeps whatever was already written.
func (p *Processor) Process(ctx context.Context, data MatchData) (*RankingChanges, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(time.Since(start).Seconds())
	}()

	log.Debug("Processing match result", "tenantID", data.TenantID, "winner", data.WinnerID, "loser", data.LoserID)

	var winner, loser *ranking.Ranking
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		winner, err = p.fetchOrCreate(gctx, data.TenantID, data.WinnerID)
		return err
	})
	g.Go(func() (err error) {
		loser, err = p.fetchOrCreate(gctx, data.TenantID, data.LoserID)
		return err
	})
	if err := g.Wait(); err != nil {
		p.metrics.IncRankingUpdateFailures()
		return nil, err
	}

	elo := p.calc.EloUpdate(winner.EloScore, loser.EloScore)
	winnerRace := p.calc.RacePoints(raceFactors(data, true))
	loserRace := p.calc.RacePoints(raceFactors(data, false))

	changes := &RankingChanges{}
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		changes.Winner, err = p.apply(gctx, winner, elo.WinnerGain, winnerRace, true)
		return err
	})
	g.Go(func() (err error) {
		changes.Loser, err = p.apply(gctx, loser, elo.LoserGain, loserRace, false)
		return err
	})
	if err := g.Wait(); err != nil {
		p.metrics.IncRankingUpdateFailures()
		log.Error("Failed to update rankings", "error", err, "tenantID", data.TenantID, "winner", data.WinnerID, "loser", data.LoserID)
		return nil, err
	}

	log.Info("Rankings updated",
		"tenantID", data.TenantID,
		"winner", data.WinnerID, "winnerElo", changes.Winner.Elo.New, "winnerRace", changes.Winner.Race.New,
		"loser", data.LoserID, "loserElo", changes.Loser.Elo.New, "loserRace", changes.Loser.Race.New)
	return changes, nil
}

// Preview computes the changes a match would cause without writing anything.
// Players without a ranking are treated as freshly seeded.
func (p *Processor) Preview(ctx context.Context, data MatchData) (*RankingChanges, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}

	var winner, loser *ranking.Ranking
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		winner, err = p.findOrSeed(gctx, data.TenantID, data.WinnerID)
		return err
	})
	g.Go(func() (err error) {
		loser, err = p.findOrSeed(gctx, data.TenantID, data.LoserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	elo := p.calc.EloUpdate(winner.EloScore, loser.EloScore)
	winnerRace := p.calc.RacePoints(raceFactors(data, true))
	loserRace := p.calc.RacePoints(raceFactors(data, false))
	return &RankingChanges{
		Winner: delta(winner, elo.WinnerGain, winnerRace),
		Loser:  delta(loser, elo.LoserGain, loserRace),
	}, nil
}

func (p *Processor) fetchOrCreate(ctx context.Context, tenantID, userID string) (*ranking.Ranking, error) {
	r, err := p.rankings.FindByUserAndTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if r != nil {
		return r, nil
	}
	log.Info("Creating ranking for new player", "tenantID", tenantID, "userID", userID)
	return p.rankings.Create(ctx, ranking.Ranking{
		TenantID: tenantID,
		UserID:   userID,
		EloScore: p.calc.Config().InitialElo,
	})
}

func (p *Processor) findOrSeed(ctx context.Context, tenantID, userID string) (*ranking.Ranking, error) {
	r, err := p.rankings.FindByUserAndTenant(ctx, tenantID, userID)
	if err != nil || r != nil {
		return r, err
	}
	return &ranking.Ranking{TenantID: tenantID, UserID: userID, EloScore: p.calc.Config().InitialElo}, nil
}

// apply adds one side's gains to the stored counters. Previous values are derived from
// the row as written, so concurrent results for the same player all land.
func (p *Processor) apply(ctx context.Context, current *ranking.Ranking, eloGain int, race rating.RaceResult, won bool) (RankingDelta, error) {
	updated, err := p.rankings.ApplyResult(ctx, current.ID, ranking.ResultIncrement{
		EloGain:    eloGain,
		RacePoints: race.Total,
		Won:        won,
	})
	if err != nil {
		return RankingDelta{}, err
	}
	if updated == nil {
		return RankingDelta{}, fmt.Errorf("%w: user %s", ErrRankingVanished, current.UserID)
	}

	p.metrics.IncRankingUpdates()
	return RankingDelta{
		UserID: current.UserID,
		Elo:    EloDelta{Previous: updated.EloScore - eloGain, New: updated.EloScore, Gain: eloGain},
		Race: RaceDelta{
			Previous: updated.MonthlyRacePoints - race.Total,
			New:      updated.MonthlyRacePoints,
			Gain:     race.Total,
			Details:  race.Breakdown,
		},
	}, nil
}

func delta(r *ranking.Ranking, eloGain int, race rating.RaceResult) RankingDelta {
	return RankingDelta{
		UserID: r.UserID,
		Elo:    EloDelta{Previous: r.EloScore, New: r.EloScore + eloGain, Gain: eloGain},
		Race: RaceDelta{
			Previous: r.MonthlyRacePoints,
			New:      r.MonthlyRacePoints + race.Total,
			Gain:     race.Total,
			Details:  race.Breakdown,
		},
	}
}

func raceFactors(d MatchData, isWinner bool) rating.RaceFactors {
	return rating.RaceFactors{
		IsWinner:               isWinner,
		IsTournament:           d.IsTournament,
		IsOffPeak:              d.IsOffPeak,
		IsMatchmakingChallenge: d.IsMatchmakingChallenge,
	}
}
