package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/match"
	"github.com/mauv0809/club-ladder/internal/metrics"
)

var _ MatchRecorder = (*Recorder)(nil)

// NewRecorder creates a Recorder. players may be nil when no directory is kept.
func NewRecorder(matches match.Store, processor MatchProcessor, players club.ClubStore, metrics metrics.Metrics) *Recorder {
	return &Recorder{
		matches:   matches,
		processor: processor,
		players:   players,
		metrics:   metrics,
		now:       time.Now,
	}
}

// RecordResult saves the match and then updates both rankings.
// The two steps are not atomic: when rating fails the saved match stays in the log.
func (r *Recorder) RecordResult(ctx context.Context, in RecordInput) (*RecordResult, error) {
	data := in.MatchData()
	if err := data.validate(); err != nil {
		return nil, err
	}

	saved, err := r.matches.Save(ctx, match.Match{
		TenantID:               in.TenantID,
		WinnerID:               in.WinnerID,
		LoserID:                in.LoserID,
		Score:                  in.Score,
		Date:                   r.now(),
		IsTournament:           in.IsTournament,
		IsOffPeak:              in.IsOffPeak,
		IsMatchmakingChallenge: in.IsMatchmakingChallenge,
		Metadata:               in.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("saving match: %w", err)
	}
	r.metrics.IncMatchesRecorded()
	log.Info("Match recorded", "matchID", saved.ID, "tenantID", saved.TenantID)
	r.registerPlayers(ctx, in)

	changes, err := r.processor.Process(ctx, data)
	if err != nil {
		log.Error("Match saved but rankings were not updated", "error", err, "matchID", saved.ID)
		return nil, fmt.Errorf("processing match result %s: %w", saved.ID, err)
	}

	return &RecordResult{
		Match:          *saved,
		RankingChanges: *changes,
	}, nil
}

// Preview reports the ranking changes a result would cause without recording it.
func (r *Recorder) Preview(ctx context.Context, in RecordInput) (*RankingChanges, error) {
	log.Info("[Dry Run] Previewing match result", "tenantID", in.TenantID, "winner", in.WinnerID, "loser", in.LoserID)
	return r.processor.Preview(ctx, in.MatchData())
}

// registerPlayers keeps the directory in sync with names reported alongside a result.
// The directory is only used for display, so failures are logged and ignored.
func (r *Recorder) registerPlayers(ctx context.Context, in RecordInput) {
	if r.players == nil {
		return
	}
	var players []club.PlayerInfo
	if in.WinnerName != "" {
		players = append(players, club.PlayerInfo{ID: in.WinnerID, Name: in.WinnerName})
	}
	if in.LoserName != "" {
		players = append(players, club.PlayerInfo{ID: in.LoserID, Name: in.LoserName})
	}
	if len(players) == 0 {
		return
	}
	if err := r.players.UpsertPlayers(ctx, in.TenantID, players); err != nil {
		log.Error("Failed to upsert players for match", "error", err, "tenantID", in.TenantID)
	}
}
