package processor

import (
	"errors"
	"time"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/match"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/mauv0809/club-ladder/internal/rating"
)

var (
	// ErrInvalidMatch is returned when tenant or players are missing, or a player plays themselves.
	ErrInvalidMatch = errors.New("invalid match")
	// ErrRankingVanished is returned when a ranking record disappears between fetch and update.
	ErrRankingVanished = errors.New("ranking record vanished during update")
)

// Processor turns a match outcome into ranking updates.
type Processor struct {
	rankings ranking.Store
	calc     *rating.Calculator
	metrics  metrics.Metrics
}

// Recorder persists match results and rates them.
type Recorder struct {
	matches   match.Store
	processor MatchProcessor
	players   club.ClubStore
	metrics   metrics.Metrics
	now       func() time.Time
}

// MatchData is the part of a match that affects rankings.
type MatchData struct {
	TenantID               string
	WinnerID               string
	LoserID                string
	IsTournament           bool
	IsOffPeak              bool
	IsMatchmakingChallenge bool
}

// EloDelta describes a rating change.
type EloDelta struct {
	Previous int `json:"prev" msgpack:"prev"`
	New      int `json:"new" msgpack:"new"`
	Gain     int `json:"gain" msgpack:"gain"`
}

// RaceDelta describes a Race points change and how it was scored.
type RaceDelta struct {
	Previous int    `json:"prev" msgpack:"prev"`
	New      int    `json:"new" msgpack:"new"`
	Gain     int    `json:"gain" msgpack:"gain"`
	Details  string `json:"details" msgpack:"details"`
}

// RankingDelta is the change applied to one player's ranking.
type RankingDelta struct {
	UserID string    `json:"user_id" msgpack:"user_id"`
	Elo    EloDelta  `json:"elo" msgpack:"elo"`
	Race   RaceDelta `json:"race" msgpack:"race"`
}

// RankingChanges holds the deltas of both sides of a match.
type RankingChanges struct {
	Winner RankingDelta `json:"winner" msgpack:"winner"`
	Loser  RankingDelta `json:"loser" msgpack:"loser"`
}

// RecordInput is a reported match result. It is also the Pub/Sub payload.
type RecordInput struct {
	TenantID               string            `json:"tenant_id" msgpack:"tenant_id"`
	WinnerID               string            `json:"winner_id" msgpack:"winner_id"`
	LoserID                string            `json:"loser_id" msgpack:"loser_id"`
	Score                  string            `json:"score" msgpack:"score"`
	IsTournament           bool              `json:"is_tournament" msgpack:"is_tournament"`
	IsOffPeak              bool              `json:"is_off_peak" msgpack:"is_off_peak"`
	IsMatchmakingChallenge bool              `json:"is_matchmaking_challenge,omitempty" msgpack:"is_matchmaking_challenge,omitempty"`
	Metadata               map[string]string `json:"metadata,omitempty" msgpack:"metadata,omitempty"`

	// Optional display names, registered in the player directory when present.
	WinnerName string `json:"winner_name,omitempty" msgpack:"winner_name,omitempty"`
	LoserName  string `json:"loser_name,omitempty" msgpack:"loser_name,omitempty"`
}

// MatchData returns the ranking-relevant part of the input.
func (in RecordInput) MatchData() MatchData {
	return MatchData{
		TenantID:               in.TenantID,
		WinnerID:               in.WinnerID,
		LoserID:                in.LoserID,
		IsTournament:           in.IsTournament,
		IsOffPeak:              in.IsOffPeak,
		IsMatchmakingChallenge: in.IsMatchmakingChallenge,
	}
}

// RecordResult combines the stored match and the ranking changes it caused.
type RecordResult struct {
	Match          match.Match    `json:"match"`
	RankingChanges RankingChanges `json:"ranking_changes"`
}

// Validate reports ErrInvalidMatch for input that can never be rated.
func (in RecordInput) Validate() error {
	return in.MatchData().validate()
}
