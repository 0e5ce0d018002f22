package ranking

import (
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrVersionConflict is returned by Update when ExpectedVersion no longer matches the stored record.
	ErrVersionConflict = errors.New("ranking version conflict")
	// ErrInvalidLeaderboardType is returned for a leaderboard type other than elo or race.
	ErrInvalidLeaderboardType = errors.New("invalid leaderboard type")
)

// LeaderboardType selects the field a leaderboard is ordered by.
type LeaderboardType string

const (
	LeaderboardElo  LeaderboardType = "elo"
	LeaderboardRace LeaderboardType = "race"
)

// ParseLeaderboardType validates a leaderboard type coming from a request.
func ParseLeaderboardType(s string) (LeaderboardType, error) {
	switch t := LeaderboardType(s); t {
	case LeaderboardElo, LeaderboardRace:
		return t, nil
	default:
		return "", ErrInvalidLeaderboardType
	}
}

// Ranking is the per-tenant, per-user rating record.
type Ranking struct {
	ID                string  `json:"id"`
	TenantID          string  `json:"tenant_id"`
	UserID            string  `json:"user_id"`
	EloScore          int     `json:"elo_score"`
	MonthlyRacePoints int     `json:"monthly_race_points"`
	TotalMatches      int     `json:"total_matches"`
	Wins              int     `json:"wins"`
	WinRate           float64 `json:"win_rate"`
	// LastResetDate is seeded with the creation time and afterwards only moved by ResetMonthlyRace.
	LastResetDate time.Time `json:"last_reset_date"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RankingUpdate is a partial update. Nil fields are left untouched.
type RankingUpdate struct {
	EloScore          *int
	MonthlyRacePoints *int
	TotalMatches      *int
	Wins              *int
	WinRate           *float64
	LastResetDate     *time.Time

	// ExpectedVersion, when set, makes the update conditional on the stored version.
	ExpectedVersion *int
}

// ResultIncrement is one match outcome applied to a ranking in place.
type ResultIncrement struct {
	EloGain    int
	RacePoints int
	Won        bool
}

// RankingWithDetails is a leaderboard row enriched with directory fields.
type RankingWithDetails struct {
	UserID            string  `json:"user_id"`
	UserName          string  `json:"user_name"`
	UserAvatar        *string `json:"user_avatar,omitempty"`
	EloScore          int     `json:"elo_score"`
	MonthlyRacePoints int     `json:"monthly_race_points"`
	TotalMatches      int     `json:"total_matches"`
	WinRate           float64 `json:"win_rate"`
	Position          int     `json:"position"`
}

// store handles ranking persistence.
type store struct {
	db         *sql.DB
	defaultElo int
	now        func() time.Time
}

// Option configures the SQL store.
type Option func(*store)

// WithDefaultElo sets the rating given to records created without one.
func WithDefaultElo(elo int) Option {
	return func(s *store) {
		s.defaultElo = elo
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *store) {
		s.now = now
	}
}
