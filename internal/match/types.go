package match

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a match id is unknown in the tenant.
var ErrNotFound = errors.New("match not found")

// Match is an immutable record of a played match.
type Match struct {
	ID                     string            `json:"id" msgpack:"id"`
	TenantID               string            `json:"tenant_id" msgpack:"tenant_id"`
	WinnerID               string            `json:"winner_id" msgpack:"winner_id"`
	LoserID                string            `json:"loser_id" msgpack:"loser_id"`
	Score                  string            `json:"score" msgpack:"score"`
	Date                   time.Time         `json:"date" msgpack:"date"`
	IsTournament           bool              `json:"is_tournament" msgpack:"is_tournament"`
	IsOffPeak              bool              `json:"is_off_peak" msgpack:"is_off_peak"`
	IsMatchmakingChallenge bool              `json:"is_matchmaking_challenge" msgpack:"is_matchmaking_challenge"`
	Metadata               map[string]string `json:"metadata,omitempty" msgpack:"metadata,omitempty"`
}

// store handles match persistence.
type store struct {
	db *sql.DB
}
