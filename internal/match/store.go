package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

var _ Store = (*store)(nil)

// New creates a SQL backed match Store.
func New(db *sql.DB) Store {
	return &store{db: db}
}

const matchColumns = `id, tenant_id, winner_id, loser_id, score, played_at, is_tournament, is_off_peak, is_matchmaking_challenge, metadata`

// Save appends a match. Existing matches are never overwritten.
func (s *store) Save(ctx context.Context, m Match) (*Match, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	// Stored with second precision, like every other timestamp.
	m.Date = time.Unix(m.Date.Unix(), 0)

	var metadata []byte
	if len(m.Metadata) > 0 {
		var err error
		metadata, err = msgpack.Marshal(m.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode match metadata: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (`+matchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.TenantID, m.WinnerID, m.LoserID, m.Score, m.Date.Unix(),
		m.IsTournament, m.IsOffPeak, m.IsMatchmakingChallenge, metadata)
	if err != nil {
		log.Error("Failed to save match", "error", err, "matchID", m.ID, "tenantID", m.TenantID)
		return nil, fmt.Errorf("failed to save match: %w", err)
	}
	log.Debug("Saved match", "matchID", m.ID, "tenantID", m.TenantID, "winner", m.WinnerID, "loser", m.LoserID)
	return &m, nil
}

func (s *store) FindByID(ctx context.Context, tenantID, id string) (*Match, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE tenant_id = ? AND id = ?`, tenantID, id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find match %s: %w", id, err)
	}
	return m, nil
}

func (s *store) ListByTenant(ctx context.Context, tenantID string, limit int) ([]Match, error) {
	return s.list(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE tenant_id = ?
		ORDER BY played_at DESC, id ASC
		LIMIT ?
	`, tenantID, limit)
}

func (s *store) ListByUser(ctx context.Context, tenantID, userID string, limit int) ([]Match, error) {
	return s.list(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE tenant_id = ? AND (winner_id = ? OR loser_id = ?)
		ORDER BY played_at DESC, id ASC
		LIMIT ?
	`, tenantID, userID, userID, limit)
}

func (s *store) list(ctx context.Context, query string, args ...any) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var playedAt int64
	var metadata []byte
	err := scanner.Scan(&m.ID, &m.TenantID, &m.WinnerID, &m.LoserID, &m.Score, &playedAt,
		&m.IsTournament, &m.IsOffPeak, &m.IsMatchmakingChallenge, &metadata)
	if err != nil {
		return nil, err
	}
	m.Date = time.Unix(playedAt, 0)
	if len(metadata) > 0 {
		if err := msgpack.Unmarshal(metadata, &m.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata of match %s: %w", m.ID, err)
		}
	}
	return &m, nil
}
