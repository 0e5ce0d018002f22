package club

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db:  db,
		now: time.Now,
	}
}

// UpsertPlayers inserts new players and refreshes name and avatar of known ones.
// An existing avatar is kept when the update carries none.
func (s *store) UpsertPlayers(ctx context.Context, tenantID string, players []PlayerInfo) error {
	if len(players) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (tenant_id, id, name, avatar_url, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(tenant_id, id) DO UPDATE SET
			name = excluded.name,
			avatar_url = COALESCE(excluded.avatar_url, players.avatar_url),
			updated_at = excluded.updated_at;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := s.now().Unix()
	for _, p := range players {
		if p.ID == "" {
			continue
		}
		name := p.Name
		if name == "" {
			name = p.ID
		}
		if _, err := stmt.ExecContext(ctx, tenantID, p.ID, name, p.AvatarURL, now); err != nil {
			log.Error("Failed to upsert player", "error", err, "tenantID", tenantID, "playerID", p.ID)
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Upserted players", "tenantID", tenantID, "count", len(players))
	return nil
}

func (s *store) IsKnownPlayer(ctx context.Context, tenantID, playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM players WHERE tenant_id = ? AND id = ?)", tenantID, playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

// GetPlayers returns the known players among playerIDs. Unknown ids are skipped.
func (s *store) GetPlayers(ctx context.Context, tenantID string, playerIDs []string) ([]PlayerInfo, error) {
	if len(playerIDs) == 0 {
		return []PlayerInfo{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	args := make([]any, 0, len(playerIDs)+1)
	args = append(args, tenantID)
	for _, id := range playerIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id, name, avatar_url, updated_at FROM players WHERE tenant_id = ? AND id IN (%s) ORDER BY name", placeholders),
		args...)
	if err != nil {
		log.Error("Failed to query players", "error", err, "tenantID", tenantID)
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (s *store) GetAllPlayers(ctx context.Context, tenantID string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, avatar_url, updated_at FROM players WHERE tenant_id = ? ORDER BY name", tenantID)
	if err != nil {
		log.Error("Failed to query all players", "error", err, "tenantID", tenantID)
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	players := []PlayerInfo{}
	for rows.Next() {
		var p PlayerInfo
		var avatar sql.NullString
		var updated int64
		if err := rows.Scan(&p.ID, &p.Name, &avatar, &updated); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		if avatar.Valid {
			p.AvatarURL = &avatar.String
		}
		p.UpdatedAt = time.Unix(updated, 0)
		players = append(players, p)
	}
	return players, rows.Err()
}
