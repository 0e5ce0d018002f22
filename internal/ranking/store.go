package ranking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const defaultElo = 1200

var _ Store = (*store)(nil)

// New creates a SQL backed ranking Store.
func New(db *sql.DB, opts ...Option) Store {
	s := &store{
		db:         db,
		defaultElo: defaultElo,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const rankingColumns = `id, tenant_id, user_id, elo_score, monthly_race_points, total_matches, wins, win_rate, last_reset_date, version, created_at, updated_at`

func (s *store) FindByUserAndTenant(ctx context.Context, tenantID, userID string) (*Ranking, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+rankingColumns+` FROM rankings WHERE tenant_id = ? AND user_id = ?`,
		tenantID, userID)
	r, err := scanRanking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find ranking for user %s: %w", userID, err)
	}
	return r, nil
}

func (s *store) Create(ctx context.Context, r Ranking) (*Ranking, error) {
	now := s.now()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.EloScore == 0 {
		r.EloScore = s.defaultElo
	}
	if r.LastResetDate.IsZero() {
		r.LastResetDate = now
	}

	// A concurrent first match for the same player may have created the record already.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rankings (`+rankingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
		ON CONFLICT(tenant_id, user_id) DO NOTHING;
	`, r.ID, r.TenantID, r.UserID, r.EloScore, r.MonthlyRacePoints, r.TotalMatches, r.Wins, r.WinRate,
		r.LastResetDate.Unix(), now.Unix(), now.Unix())
	if err != nil {
		log.Error("Failed to create ranking", "error", err, "tenantID", r.TenantID, "userID", r.UserID)
		return nil, fmt.Errorf("failed to create ranking: %w", err)
	}

	created, err := s.FindByUserAndTenant(ctx, r.TenantID, r.UserID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("ranking for user %s missing after insert", r.UserID)
	}
	log.Debug("Ranking ready", "tenantID", created.TenantID, "userID", created.UserID, "id", created.ID)
	return created, nil
}

func (s *store) Update(ctx context.Context, id string, u RankingUpdate) (*Ranking, error) {
	sets := []string{"version = version + 1", "updated_at = ?"}
	args := []any{s.now().Unix()}

	if u.EloScore != nil {
		sets = append(sets, "elo_score = ?")
		args = append(args, *u.EloScore)
	}
	if u.MonthlyRacePoints != nil {
		sets = append(sets, "monthly_race_points = ?")
		args = append(args, *u.MonthlyRacePoints)
	}
	if u.TotalMatches != nil {
		sets = append(sets, "total_matches = ?")
		args = append(args, *u.TotalMatches)
	}
	if u.Wins != nil {
		sets = append(sets, "wins = ?")
		args = append(args, *u.Wins)
	}
	if u.WinRate != nil {
		sets = append(sets, "win_rate = ?")
		args = append(args, *u.WinRate)
	}
	if u.LastResetDate != nil {
		sets = append(sets, "last_reset_date = ?")
		args = append(args, u.LastResetDate.Unix())
	}

	query := `UPDATE rankings SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)
	if u.ExpectedVersion != nil {
		query += ` AND version = ?`
		args = append(args, *u.ExpectedVersion)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to update ranking", "error", err, "id", id)
		return nil, fmt.Errorf("failed to update ranking %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update ranking %s: %w", id, err)
	}

	current, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if current == nil {
			log.Warn("Ranking vanished before update", "id", id)
			return nil, nil
		}
		log.Debug("Ranking version conflict", "id", id, "actual", current.Version)
		return nil, ErrVersionConflict
	}
	return current, nil
}

func (s *store) ApplyResult(ctx context.Context, id string, inc ResultIncrement) (*Ranking, error) {
	won := 0
	if inc.Won {
		won = 1
	}
	// Every right-hand side sees the values before this update.
	row := s.db.QueryRowContext(ctx, `
		UPDATE rankings SET
			elo_score = elo_score + ?,
			monthly_race_points = monthly_race_points + ?,
			total_matches = total_matches + 1,
			wins = wins + ?,
			win_rate = ROUND((wins + ?) * 100.0 / (total_matches + 1), 2),
			version = version + 1,
			updated_at = ?
		WHERE id = ?
		RETURNING `+rankingColumns,
		inc.EloGain, inc.RacePoints, won, won, s.now().Unix(), id)
	r, err := scanRanking(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("Ranking vanished before match result was applied", "id", id)
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to apply match result", "error", err, "id", id)
		return nil, fmt.Errorf("failed to apply result to ranking %s: %w", id, err)
	}
	return r, nil
}

func (s *store) findByID(ctx context.Context, id string) (*Ranking, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rankingColumns+` FROM rankings WHERE id = ?`, id)
	r, err := scanRanking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking %s: %w", id, err)
	}
	return r, nil
}

func (s *store) GetTopByElo(ctx context.Context, tenantID string, limit int) ([]Ranking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+rankingColumns+`
		FROM rankings
		WHERE tenant_id = ?
		ORDER BY elo_score DESC, user_id ASC
		LIMIT ?
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rankings: %w", err)
	}
	defer rows.Close()

	rankings := []Ranking{}
	for rows.Next() {
		r, err := scanRanking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}
		rankings = append(rankings, *r)
	}
	return rankings, rows.Err()
}

func (s *store) GetRankingsWithUsers(ctx context.Context, tenantID string, t LeaderboardType, limit int) ([]RankingWithDetails, error) {
	var orderBy string
	switch t {
	case LeaderboardElo:
		orderBy = "r.elo_score DESC, r.user_id ASC"
	case LeaderboardRace:
		orderBy = "r.monthly_race_points DESC, r.user_id ASC"
	default:
		return nil, ErrInvalidLeaderboardType
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.user_id, COALESCE(p.name, r.user_id), p.avatar_url,
			r.elo_score, r.monthly_race_points, r.total_matches, r.win_rate,
			ROW_NUMBER() OVER (ORDER BY `+orderBy+`) AS position
		FROM rankings r
		LEFT JOIN players p ON p.tenant_id = r.tenant_id AND p.id = r.user_id
		WHERE r.tenant_id = ?
		ORDER BY position
		LIMIT ?
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s leaderboard: %w", t, err)
	}
	defer rows.Close()

	result := []RankingWithDetails{}
	for rows.Next() {
		var d RankingWithDetails
		var avatar sql.NullString
		if err := rows.Scan(&d.UserID, &d.UserName, &avatar, &d.EloScore, &d.MonthlyRacePoints,
			&d.TotalMatches, &d.WinRate, &d.Position); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		if avatar.Valid && avatar.String != "" {
			d.UserAvatar = &avatar.String
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (s *store) ResetMonthlyRace(ctx context.Context, tenantID string) (int64, error) {
	now := s.now().Unix()
	query := `UPDATE rankings SET monthly_race_points = 0, last_reset_date = ?, version = version + 1, updated_at = ?`
	args := []any{now, now}
	if tenantID != "" {
		query += ` WHERE tenant_id = ?`
		args = append(args, tenantID)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to reset monthly race", "error", err, "tenantID", tenantID)
		return 0, fmt.Errorf("failed to reset monthly race: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to reset monthly race: %w", err)
	}
	log.Info("Monthly race reset", "tenantID", tenantID, "rankings", affected)
	return affected, nil
}

func (s *store) ListTenants(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tenant_id FROM rankings ORDER BY tenant_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}

func scanRanking(scanner interface{ Scan(...any) error }) (*Ranking, error) {
	var r Ranking
	var lastReset, created, updated int64
	err := scanner.Scan(&r.ID, &r.TenantID, &r.UserID, &r.EloScore, &r.MonthlyRacePoints, &r.TotalMatches,
		&r.Wins, &r.WinRate, &lastReset, &r.Version, &created, &updated)
	if err != nil {
		return nil, err
	}
	r.LastResetDate = time.Unix(lastReset, 0)
	r.CreatedAt = time.Unix(created, 0)
	r.UpdatedAt = time.Unix(updated, 0)
	return &r, nil
}
