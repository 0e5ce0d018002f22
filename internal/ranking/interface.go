package ranking

import "context"

// Store persists ranking records. Every query is scoped to one tenant except a global reset.
type Store interface {
	// FindByUserAndTenant returns nil when the user has no record in the tenant.
	FindByUserAndTenant(ctx context.Context, tenantID, userID string) (*Ranking, error)
	// Create inserts a record, filling defaults for omitted fields. A zero EloScore counts
	// as omitted and is stored as the default rating; use Update to set a rating of 0.
	// If a record for the same tenant and user already exists, that record is returned unchanged.
	Create(ctx context.Context, r Ranking) (*Ranking, error)
	// Update applies a partial update. It returns nil when the record no longer exists
	// and ErrVersionConflict when ExpectedVersion is stale.
	Update(ctx context.Context, id string, u RankingUpdate) (*Ranking, error)
	// ApplyResult adds a match outcome to the stored counters in a single statement and
	// returns the record as written. It returns nil when the record no longer exists.
	ApplyResult(ctx context.Context, id string, inc ResultIncrement) (*Ranking, error)
	GetTopByElo(ctx context.Context, tenantID string, limit int) ([]Ranking, error)
	GetRankingsWithUsers(ctx context.Context, tenantID string, t LeaderboardType, limit int) ([]RankingWithDetails, error)
	// ResetMonthlyRace zeroes race points for one tenant, or for every tenant when tenantID is empty.
	ResetMonthlyRace(ctx context.Context, tenantID string) (int64, error)
	ListTenants(ctx context.Context) ([]string, error)
}
