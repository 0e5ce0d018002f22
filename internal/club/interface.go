package club

import "context"

// ClubStore is the directory of club members, partitioned by tenant.
type ClubStore interface {
	UpsertPlayers(ctx context.Context, tenantID string, players []PlayerInfo) error
	IsKnownPlayer(ctx context.Context, tenantID, playerID string) bool
	GetPlayers(ctx context.Context, tenantID string, playerIDs []string) ([]PlayerInfo, error)
	GetAllPlayers(ctx context.Context, tenantID string) ([]PlayerInfo, error)
}
