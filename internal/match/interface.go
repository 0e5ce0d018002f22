package match

import "context"

// Store is an append-only log of matches.
type Store interface {
	Save(ctx context.Context, m Match) (*Match, error)
	FindByID(ctx context.Context, tenantID, id string) (*Match, error)
	// ListByTenant returns the most recent matches first.
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]Match, error)
	// ListByUser returns matches the user won or lost, most recent first.
	ListByUser(ctx context.Context, tenantID, userID string, limit int) ([]Match, error)
}
