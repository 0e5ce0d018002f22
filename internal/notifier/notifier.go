package notifier

import (
	"context"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Final Race standings, posted right before the monthly reset.
	SendRaceStandings(ctx context.Context, tenantID string, rows []ranking.RankingWithDetails, dryRun bool) error

	// For formatting responses for slash commands
	FormatRankingsResponse(t ranking.LeaderboardType, rows []ranking.RankingWithDetails) (any, error)
	FormatErrorResponse(message string) (any, error)
}
