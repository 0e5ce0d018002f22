package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/slack-go/slack"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
	TenantKey ContextKey = "tenantID"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// TenantFromContext returns the tenant set by the tenant middleware, or "".
func TenantFromContext(r *http.Request) string {
	tenantID, _ := r.Context().Value(TenantKey).(string)
	return tenantID
}

// requireTenant writes a 400 and returns false when the request has no tenant.
func requireTenant(w http.ResponseWriter, r *http.Request) (string, bool) {
	tenantID := TenantFromContext(r)
	if tenantID == "" {
		http.Error(w, "Missing X-Tenant-ID header", http.StatusBadRequest)
		return "", false
	}
	return tenantID, true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	respondJSON(w, http.StatusOK, msg)
}

// queryInt reads a non-negative integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// leaderboardType parses a board name, defaulting to ELO.
func leaderboardType(raw string) (ranking.LeaderboardType, error) {
	if raw == "" {
		return ranking.LeaderboardElo, nil
	}
	return ranking.ParseLeaderboardType(raw)
}
