package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/leaderboard"
	"github.com/mauv0809/club-ladder/internal/match"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
)

// DefaultMatchListLimit caps GET /matches when no limit is given.
const DefaultMatchListLimit = 50

// DefaultHeadsCount is the number of seeds GET /rankings/heads returns by default.
const DefaultHeadsCount = 4

func ListMembersHandler(players club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		members, err := players.GetAllPlayers(r.Context(), tenantID)
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err, "tenantID", tenantID)
			return
		}
		respondJSON(w, http.StatusOK, members)
	}
}

func UpsertMembersHandler(players club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		var members []club.PlayerInfo
		if err := json.NewDecoder(r.Body).Decode(&members); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		for _, m := range members {
			if m.ID == "" {
				http.Error(w, "Every player needs an id", http.StatusBadRequest)
				return
			}
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Skipping player upsert", "tenantID", tenantID, "count", len(members))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := players.UpsertPlayers(r.Context(), tenantID, members); err != nil {
			http.Error(w, "Failed to save players", http.StatusInternalServerError)
			log.Error("Failed to upsert players", "error", err, "tenantID", tenantID)
			return
		}
		log.Info("Players upserted", "tenantID", tenantID, "count", len(members))
		w.WriteHeader(http.StatusNoContent)
	}
}

// RecordMatchHandler records a match result. With dry_run it only previews the
// ranking changes, with async=true it hands the result to Pub/Sub.
func RecordMatchHandler(recorder processor.MatchRecorder, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		var in processor.RecordInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		in.TenantID = tenantID
		if err := in.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if IsDryRunFromContext(r) {
			changes, err := recorder.Preview(r.Context(), in)
			if err != nil {
				log.Error("Failed to preview match result", "error", err)
				http.Error(w, "Failed to preview match result", http.StatusInternalServerError)
				return
			}
			respondJSON(w, http.StatusOK, map[string]any{"dry_run": true, "ranking_changes": changes})
			return
		}

		if r.URL.Query().Get("async") == "true" {
			if pubsubClient == nil {
				http.Error(w, "Asynchronous intake is not configured", http.StatusServiceUnavailable)
				return
			}
			if err := pubsubClient.SendMessage(r.Context(), pubsub.EventRecordMatchResult, in); err != nil {
				log.Error("Failed to publish match result", "error", err)
				http.Error(w, "Failed to queue match result", http.StatusInternalServerError)
				return
			}
			respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
			return
		}

		result, err := recorder.RecordResult(r.Context(), in)
		if err != nil {
			if errors.Is(err, processor.ErrInvalidMatch) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("Failed to record match result", "error", err)
			http.Error(w, "Failed to record match result", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusCreated, result)
	}
}

func ListMatchesHandler(matches match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		limit, ok := queryInt(r, "limit", DefaultMatchListLimit)
		if !ok {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		var (
			list []match.Match
			err  error
		)
		if userID := r.URL.Query().Get("user"); userID != "" {
			list, err = matches.ListByUser(r.Context(), tenantID, userID, limit)
		} else {
			list, err = matches.ListByTenant(r.Context(), tenantID, limit)
		}
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func GetMatchHandler(matches match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		m, err := matches.FindByID(r.Context(), tenantID, r.PathValue("id"))
		if errors.Is(err, match.ErrNotFound) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			log.Error("Failed to get match", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

func RankingsHandler(board leaderboard.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		t, err := leaderboardType(r.URL.Query().Get("type"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit, ok := queryInt(r, "limit", leaderboard.DefaultLimit)
		if !ok {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		rows, err := board.GetRankings(r.Context(), tenantID, t, limit)
		if err != nil {
			http.Error(w, "Failed to get rankings", http.StatusInternalServerError)
			log.Error("Failed to get rankings", "error", err, "tenantID", tenantID)
			return
		}
		respondJSON(w, http.StatusOK, rows)
	}
}

func HeadsOfSeriesHandler(board leaderboard.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		count, ok := queryInt(r, "count", DefaultHeadsCount)
		if !ok {
			http.Error(w, "Invalid count", http.StatusBadRequest)
			return
		}
		heads, err := board.GetHeadsOfSeries(r.Context(), tenantID, count)
		if err != nil {
			http.Error(w, "Failed to get heads of series", http.StatusInternalServerError)
			log.Error("Failed to get heads of series", "error", err, "tenantID", tenantID)
			return
		}
		respondJSON(w, http.StatusOK, heads)
	}
}

// ResetRaceHandler resets the Race of the requesting tenant, or of every tenant
// when no tenant header is sent.
func ResetRaceHandler(board leaderboard.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := TenantFromContext(r)
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Skipping race reset", "tenantID", tenantID)
			respondJSON(w, http.StatusOK, map[string]any{"dry_run": true, "reset": 0})
			return
		}
		n, err := board.ResetMonthlyRace(r.Context(), tenantID)
		if err != nil {
			http.Error(w, "Failed to reset race", http.StatusInternalServerError)
			log.Error("Failed to reset race", "error", err, "tenantID", tenantID)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"reset": n})
	}
}
