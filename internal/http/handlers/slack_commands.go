package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/leaderboard"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/slack-go/slack"
)

// SlackCommandLimit is how many rows the /rankings command shows.
const SlackCommandLimit = 10

// RankingsCommandHandler answers the /rankings slash command. The text selects
// the board ("elo" or "race", default elo). The workspace serves tenantID.
func RankingsCommandHandler(board leaderboard.Querier, notifier notifier.Notifier, tenantID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		if tenantID == "" {
			log.Error("Slack command received but no tenant is configured")
			respondWithSlackError(w, notifier, "This workspace is not linked to a club.")
			return
		}

		text := strings.ToLower(strings.TrimSpace(r.FormValue("text")))
		t, err := leaderboardType(text)
		if err != nil {
			respondWithSlackError(w, notifier, "Unknown leaderboard. Use `elo` or `race`.")
			return
		}
		log.Info("Received rankings command", "user", r.FormValue("user_name"), "type", t)

		rows, err := board.GetRankings(r.Context(), tenantID, t, SlackCommandLimit)
		if err != nil {
			http.Error(w, "Failed to get rankings", http.StatusInternalServerError)
			log.Error("Failed to get rankings", "error", err)
			return
		}

		msg, err := notifier.FormatRankingsResponse(t, rows)
		if err != nil {
			http.Error(w, "Failed to format rankings", http.StatusInternalServerError)
			log.Error("Failed to format rankings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

func respondWithSlackError(w http.ResponseWriter, notifier notifier.Notifier, text string) {
	msg, err := notifier.FormatErrorResponse(text)
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		w.Write([]byte(text))
		return
	}
	respondWithSlackMsg(w, slackMsg)
}
