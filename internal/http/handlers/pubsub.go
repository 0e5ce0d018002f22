package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
)

// RecordMatchPushHandler is the push endpoint of the record-match-result subscription.
//
// Pub/Sub redelivers on any non-2xx answer, so a payload that can never be
// rated is acknowledged with 200 and dropped.
func RecordMatchPushHandler(recorder processor.MatchRecorder, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received record match message", "body", string(bodyBytes))

		rawData, err := pubsub.DecodePushEnvelope(bodyBytes)
		if err != nil {
			log.Error("Failed to decode push envelope", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}

		var in processor.RecordInput
		if err := pubsubClient.ProcessMessage(rawData, &in); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if IsDryRunFromContext(r) {
			if _, err := recorder.Preview(r.Context(), in); err != nil {
				log.Error("Failed to preview match result", "error", err)
			}
			w.Write([]byte("OK"))
			return
		}

		if _, err := recorder.RecordResult(r.Context(), in); err != nil {
			if errors.Is(err, processor.ErrInvalidMatch) {
				log.Warn("Dropping invalid match result", "error", err)
				w.Write([]byte("OK"))
				return
			}
			log.Error("Failed to record match result", "error", err)
			http.Error(w, "Failed to record match result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
