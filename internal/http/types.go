package http

import (
	"net/http"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/config"
	"github.com/mauv0809/club-ladder/internal/leaderboard"
	"github.com/mauv0809/club-ladder/internal/match"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
)

type Server struct {
	Recorder       processor.MatchRecorder
	Matches        match.Store
	Leaderboard    leaderboard.Querier
	Players        club.ClubStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
