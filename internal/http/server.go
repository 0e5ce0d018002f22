package http

import (
	"net/http"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/config"
	"github.com/mauv0809/club-ladder/internal/http/handlers"
	"github.com/mauv0809/club-ladder/internal/leaderboard"
	"github.com/mauv0809/club-ladder/internal/match"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
)

// NewServer wires the routes. pubsub may be nil, which disables async intake.
func NewServer(recorder processor.MatchRecorder, matches match.Store, board leaderboard.Querier, players club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Recorder:       recorder,
		Matches:        matches,
		Leaderboard:    board,
		Players:        players,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, tenantMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(handlers.RecordMatchHandler(s.Recorder, s.pubsub), paramsMiddleware, tenantMiddleware))
	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Matches), paramsMiddleware, tenantMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(handlers.GetMatchHandler(s.Matches), paramsMiddleware, tenantMiddleware))

	s.Router.Handle("GET /rankings", Chain(handlers.RankingsHandler(s.Leaderboard), paramsMiddleware, tenantMiddleware))
	s.Router.Handle("GET /rankings/heads", Chain(handlers.HeadsOfSeriesHandler(s.Leaderboard), paramsMiddleware, tenantMiddleware))
	s.Router.Handle("POST /rankings/reset", Chain(handlers.ResetRaceHandler(s.Leaderboard), paramsMiddleware, tenantMiddleware))

	s.Router.Handle("GET /members", Chain(handlers.ListMembersHandler(s.Players), paramsMiddleware, tenantMiddleware))
	s.Router.Handle("POST /members", Chain(handlers.UpsertMembersHandler(s.Players), paramsMiddleware, tenantMiddleware))

	if s.pubsub != nil {
		s.Router.Handle("POST /pubsub/record-match", Chain(handlers.RecordMatchPushHandler(s.Recorder, s.pubsub), paramsMiddleware))
	}

	s.Router.Handle("POST /slack/command/rankings", Chain(
		handlers.RankingsCommandHandler(s.Leaderboard, s.Notifier, s.Cfg.TenantID),
		paramsMiddleware,
		slackVerifyMiddleware(s.Cfg.Slack.SigningSecret),
	))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
