// Package scheduler runs the monthly Race reset on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/mauv0809/club-ladder/internal/leaderboard"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// StandingsSize is how many players the end-of-month post shows.
const StandingsSize = 10

// Tenants lists the tenants that hold rankings.
type Tenants interface {
	ListTenants(ctx context.Context) ([]string, error)
}

// RaceResetJob posts each tenant's final Race standings and then resets its Race.
type RaceResetJob struct {
	tenants  Tenants
	board    leaderboard.Querier
	notifier notifier.Notifier
}

// NewRaceResetJob creates the job. notifier may be nil, in which case nothing is posted.
func NewRaceResetJob(tenants Tenants, board leaderboard.Querier, n notifier.Notifier) *RaceResetJob {
	return &RaceResetJob{tenants: tenants, board: board, notifier: n}
}

var _ Tenants = (ranking.Store)(nil)

// Run resets every tenant. A failing tenant does not stop the others.
func (j *RaceResetJob) Run(ctx context.Context) error {
	tenants, err := j.tenants.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("listing tenants: %w", err)
	}
	log.Info("Starting monthly race reset", "tenants", len(tenants))

	var errs []error
	for _, tenantID := range tenants {
		if j.notifier != nil {
			j.postStandings(ctx, tenantID)
		}
		if _, err := j.board.ResetMonthlyRace(ctx, tenantID); err != nil {
			log.Error("Failed to reset race", "error", err, "tenantID", tenantID)
			errs = append(errs, fmt.Errorf("tenant %s: %w", tenantID, err))
		}
	}
	return errors.Join(errs...)
}

// postStandings is best effort: a failed post must not block the reset.
func (j *RaceResetJob) postStandings(ctx context.Context, tenantID string) {
	rows, err := j.board.GetRankings(ctx, tenantID, ranking.LeaderboardRace, StandingsSize)
	if err != nil {
		log.Error("Failed to load final race standings", "error", err, "tenantID", tenantID)
		return
	}
	if len(rows) == 0 {
		return
	}
	if err := j.notifier.SendRaceStandings(ctx, tenantID, rows, false); err != nil {
		log.Error("Failed to post final race standings", "error", err, "tenantID", tenantID)
	}
}

// Scheduler owns the cron scheduler.
type Scheduler struct {
	sched gocron.Scheduler
}

// New registers job under the cron expression. The scheduler is not started.
func New(cronExpr string, job *RaceResetJob) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := job.Run(ctx); err != nil {
				log.Error("Monthly race reset finished with errors", "error", err)
				return
			}
			log.Info("Monthly race reset finished")
		}),
		gocron.WithName("monthly-race-reset"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("invalid race reset schedule %q: %w", cronExpr, err)
	}
	return &Scheduler{sched: sched}, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	log.Info("Scheduler started", "jobs", len(s.sched.Jobs()))
}

// NextRun reports when the reset will run next.
func (s *Scheduler) NextRun() (time.Time, error) {
	jobs := s.sched.Jobs()
	if len(jobs) == 0 {
		return time.Time{}, errors.New("no jobs scheduled")
	}
	return jobs[0].NextRun()
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
