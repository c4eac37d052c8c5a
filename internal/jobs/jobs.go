// Package jobs runs the periodic background sweeps.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/spa/spa/internal/domain/scheduling"
	"github.com/spa/spa/internal/platform/metrics"
)

// Runner owns the cron scheduler. Sweeps only observe and report;
// lifecycle transitions stay explicit operator actions through the API.
type Runner struct {
	cron *cron.Cron
	sch  *scheduling.Service
	log  zerolog.Logger
}

func NewRunner(sch *scheduling.Service, log zerolog.Logger) *Runner {
	return &Runner{
		cron: cron.New(),
		sch:  sch,
		log:  log.With().Str("component", "jobs").Logger(),
	}
}

// Start registers the sweeps and launches the scheduler.
func (r *Runner) Start() error {
	// Every 15 minutes: surface CONFIRMED bookings whose window has
	// fully passed so reception can mark them no-show.
	if _, err := r.cron.AddFunc("*/15 * * * *", r.noShowSweep); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info().Msg("background jobs started")
	return nil
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info().Msg("background jobs stopped")
}

func (r *Runner) noShowSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	candidates, err := r.sch.NoShowCandidates(ctx, time.Now().UTC())
	if err != nil {
		r.log.Error().Err(err).Msg("no-show sweep failed")
		return
	}
	for _, res := range candidates {
		metrics.NoShowsMarked.Inc()
		r.log.Warn().
			Str("number", res.Number).
			Str("date", res.ReservedDate.Format("2006-01-02")).
			Str("window", res.Window().Clock()).
			Msg("confirmed reservation passed without check-in")
	}
	if len(candidates) > 0 {
		r.log.Info().Int("count", len(candidates)).Msg("no-show candidates found")
	}
}
