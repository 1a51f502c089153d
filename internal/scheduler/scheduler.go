// Package scheduler runs nightly ingest jobs when enabled.
package scheduler

import (
	"context"

	"halal-atlas/backend/internal/logger"
	"halal-atlas/backend/internal/service"

	"github.com/robfig/cron/v3"
)

// Sources are scraped off-peak; the hour is local server time.
const nightlyIngestSpec = "0 0 3 * * *"

type Scheduler struct {
	cron   *cron.Cron
	ingest *service.IngestService
	runLog *service.RunLog
}

func NewScheduler(ingest *service.IngestService, runLog *service.RunLog) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		ingest: ingest,
		runLog: runLog,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(nightlyIngestSpec, s.runNightlyIngest)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("spec", nightlyIngestSpec).Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	logger.Info().Msg("scheduler stopped")
}

// runNightlyIngest refreshes every source. A failing source is logged and
// skipped so the others still run.
func (s *Scheduler) runNightlyIngest() {
	ctx := context.Background()

	runs := []struct {
		name string
		fn   func(context.Context, service.RunOptions) (*service.SourceReport, error)
	}{
		{"vancouver foodies", s.ingest.IngestVancouverFoodies},
		{"google maps list", s.ingest.IngestGoogleMapsList},
	}

	for _, run := range runs {
		report, err := run.fn(ctx, service.RunOptions{})
		if err != nil {
			logger.Error().Err(err).Str("job", run.name).Msg("scheduled ingest failed")
			continue
		}
		s.runLog.Add(report)
	}
}

// Entries returns information about scheduled jobs
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}
