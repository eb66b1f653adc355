package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler fires a job on a cron expression evaluated in the reference zone.
type Scheduler struct {
	logger *slog.Logger
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger}
}

// Next returns the first activation of expr strictly after from.
func (s *Scheduler) Next(expr string, from time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule.Next(from.In(domain.ReferenceZone)), nil
}

// Run blocks until ctx is done. Overlapping activations are skipped while a
// previous job is still running.
func (s *Scheduler) Run(ctx context.Context, expr string, job func(context.Context)) error {
	c := cron.New(
		cron.WithLocation(domain.ReferenceZone),
		cron.WithParser(cronParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := c.AddFunc(expr, func() { job(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	c.Start()
	if entries := c.Entries(); len(entries) > 0 {
		s.logger.InfoContext(ctx, "scheduler started", "cron", expr, "next", entries[0].Next.Format(time.RFC3339))
	}

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.InfoContext(ctx, "scheduler stopped")

	return nil
}
