package scheduler

import (
	"context"
	"fmt"

	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/scope"
)

// Start registers the job and starts the cron loop. Runs use ctx, so
// cancelling it aborts a run in progress.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.config.Spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("scheduler.Start: %w", err)
	}
	s.cron.Start()
	s.l.Infof(ctx, "scheduler.Start: %q over %s", s.config.Spec, s.config.SourcePrefix)
	return nil
}

// Stop stops scheduling and returns a context done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	started := s.now().UTC()
	ctx = scope.SetScopeToContext(ctx, model.SystemScope)

	out, err := s.uc.Process(ctx, model.SystemScope, report.ProcessInput{
		BatchID:    "scheduled-" + started.Format("20060102T1504"),
		Source:     model.SourceScheduler,
		Title:      "Scheduled intelligence " + started.Format("2006-01-02 15:04"),
		SourceURLs: []string{s.config.SourcePrefix},
		Subject:    s.config.Subject,
	})
	if err != nil {
		s.l.Errorf(ctx, "scheduler.run: scheduled report failed: %v", err)
		return
	}
	s.l.Infof(ctx, "scheduler.run: report %s done in %s (mentions=%d negative=%d)",
		out.ReportID, out.Duration, out.TotalMentions, out.NegativeMentions)
}
