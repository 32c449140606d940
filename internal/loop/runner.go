// Package loop schedules recurring learning cycles on a cron expression.
package loop

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSpec is the cadence used when no schedule is configured.
const DefaultSpec = "@hourly"

// Runner triggers a learning cycle on a cron schedule. The cycle function is
// responsible for its own overlap protection; the runner just fires.
type Runner struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New builds a runner that calls cycle according to spec. An empty spec falls
// back to DefaultSpec.
func New(spec string, cycle func(ctx context.Context) error, logger *slog.Logger) (*Runner, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := cycle(context.Background()); err != nil {
			logger.Warn("cycle_failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", spec, err)
	}

	return &Runner{cron: c, logger: logger}, nil
}

// Start begins firing cycles in the background.
func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Debug("runner_started")
}

// Stop halts the schedule and waits for an in-flight trigger to return.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Debug("runner_stopped")
}
