package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Reloader re-runs Directory.Load on a fixed interval.
type Reloader struct {
	scheduler gocron.Scheduler
}

// StartReloader schedules periodic reloads of d. Runs never overlap; a run
// still in progress when the next is due is rescheduled.
//
// A zero interval disables reloading and returns an idle Reloader. timeout
// bounds each load; zero means no bound.
func StartReloader(d *Directory, interval, timeout time.Duration) (*Reloader, error) {
	if interval < 0 {
		return nil, fmt.Errorf("reload interval must not be negative, got %s", interval)
	}
	if interval == 0 {
		d.logger.Info("periodic reload disabled")
		return &Reloader{}, nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx := context.Background()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			// Load logs its own failures and keeps the directory queryable.
			_ = d.Load(ctx)
		}),
		gocron.WithName("dealer-reload"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule reload: %w", err)
	}

	s.Start()
	d.logger.Info("reload scheduler started", "interval", interval.String())

	return &Reloader{scheduler: s}, nil
}

// Stop shuts the scheduler down, waiting for a running reload to return.
func (r *Reloader) Stop() error {
	if r.scheduler == nil {
		return nil
	}
	return r.scheduler.Shutdown()
}
