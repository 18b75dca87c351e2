// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"gameplan-service/internal/config"
	"gameplan-service/internal/observability"
)

// AnnouncementPurger removes announcements posted before a cutoff.
type AnnouncementPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention drops announcements older than the configured number of days.
type Retention struct {
	repo    AnnouncementPurger
	maxAge  time.Duration
	timeout time.Duration
	now     func() time.Time
}

func NewRetention(repo AnnouncementPurger, days int) *Retention {
	return &Retention{
		repo:    repo,
		maxAge:  time.Duration(days) * 24 * time.Hour,
		timeout: time.Minute,
		now:     time.Now,
	}
}

// Run performs one purge. A zero retention keeps everything.
func (r *Retention) Run(ctx context.Context) (int64, error) {
	if r.maxAge <= 0 {
		return 0, nil
	}
	cutoff := r.now().Add(-r.maxAge)
	n, err := r.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge announcements before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	observability.AddRetentionPurged(n)
	return n, nil
}

// Schedule registers the retention run on c using a standard cron spec.
func (r *Retention) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		n, err := r.Run(ctx)
		if err != nil {
			slog.Error("retention run failed", "err", err)
			return
		}
		slog.Info("retention run finished", "purged", n)
	})
}

// Start builds a scheduler with the retention job and starts it. Callers stop
// it on shutdown.
func Start(cfg config.RetentionConfig, repo AnnouncementPurger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := NewRetention(repo, cfg.AnnouncementDays).Schedule(c, cfg.Schedule); err != nil {
		return nil, fmt.Errorf("schedule retention %q: %w", cfg.Schedule, err)
	}
	c.Start()
	slog.Info("retention scheduler started", "schedule", cfg.Schedule, "announcement_days", cfg.AnnouncementDays)
	return c, nil
}
