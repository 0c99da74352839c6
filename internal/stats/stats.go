// Package stats runs a background collector that refreshes store-derived
// gauges on a cron schedule.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/calebmoran/weatherdeck/internal/metrics"
	"github.com/calebmoran/weatherdeck/internal/repo"
	"github.com/robfig/cron/v3"
)

const refreshSchedule = "@every 1m"

// Run refreshes the registered-users gauge immediately and then on a fixed
// cron schedule until ctx is canceled. Collection failures are logged and the
// previous gauge value is kept.
func Run(ctx context.Context, userRepo *repo.UserRepo) error {
	refresh := func() {
		callCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		n, err := userRepo.Count(callCtx)
		if err != nil {
			slog.Warn("stats: user count failed", "error", err)
			return
		}
		metrics.SetRegisteredUsers(n)
	}

	c := cron.New()
	if _, err := c.AddFunc(refreshSchedule, refresh); err != nil {
		return err
	}

	refresh()
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return nil
}
