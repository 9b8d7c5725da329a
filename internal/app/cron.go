package app

import (
	"time"

	sessionpkg "github.com/inkstone/core/internal/pkg/session"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// startCron launches background maintenance jobs. The only job today sweeps
// sessions that expired or were revoked more than a day ago; it never touches
// post counters.
func (a *App) startCron() {
	logger := a.logger.Named("cron")
	sched := cron.New()

	_, err := sched.AddFunc("@hourly", func() {
		cutoff := time.Now().Add(-24 * time.Hour)
		removed, err := sessionpkg.PurgeExpired(a.db, cutoff)
		if err != nil {
			logger.Warn("session sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			logger.Info("session sweep done", zap.Int64("removed", removed))
		}
	})
	if err != nil {
		logger.Warn("failed to register session sweep", zap.Error(err))
		return
	}

	sched.Start()
	a.sched = sched
}
