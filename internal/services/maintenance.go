package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const revokedTokenPurgeSchedule = "@hourly"

type RevokedTokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// MaintenanceScheduler runs periodic housekeeping jobs on a cron schedule.
type MaintenanceScheduler struct {
	cron     *cron.Cron
	purger   RevokedTokenPurger
	logger   *logrus.Logger
	now      func() time.Time
	onPurged func(int64)
}

func NewMaintenanceScheduler(purger RevokedTokenPurger, logger *logrus.Logger) (*MaintenanceScheduler, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	scheduler := &MaintenanceScheduler{
		cron:   cron.New(),
		purger: purger,
		logger: logger,
		now:    time.Now,
	}
	if _, err := scheduler.cron.AddFunc(revokedTokenPurgeSchedule, scheduler.PurgeRevokedTokens); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// OnPurged registers a callback that receives the number of rows removed by
// each successful purge run.
func (scheduler *MaintenanceScheduler) OnPurged(callback func(int64)) {
	scheduler.onPurged = callback
}

// Schedule adds a job under the given cron spec, e.g. "@every 10m".
func (scheduler *MaintenanceScheduler) Schedule(spec string, job func()) error {
	if job == nil {
		return errors.New("maintenance job is nil")
	}
	if _, err := scheduler.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("schedule maintenance job %q: %w", spec, err)
	}
	return nil
}

func (scheduler *MaintenanceScheduler) Start() {
	scheduler.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (scheduler *MaintenanceScheduler) Stop(ctx context.Context) {
	select {
	case <-scheduler.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (scheduler *MaintenanceScheduler) PurgeRevokedTokens() {
	purged, err := scheduler.purger.PurgeExpired(context.Background(), scheduler.now())
	if err != nil {
		scheduler.logger.WithError(err).Error("purge expired revoked tokens")
		return
	}
	if scheduler.onPurged != nil {
		scheduler.onPurged(purged)
	}
	if purged > 0 {
		scheduler.logger.WithField("purged", purged).Info("purged expired revoked tokens")
	}
}
