// services/scheduler.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type SchedulerConfig struct {
	Clock  clockwork.Clock
	Logger *zap.Logger

	// Backup runs every BackupInterval; nil disables the job
	Backup         func(ctx context.Context) error
	BackupInterval time.Duration
}

// StartScheduler registers the recurring jobs and starts the scheduler.
// The caller owns shutdown.
func (s *GameSession) StartScheduler(ctx context.Context, cfg SchedulerConfig) (gocron.Scheduler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = s.logger
	}
	logger = logger.Named("scheduler")

	opts := []gocron.SchedulerOption{}
	if cfg.Clock != nil {
		opts = append(opts, gocron.WithClock(cfg.Clock))
	}
	sched, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	// Shortly after midnight: roll daily/weekly/monthly quest windows over
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 5))),
		gocron.NewTask(func() {
			out, err := s.Reevaluate()
			if err != nil {
				logger.Error("Nightly re-evaluation failed", zap.Error(err))
				return
			}
			logger.Info("Nightly re-evaluation done",
				zap.Int("quests_completed", len(out.CompletedQuests)),
				zap.Int("achievements_unlocked", len(out.NewlyUnlocked)))
		}),
		gocron.WithName("reevaluate"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule re-evaluation: %w", err)
	}

	if cfg.Backup != nil && cfg.BackupInterval > 0 {
		_, err = sched.NewJob(
			gocron.DurationJob(cfg.BackupInterval),
			gocron.NewTask(func() {
				if err := cfg.Backup(ctx); err != nil {
					logger.Warn("Snapshot backup failed", zap.Error(err))
				}
			}),
			gocron.WithName("snapshot-backup"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule backup: %w", err)
		}
	}

	sched.Start()
	logger.Info("Scheduler started", zap.Int("jobs", len(sched.Jobs())))
	return sched, nil
}
