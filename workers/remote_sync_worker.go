package workers

import (
	"context"
	"time"

	"fitness-rpg/models"
	"fitness-rpg/services"

	"go.uber.org/zap"
)

// RemoteMerger folds remote records into local state
type RemoteMerger interface {
	MergeRemote(sets []models.WorkoutSet, logs []models.DailyLog) (services.Outcome, error)
}

// RemoteSyncWorker pulls the remote tables into the session at start and on every tick
type RemoteSyncWorker struct {
	store    RemoteStore
	merger   RemoteMerger
	interval time.Duration
	logger   *zap.Logger
}

// NewRemoteSyncWorker returns a worker; an interval of 0 means pull once at start only
func NewRemoteSyncWorker(store RemoteStore, merger RemoteMerger, interval time.Duration, logger *zap.Logger) *RemoteSyncWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteSyncWorker{
		store:    store,
		merger:   merger,
		interval: interval,
		logger:   logger.Named("remote-sync"),
	}
}

func (w *RemoteSyncWorker) Start(ctx context.Context) {
	w.logger.Info("Starting remote sync worker", zap.Duration("interval", w.interval))
	go w.run(ctx)
}

func (w *RemoteSyncWorker) run(ctx context.Context) {
	if err := w.SyncOnce(ctx); err != nil {
		w.logger.Warn("Initial remote sync failed", zap.Error(err))
	}
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.SyncOnce(ctx); err != nil {
				w.logger.Warn("Remote sync failed", zap.Error(err))
			}
		case <-ctx.Done():
			w.logger.Info("Remote sync worker stopped")
			return
		}
	}
}

// SyncOnce pulls every remote table and merges the result
func (w *RemoteSyncWorker) SyncOnce(ctx context.Context) error {
	sets, logs, err := PullRemote(ctx, w.store)
	if err != nil {
		return err
	}

	out, err := w.merger.MergeRemote(sets, logs)
	if err != nil {
		return err
	}
	if !out.Changed() {
		w.logger.Debug("Remote already in sync", zap.Int("sets", len(sets)), zap.Int("logs", len(logs)))
		return nil
	}
	w.logger.Info("Merged remote records",
		zap.Int("added", out.Added),
		zap.Int("merged", out.Merged),
		zap.Int64("xp", out.XPAwarded))
	return nil
}
