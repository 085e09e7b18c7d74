package workers

import (
	"context"
	"sync"
	"time"

	"fitness-rpg/models"

	"go.uber.org/zap"
)

type mirrorJob struct {
	name string
	run  func(ctx context.Context) error
}

// MirrorWriter copies local changes to the remote store on a background goroutine.
// Enqueueing never blocks: when the queue is full the write is dropped and logged.
// Failures are logged and never reach the caller.
type MirrorWriter struct {
	store   RemoteStore
	jobs    chan mirrorJob
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewMirrorWriter(store RemoteStore, queueSize int, timeout time.Duration, logger *zap.Logger) *MirrorWriter {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MirrorWriter{
		store:   store,
		jobs:    make(chan mirrorJob, queueSize),
		timeout: timeout,
		logger:  logger.Named("mirror"),
	}
}

func (w *MirrorWriter) Start(ctx context.Context) {
	w.logger.Info("Starting mirror writer", zap.Int("queue_size", cap(w.jobs)))
	w.wg.Add(1)
	go w.run(ctx)
}

// Wait blocks until the writer goroutine has exited
func (w *MirrorWriter) Wait() {
	w.wg.Wait()
}

func (w *MirrorWriter) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case job := <-w.jobs:
			w.execute(ctx, job)
		case <-ctx.Done():
			w.logger.Info("Mirror writer stopped", zap.Int("dropped", len(w.jobs)))
			return
		}
	}
}

func (w *MirrorWriter) execute(ctx context.Context, job mirrorJob) {
	jobCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	if err := job.run(jobCtx); err != nil {
		w.logger.Warn("Mirror write failed", zap.String("job", job.name), zap.Error(err))
		return
	}
	w.logger.Debug("Mirror write done", zap.String("job", job.name), zap.Duration("took", time.Since(start)))
}

func (w *MirrorWriter) enqueue(job mirrorJob) {
	select {
	case w.jobs <- job:
	default:
		w.logger.Warn("Mirror queue full, dropping write", zap.String("job", job.name))
	}
}

func (w *MirrorWriter) MirrorSets(sets []models.WorkoutSet) {
	rows := SetsToRows(sets)
	if len(rows) == 0 {
		return
	}
	w.enqueue(mirrorJob{
		name: "workouts",
		run:  func(ctx context.Context) error { return w.store.UpsertWorkouts(ctx, rows) },
	})
}

func (w *MirrorWriter) MirrorLog(log models.DailyLog) {
	day := LogToDay(log)
	if day.Empty() {
		return
	}
	w.enqueue(mirrorJob{
		name: "day " + day.Date,
		run:  func(ctx context.Context) error { return w.store.UpsertDay(ctx, day) },
	})
}

func (w *MirrorWriter) MirrorRename(oldNames []string, newName string) {
	names := append([]string(nil), oldNames...)
	w.enqueue(mirrorJob{
		name: "rename " + newName,
		run: func(ctx context.Context) error {
			n, err := w.store.RenameExercise(ctx, names, newName)
			if err == nil {
				w.logger.Info("Renamed remote exercises", zap.String("to", newName), zap.Int64("rows", n))
			}
			return err
		},
	})
}
