package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// SnapshotSource produces the serialized state and the character name it belongs to
type SnapshotSource interface {
	SnapshotJSON() ([]byte, string, error)
}

// SnapshotUploader stores a snapshot under key and returns where it can be fetched
type SnapshotUploader interface {
	UploadSnapshot(ctx context.Context, key string, body []byte) (string, error)
}

// SnapshotBackup copies the current state to object storage
type SnapshotBackup struct {
	source   SnapshotSource
	uploader SnapshotUploader
	clock    clockwork.Clock
	logger   *zap.Logger
}

func NewSnapshotBackup(source SnapshotSource, uploader SnapshotUploader, clock clockwork.Clock, logger *zap.Logger) *SnapshotBackup {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotBackup{source: source, uploader: uploader, clock: clock, logger: logger.Named("backup")}
}

// Run uploads one snapshot and returns its URL
func (b *SnapshotBackup) Run(ctx context.Context) (string, error) {
	data, name, err := b.source.SnapshotJSON()
	if err != nil {
		return "", err
	}
	key := SnapshotKey(name, b.clock.Now())
	url, err := b.uploader.UploadSnapshot(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}
	b.logger.Info("Snapshot uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
	return url, nil
}

// SnapshotKey builds the object key snapshots/<character-slug>/<utc timestamp>.json
func SnapshotKey(name string, at time.Time) string {
	s := slug.Make(name)
	if s == "" {
		s = "hero"
	}
	return fmt.Sprintf("snapshots/%s/%s.json", s, at.UTC().Format("20060102T150405Z"))
}
