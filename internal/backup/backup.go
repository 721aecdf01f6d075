// Package backup writes periodic xlsx snapshots of the candidate
// list. Backups are advisory: a failed write is logged and skipped,
// the in-memory list is never touched, and the next tick tries again.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/agilec-tools/touchpoint/internal/candidate"
	"github.com/agilec-tools/touchpoint/internal/excel"
)

// Snapshotter provides the list to back up. *store.Store satisfies it.
type Snapshotter interface {
	Snapshot() []candidate.Candidate
}

// Scheduler writes a timestamped workbook to Dir every Interval.
type Scheduler struct {
	Dir      string
	Interval time.Duration
	Source   Snapshotter

	// now is swappable for tests.
	now func() time.Time
}

func NewScheduler(dir string, interval time.Duration, source Snapshotter) *Scheduler {
	return &Scheduler{
		Dir:      dir,
		Interval: interval,
		Source:   source,
		now:      time.Now,
	}
}

// Run blocks, writing a backup every interval until ctx is canceled.
// Intended to run in its own goroutine from main.
func (s *Scheduler) Run(ctx context.Context) {
	logger := slog.Default().With("component", "backup")
	logger.Info("backup scheduler started", "dir", s.Dir, "interval", s.Interval)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("backup scheduler stopped")
			return
		case <-ticker.C:
			path, err := s.WriteBackup()
			if err != nil {
				logger.Error("backup failed", "error", err)
				continue
			}
			logger.Info("backup written", "path", path)
		}
	}
}

// WriteBackup writes one snapshot now and returns the file path.
// An empty list is skipped rather than written as an empty workbook.
func (s *Scheduler) WriteBackup() (string, error) {
	list := s.Source.Snapshot()
	if len(list) == 0 {
		return "", fmt.Errorf("backup: nothing to back up")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: create dir: %w", err)
	}

	path := filepath.Join(s.Dir, BackupFilename(s.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("backup: create file: %w", err)
	}
	defer f.Close()

	if err := excel.Write(f, list); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// BackupFilename names a backup after its moment of creation. Colons
// are replaced so the name is valid on every filesystem.
func BackupFilename(t time.Time) string {
	stamp := t.Format("2006-01-02T15-04-05")
	return fmt.Sprintf("touchpoint_backup_%s.xlsx", stamp)
}
