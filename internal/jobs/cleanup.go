package jobs

import (
	"os"
	"path/filepath"
	"time"

	"audio-weaver/internal/domain"

	"github.com/robfig/cron/v3"
)

// Janitor periodically removes generated audio files older than the
// configured TTL from the output directory. It never touches anything
// outside that directory.
type Janitor struct {
	dir      string
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   domain.Logger
}

// NewJanitor creates a cleanup job for dir with the given TTL and cron
// schedule expression
func NewJanitor(dir string, ttl time.Duration, schedule string, logger domain.Logger) *Janitor {
	return &Janitor{
		dir:      dir,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start schedules the sweep and begins running it
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Sweep); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("cleanup job scheduled", "dir", j.dir, "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// Stop halts the schedule; a running sweep finishes first
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

// Sweep removes files in the output directory whose modification time
// is older than the TTL
func (j *Janitor) Sweep() {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Warn("cleanup sweep could not read output dir", "dir", j.dir, "error", err)
		}
		return
	}

	cutoff := time.Now().Add(-j.ttl)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.logger.Warn("cleanup failed to remove file", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		j.logger.Info("cleanup sweep removed stale audio", "removed", removed, "dir", j.dir)
	}
}
