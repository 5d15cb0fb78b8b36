package scheduler

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
)

// maxAge is how long uploaded files and idle sessions are kept around
const maxAge = 24 * time.Hour

// SessionExpirer drops sessions idle for longer than the given duration
type SessionExpirer interface {
	ExpireIdle(maxIdle time.Duration) int
}

// Scheduler manages periodic housekeeping: deleting processed uploads
// and expiring abandoned quiz sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	uploadDir string
	sessions  SessionExpirer
}

// New creates a new scheduler instance
func New(uploadDir string, sessions SessionExpirer) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		uploadDir: uploadDir,
		sessions:  sessions,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.cleanup)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// cleanup removes uploads older than maxAge and expires idle sessions
func (s *Scheduler) cleanup() {
	if n := s.removeOldUploads(); n > 0 {
		log.Printf("Removed %d stale upload(s) from %s", n, s.uploadDir)
	}
	if s.sessions != nil {
		if n := s.sessions.ExpireIdle(maxAge); n > 0 {
			log.Printf("Expired %d idle quiz session(s)", n)
		}
	}
}

func (s *Scheduler) removeOldUploads() int {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.uploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("Failed to remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed
}
