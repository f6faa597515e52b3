// Package cleanup implements the opt-in workspace janitor. By default
// runnerd never deletes anything clients put in the working directory;
// operators who accept the tradeoff can enable age-based garbage collection
// of leftover script files and task subdirectories.
package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/runnerhq/runnerd/internal/workdir"
)

// Janitor periodically removes workspace entries older than MaxAge.
type Janitor struct {
	root     *workdir.Root
	maxAge   time.Duration
	interval time.Duration
}

// New creates a janitor for root. maxAge must be positive; interval falls
// back to 8 hours when zero.
func New(root *workdir.Root, maxAge, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 8 * time.Hour
	}
	return &Janitor{root: root, maxAge: maxAge, interval: interval}
}

// Run sweeps on an interval until ctx is cancelled. It sweeps once
// immediately so a restart does not postpone overdue cleanup.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		if n, err := j.Sweep(); err != nil {
			log.Printf("cleanup: sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("cleanup: removed %d stale entries", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep removes top-level workspace entries whose mtime is older than
// MaxAge and returns how many were removed. Age comes from the entry's
// mtime, so a task directory stays alive as long as it is being written to.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.root.Path())
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.root.Path(), e.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Printf("cleanup: remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
