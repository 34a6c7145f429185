// Package scheduler removes temp files left behind by interrupted requests.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	SweepSpec             = "*/10 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
)

type Scheduler struct {
	ctx     context.Context
	cron    *cron.Cron
	dir     string
	pattern string
	ttl     time.Duration
	log     *slog.Logger
}

// New sweeps files in dir whose names match pattern (a temp file pattern
// where '*' is the random part) once they are older than ttl.
func New(ctx context.Context, dir string, pattern string, ttl time.Duration, log *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:     ctx,
		cron:    c,
		dir:     dir,
		pattern: pattern,
		ttl:     ttl,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(SweepSpec, s.sweep); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweep() {
	if err := s.ctx.Err(); err != nil {
		s.log.InfoContext(s.ctx, "Scheduler context is done",
			"error", err)
		return
	}

	removed, err := s.Sweep(time.Now())
	if err != nil {
		s.log.ErrorContext(s.ctx, "Failed to sweep temp files",
			"error", err,
			"dir", s.dir,
			"removed", removed)
		return
	}

	if removed > 0 {
		s.log.InfoContext(s.ctx, "Temp files are swept",
			"dir", s.dir,
			"removed", removed)
	}
}

// Sweep removes matching regular files modified before now minus ttl and
// returns how many were removed.
func (s *Scheduler) Sweep(now time.Time) (int, error) {
	prefix, suffix, _ := strings.Cut(s.pattern, "*")

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read dir: %w", err)
	}

	cutoff := now.Add(-s.ttl)
	removed := 0
	var errs []error

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			if !errors.Is(infoErr, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("stat %s: %w", name, infoErr))
			}
			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}

		if removeErr := os.Remove(filepath.Join(s.dir, name)); removeErr != nil {
			if !errors.Is(removeErr, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("remove %s: %w", name, removeErr))
			}
			continue
		}

		removed++
	}

	return removed, errors.Join(errs...)
}
