package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okian/edgefinder/pkg/logger"
	"github.com/okian/edgefinder/pkg/metrics"
)

// CSVExporter writes an export as CSV.
type CSVExporter interface {
	ExportCSV(ctx context.Context, w io.Writer) (int, error)
}

// Scheduler periodically writes the export into a directory.
type Scheduler struct {
	mu       sync.Mutex
	exporter CSVExporter
	spec     string
	dir      string
	cron     *cron.Cron
	running  bool
	now      func() time.Time
	logger   logger.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the scheduler logger.
func WithSchedulerLogger(l logger.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSchedulerClock sets the time source used to name export files.
func WithSchedulerClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScheduler creates a scheduler running exporter on the cron spec and
// writing files into dir.
func NewScheduler(exporter CSVExporter, spec, dir string, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		exporter: exporter,
		spec:     spec,
		dir:      dir,
		cron:     cron.New(),
		now:      time.Now,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the job and starts the cron runner. Runs use ctx, so
// cancelling it aborts an export in flight.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, func() { _, _ = s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule export %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.running = true
	s.logger.Info(ctx, "export scheduler started",
		logger.String("schedule", s.spec),
		logger.String("dir", s.dir),
	)
	return nil
}

// Stop stops the cron runner and waits for a running export to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info(context.Background(), "export scheduler stopped")
}

// RunOnce writes one export file and returns its path. The file appears
// under its final name only once fully written.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	path, rows, err := s.write(ctx)
	if err != nil {
		metrics.RecordScheduledExport("error")
		s.logger.Error(ctx, "scheduled export failed", logger.Error(err))
		return "", err
	}
	metrics.RecordScheduledExport("ok")
	s.logger.Info(ctx, "scheduled export written",
		logger.String("path", path),
		logger.Int("rows", rows),
	)
	return path, nil
}

func (s *Scheduler) write(ctx context.Context) (string, int, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, err
	}
	tmp, err := os.CreateTemp(s.dir, ".export-*.csv")
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())

	rows, err := s.exporter.ExportCSV(ctx, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, err
	}

	path := filepath.Join(s.dir, exportName(s.now()))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", 0, err
	}
	return path, rows, nil
}

// exportName stamps ExportFilename with the UTC time of the run.
func exportName(t time.Time) string {
	base := strings.TrimSuffix(ExportFilename, ".csv")
	return base + "_" + t.UTC().Format("20060102T150405Z") + ".csv"
}
