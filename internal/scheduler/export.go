package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/bookmarks-export/internal/services"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Runner performs a single export. *services.ExportService implements it.
type Runner interface {
	Run(ctx context.Context, req services.ExportRequest) (services.ExportResult, error)
}

// RunStatus describes the outcome of the latest export.
type RunStatus struct {
	Status     string // success, empty or failed
	Message    string
	FinishedAt time.Time
	Result     services.ExportResult
}

const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusFailed  = "failed"
)

// ExportScheduler re-runs a full export on a cron schedule.
type ExportScheduler struct {
	runner   Runner
	request  services.ExportRequest
	schedule string
	logger   *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	last      *RunStatus
	runMu     sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewExportScheduler validates schedule and returns a stopped scheduler.
func NewExportScheduler(runner Runner, request services.ExportRequest, schedule string, logger *zap.Logger) (*ExportScheduler, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	return &ExportScheduler{
		runner:   runner,
		request:  request,
		schedule: schedule,
		logger:   logger,
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
		),
	}, nil
}

// Start registers the export job and starts the cron loop. The scheduler
// stops by itself once ctx is cancelled.
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunNow(s.ctx)
	})
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to schedule export job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("export scheduler started",
		zap.String("schedule", s.schedule),
		zap.String("description", Describe(s.schedule)),
		zap.Time("next_run", s.nextRunLocked()))

	go func(ctx context.Context) {
		<-ctx.Done()
		s.stop(ctx)
	}(s.ctx)

	return nil
}

// Stop cancels a running export, waits for it to return and stops the
// cron loop.
func (s *ExportScheduler) Stop() {
	s.stop(nil)
}

// stop only acts when owner is nil or still the active run context, so a
// stale cancellation watcher cannot stop a restarted scheduler.
func (s *ExportScheduler) stop(owner context.Context) {
	s.mu.Lock()
	if !s.isRunning || (owner != nil && owner != s.ctx) {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cancel()
	s.cron.Remove(s.entryID)
	stopped := s.cron.Stop()
	s.mu.Unlock()

	<-stopped.Done()
	s.logger.Info("export scheduler stopped")
}

// RunNow runs one export synchronously and records its status. Concurrent
// calls are serialised.
func (s *ExportScheduler) RunNow(ctx context.Context) RunStatus {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.logger.Info("export started", zap.String("format", s.request.Format), zap.String("output_dir", s.request.OutputDir))
	startTime := time.Now()

	result, err := s.runner.Run(ctx, s.request)
	status := RunStatus{FinishedAt: time.Now(), Result: result}

	switch {
	case errors.Is(err, services.ErrNoAnnotations):
		status.Status = StatusEmpty
		status.Message = "No matching annotations, nothing written"
		s.logger.Info("export skipped", zap.String("reason", status.Message))
	case err != nil:
		status.Status = StatusFailed
		status.Message = err.Error()
		s.logger.Error("export failed", zap.Error(err))
	default:
		status.Status = StatusSuccess
		status.Message = fmt.Sprintf("Exported %d annotations from %d books in %v",
			result.AnnotationsExported, result.BooksExported, time.Since(startTime).Round(time.Millisecond))
		s.logger.Info("export finished",
			zap.Int("books", result.BooksExported),
			zap.Int("annotations", result.AnnotationsExported),
			zap.Strings("files", result.Files))
	}

	s.mu.Lock()
	s.last = &status
	s.mu.Unlock()

	return status
}

func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastRun returns the status of the most recent export, or nil.
func (s *ExportScheduler) LastRun() *RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	status := *s.last
	return &status
}

// NextRun returns when the next export will start, or nil when stopped.
func (s *ExportScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.nextRunLocked()
	return &next
}

func (s *ExportScheduler) nextRunLocked() time.Time {
	entry := s.cron.Entry(s.entryID)
	if entry.Valid() && !entry.Next.IsZero() {
		return entry.Next
	}
	next, _ := NextRunTime(s.schedule, time.Now())
	return next
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// NextRunTime returns the first activation of schedule after from.
func NextRunTime(schedule string, from time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// Describe returns a human-readable description of common schedules.
func Describe(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}
