// Package jobs runs the server's periodic background work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Completer marks ended meetings as completed.
// service.MeetingService satisfies it.
type Completer interface {
	CompleteEnded(ctx context.Context) (int64, error)
}

// Sweeper periodically completes scheduled meetings whose end has passed.
type Sweeper struct {
	cron    *cron.Cron
	meet    Completer
	log     *slog.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSweeper builds a Sweeper running on spec, a standard five-field cron
// expression or a descriptor such as "@every 5m". Overlapping runs are skipped.
func NewSweeper(spec string, meet Completer, log *slog.Logger) (*Sweeper, error) {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sweeper{
		meet:    meet,
		log:     log,
		timeout: time.Minute,
		ctx:     ctx,
		cancel:  cancel,
	}

	cl := cronLogger{log: log}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(s.ctx) }); err != nil {
		cancel()
		return nil, fmt.Errorf("jobs.NewSweeper: schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the schedule in its own goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule, cancels a running sweep, and waits for it to return
// or for ctx to expire.
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce performs a single sweep and logs the outcome.
func (s *Sweeper) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.meet.CompleteEnded(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "meeting sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.log.InfoContext(ctx, "meetings completed", "count", n)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
