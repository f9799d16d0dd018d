// Package jobs contains the background workers that run alongside the HTTP
// server.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// EventCompleter marks past-due events completed in bulk.
type EventCompleter interface {
	CompletePastDue(ctx context.Context, now time.Time) (int64, error)
}

// CompletionSweeper periodically flips the completed flag on events whose
// date has passed. Reads also complete lazily, so the sweeper is a catch-up
// for events nobody is reading, not a correctness requirement.
type CompletionSweeper struct {
	events   EventCompleter
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewCompletionSweeper constructs a CompletionSweeper.
func NewCompletionSweeper(events EventCompleter, interval time.Duration, logger *slog.Logger) *CompletionSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CompletionSweeper{
		events:   events,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweeper loop.
func (s *CompletionSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	s.logger.Info("completion sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the sweeper.
func (s *CompletionSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("completion sweeper stopped")
}

func (s *CompletionSweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *CompletionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("completion sweep failed", slog.String("error", err.Error()))
	}
}

// RunOnce runs a single sweep. Exposed for tests and manual triggering.
func (s *CompletionSweeper) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.events.CompletePastDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("events auto-completed", slog.Int64("count", n))
	}
	return n, nil
}
