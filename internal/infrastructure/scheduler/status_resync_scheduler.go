package scheduler

import (
	"context"
	"sync"
	"time"

	bookingapp "github.com/tourops/backend/internal/application/booking"
	"go.uber.org/zap"
)

// StatusResyncScheduler periodically re-resolves the status of every active
// booking. The sweep catches date-based transitions that no mutation
// triggers, such as tour dates crossing into the ops calendar's today, and
// re-drives any post-commit hook that failed earlier.
type StatusResyncScheduler struct {
	service   *bookingapp.StatusService
	logger    *zap.Logger
	config    StatusResyncSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// StatusResyncSchedulerConfig holds configuration for the resync scheduler
type StatusResyncSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval between sweeps
	Interval time.Duration

	// JobTimeout is the maximum time for a single sweep
	JobTimeout time.Duration
}

// DefaultStatusResyncSchedulerConfig returns default configuration
func DefaultStatusResyncSchedulerConfig() StatusResyncSchedulerConfig {
	return StatusResyncSchedulerConfig{
		Enabled:    true,
		Interval:   15 * time.Minute,
		JobTimeout: 10 * time.Minute,
	}
}

// NewStatusResyncScheduler creates a new status resync scheduler
func NewStatusResyncScheduler(
	service *bookingapp.StatusService,
	logger *zap.Logger,
	config StatusResyncSchedulerConfig,
) *StatusResyncScheduler {
	return &StatusResyncScheduler{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// Start starts the sweep loop
func (s *StatusResyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("status resync scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("status resync scheduler started",
		zap.Duration("interval", s.config.Interval),
	)
	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep
func (s *StatusResyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("status resync scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *StatusResyncScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *StatusResyncScheduler) sweep(ctx context.Context) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.ResyncAll(jobCtx)
	if err != nil {
		s.logger.Error("status resync sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("status resync sweep completed",
		zap.Int("checked", result.Checked),
		zap.Int("updated", result.Updated),
		zap.Duration("duration", time.Since(start)),
	)
}
