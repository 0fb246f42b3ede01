package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rentflow/backend/internal/application/payment"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Generator runs payment generation for one calendar day
type Generator interface {
	GenerateForDate(ctx context.Context, today time.Time) (*payment.GenerationResult, error)
}

// GenerationSchedulerConfig holds configuration for the daily generation trigger
type GenerationSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// CronSpec is a standard 5-field cron expression
	CronSpec string

	// Location is the timezone the cron expression and the run date are evaluated in
	Location *time.Location

	// RunTimeout is the maximum time for one generation run
	RunTimeout time.Duration
}

// DefaultGenerationSchedulerConfig returns default configuration
func DefaultGenerationSchedulerConfig() GenerationSchedulerConfig {
	return GenerationSchedulerConfig{
		Enabled:    true,
		CronSpec:   "0 0 * * *", // midnight
		Location:   time.UTC,
		RunTimeout: 30 * time.Minute,
	}
}

// GenerationScheduler fires payment generation once a day
type GenerationScheduler struct {
	generator Generator
	logger    *zap.Logger
	config    GenerationSchedulerConfig
	schedule  cron.Schedule
	nowFunc   func() time.Time

	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewGenerationScheduler creates a new generation scheduler. The cron expression is validated here.
func NewGenerationScheduler(
	generator Generator,
	logger *zap.Logger,
	config GenerationSchedulerConfig,
) (*GenerationScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.RunTimeout <= 0 {
		return nil, fmt.Errorf("%w: run timeout must be positive", ErrInvalidConfig)
	}
	schedule, err := cron.ParseStandard(config.CronSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: cron spec %q: %v", ErrInvalidConfig, config.CronSpec, err)
	}

	return &GenerationScheduler{
		generator: generator,
		logger:    logger,
		config:    config,
		schedule:  schedule,
		nowFunc:   time.Now,
	}, nil
}

// Start registers the daily job and starts the cron runner
func (s *GenerationScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	if !s.config.Enabled {
		s.logger.Info("Payment generation scheduler is disabled")
		return nil
	}

	cronLogger := &zapCronLogger{logger: s.logger}
	s.cron = cron.New(
		cron.WithLocation(s.config.Location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		s.execute(s.ctx)
	}))
	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Payment generation scheduler started",
		zap.String("cron_spec", s.config.CronSpec),
		zap.String("timezone", s.config.Location.String()),
		zap.Time("next_run", s.schedule.Next(s.nowFunc().In(s.config.Location))),
	)
	return nil
}

// Stop stops the cron runner and waits for in-flight runs
func (s *GenerationScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cronDone := s.cron.Stop()
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Payment generation scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Payment generation scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerImmediate starts a generation run for today outside the schedule
func (s *GenerationScheduler) TriggerImmediate(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate payment generation")

	go func() {
		defer s.wg.Done()
		s.execute(ctx)
	}()
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *GenerationScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Today is the run date in the scheduler's timezone
func (s *GenerationScheduler) Today() time.Time {
	return billing.NormalizeDate(s.nowFunc().In(s.config.Location))
}

func (s *GenerationScheduler) execute(ctx context.Context) {
	today := s.Today()
	logger := s.logger.With(zap.String("run_date", today.Format("2006-01-02")))
	logger.Info("Starting scheduled payment generation")

	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	started := time.Now()
	result, err := s.generator.GenerateForDate(runCtx, today)
	duration := time.Since(started)
	if err != nil {
		logger.Error("Scheduled payment generation failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	logger.Info("Scheduled payment generation completed",
		zap.Duration("duration", duration),
		zap.Bool("lock_skipped", result.LockSkipped),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors),
	)
}

// zapCronLogger adapts zap to cron.Logger
type zapCronLogger struct {
	logger *zap.Logger
}

func (l *zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (l *zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
