package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/rentflow/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RunLock keeps two instances from generating the same date at once.
// Duplicate bills are already impossible because of the unique period index; the lock only saves work.
type RunLock interface {
	// TryAcquire takes the lock for key. acquired is false when someone else holds it.
	// The returned release function must be called once the run finishes.
	TryAcquire(ctx context.Context, key string) (release func(context.Context) error, acquired bool, err error)
}

// Lock acquisition results used by the lock metric
const (
	lockAcquired = "acquired"
	lockHeld     = "held"
	lockError    = "error"
)

// GenerationFailure describes a room that could not be billed during a run
type GenerationFailure struct {
	RoomID uuid.UUID `json:"room_id"`
	Error  string    `json:"error"`
}

// GenerationResult is the outcome of one generation run
type GenerationResult struct {
	RunDate     time.Time
	TotalRooms  int // occupied rooms scanned
	Eligible    int // rooms whose move-in anniversary is the run date
	Created     int
	Skipped     int // a record for the period already existed
	Errors      int
	LockSkipped bool
	Failures    []GenerationFailure
	Duration    time.Duration
}

// ToResponse converts the result into its API representation
func (r *GenerationResult) ToResponse() GenerationResultResponse {
	return GenerationResultResponse{
		RunDate:     formatDate(r.RunDate),
		TotalRooms:  r.TotalRooms,
		Eligible:    r.Eligible,
		Created:     r.Created,
		Skipped:     r.Skipped,
		Errors:      r.Errors,
		LockSkipped: r.LockSkipped,
		Failures:    r.Failures,
	}
}

// GenerationServiceConfig contains configuration for GenerationService
type GenerationServiceConfig struct {
	Rates         billing.RateDefaults
	DefaultDueDay int
}

// DefaultGenerationServiceConfig returns default configuration
func DefaultGenerationServiceConfig() GenerationServiceConfig {
	return GenerationServiceConfig{
		Rates:         billing.DefaultRateDefaults(),
		DefaultDueDay: billing.DefaultPaymentDueDay,
	}
}

// GenerationService creates the bills of rooms whose move-in anniversary falls on a given day
type GenerationService struct {
	paymentRepo billing.PaymentRecordRepository
	roomRepo    billing.RoomRepository
	calculator  *billing.FeeCalculator
	resolver    billing.PeriodResolver
	lock        RunLock
	metrics     *telemetry.BillingMetrics
	logger      *zap.Logger
}

// GenerationServiceOption is a functional option for configuring GenerationService
type GenerationServiceOption func(*GenerationService)

// WithRunLock guards runs with the given lock
func WithRunLock(lock RunLock) GenerationServiceOption {
	return func(s *GenerationService) {
		s.lock = lock
	}
}

// WithGenerationMetrics records runs on the given collectors
func WithGenerationMetrics(m *telemetry.BillingMetrics) GenerationServiceOption {
	return func(s *GenerationService) {
		s.metrics = m
	}
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(
	paymentRepo billing.PaymentRecordRepository,
	roomRepo billing.RoomRepository,
	logger *zap.Logger,
	config GenerationServiceConfig,
	opts ...GenerationServiceOption,
) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &GenerationService{
		paymentRepo: paymentRepo,
		roomRepo:    roomRepo,
		calculator:  billing.NewFeeCalculator(config.Rates),
		resolver:    billing.NewPeriodResolver(config.DefaultDueDay),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateForDate bills every occupied room whose move-in anniversary is today.
// A failing room is counted and logged; the run continues with the next one.
// Running the same date twice creates nothing new: the second run reports the rooms as skipped.
func (s *GenerationService) GenerateForDate(ctx context.Context, today time.Time) (*GenerationResult, error) {
	return s.generate(ctx, uuid.Nil, today)
}

// GenerateForOwner runs generation for one owner's rooms only. It backs the manual trigger.
func (s *GenerationService) GenerateForOwner(ctx context.Context, ownerID uuid.UUID, today time.Time) (*GenerationResult, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("Owner ID cannot be empty")
	}
	return s.generate(ctx, ownerID, today)
}

func (s *GenerationService) generate(ctx context.Context, ownerID uuid.UUID, today time.Time) (*GenerationResult, error) {
	runDate := billing.NormalizeDate(today)
	started := time.Now()
	result := &GenerationResult{RunDate: runDate}

	ctx, span := telemetry.StartServiceSpan(ctx, "payment_generation", "generate_for_date",
		telemetry.SpanAttrRunDate, formatDate(runDate))
	defer span.End()

	logger := s.logger.With(zap.String("run_date", formatDate(runDate)))
	if ownerID != uuid.Nil {
		logger = logger.With(zap.String("owner_id", ownerID.String()))
		telemetry.SetAttributes(span, telemetry.SpanAttrOwnerID, ownerID.String())
	}

	release, acquired := s.acquire(ctx, lockKey(runDate, ownerID), logger)
	if !acquired {
		result.LockSkipped = true
		s.metrics.ObserveRunResult(telemetry.RunResultLockSkipped)
		telemetry.SetAttributes(span, telemetry.SpanAttrLockSkipped, true)
		logger.Info("Payment generation skipped, another run holds the lock")
		return result, nil
	}
	defer release()

	rooms, err := s.roomRepo.FindOccupied(ctx)
	if err != nil {
		s.metrics.ObserveRunResult(telemetry.RunResultFailed)
		telemetry.RecordError(span, err)
		logger.Error("Failed to list occupied rooms", zap.Error(err))
		return nil, err
	}

	for _, room := range rooms {
		if ownerID != uuid.Nil && room.OwnerID != ownerID {
			continue
		}
		result.TotalRooms++

		if !room.CurrentTenant.HasMoveInDate() {
			logger.Warn("Occupied room has no tenant move-in date, skipping",
				zap.String("room_id", room.ID.String()))
			continue
		}
		if !room.IsAnniversary(runDate) {
			continue
		}
		result.Eligible++

		if err := ctx.Err(); err != nil {
			s.finish(result, started, span, logger)
			return result, err
		}

		created, _, err := s.createPaymentRecord(ctx, room, runDate)
		switch {
		case err != nil:
			result.Errors++
			result.Failures = append(result.Failures, GenerationFailure{RoomID: room.ID, Error: err.Error()})
			logger.Error("Failed to generate payment record",
				zap.String("room_id", room.ID.String()),
				zap.Error(err))
		case created:
			result.Created++
		default:
			result.Skipped++
		}
	}

	s.finish(result, started, span, logger)
	return result, nil
}

func (s *GenerationService) finish(result *GenerationResult, started time.Time, span trace.Span, logger *zap.Logger) {
	result.Duration = time.Since(started)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrRoomsTotal, result.TotalRooms,
		telemetry.SpanAttrCreated, result.Created,
		telemetry.SpanAttrSkipped, result.Skipped,
		telemetry.SpanAttrFailed, result.Errors)
	s.metrics.ObserveGeneration(result.Created, result.Skipped, result.Errors, result.Duration.Seconds())
	logger.Info("Payment generation completed",
		zap.Int("total_rooms", result.TotalRooms),
		zap.Int("eligible", result.Eligible),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors),
		zap.Duration("duration", result.Duration))
}

// CreateForRoom bills one room for the period covering today, whether or not today is its anniversary.
// It returns ALREADY_EXISTS when the period is already billed.
func (s *GenerationService) CreateForRoom(ctx context.Context, ownerID, roomID uuid.UUID, today time.Time) (*PaymentResponse, error) {
	room, err := s.roomRepo.FindByIDForOwner(ctx, ownerID, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsOccupied() || !room.CurrentTenant.HasMoveInDate() {
		return nil, shared.NewInvalidStateError("Room must be occupied by a tenant with a move-in date to be billed")
	}

	created, record, err := s.createPaymentRecord(ctx, room, billing.NormalizeDate(today))
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("A payment record already exists for this room starting %s", formatDate(record.BillingPeriodStart)))
	}
	resp := ToPaymentResponse(record, time.Now())
	return &resp, nil
}

// createPaymentRecord inserts the initial bill of the period covering today.
// It reports false when the period was already billed.
func (s *GenerationService) createPaymentRecord(ctx context.Context, room *billing.RoomConfiguration, today time.Time) (bool, *billing.PaymentRecord, error) {
	tenant := room.CurrentTenant
	period := s.resolver.Resolve(tenant.MoveInDate, today, tenant.PaymentDueDay)

	record, err := billing.NewGeneratedPaymentRecord(room, period, s.calculator.InitialCharges(room))
	if err != nil {
		return false, nil, err
	}

	inserted, err := s.paymentRepo.InsertIfAbsent(ctx, record)
	if err != nil {
		return false, nil, err
	}
	if inserted {
		s.logger.Debug("Payment record generated",
			zap.String("payment_id", record.ID.String()),
			zap.String("room_id", room.ID.String()),
			zap.String("billing_period_start", formatDate(period.Start)),
			zap.String("due_date", formatDate(period.DueDate)))
	}
	return inserted, record, nil
}

// acquire takes the run lock. A lock backend failure does not stop the run.
func (s *GenerationService) acquire(ctx context.Context, key string, logger *zap.Logger) (func(), bool) {
	noop := func() {}
	if s.lock == nil {
		return noop, true
	}

	release, acquired, err := s.lock.TryAcquire(ctx, key)
	switch {
	case err != nil:
		s.metrics.ObserveLock(lockError)
		logger.Warn("Run lock unavailable, generating without it", zap.Error(err))
		return noop, true
	case !acquired:
		s.metrics.ObserveLock(lockHeld)
		return noop, false
	}

	s.metrics.ObserveLock(lockAcquired)
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			logger.Warn("Failed to release run lock", zap.String("key", key), zap.Error(err))
		}
	}, true
}

func lockKey(runDate time.Time, ownerID uuid.UUID) string {
	key := "payment-generation:" + formatDate(runDate)
	if ownerID != uuid.Nil {
		key += ":" + ownerID.String()
	}
	return key
}
