package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/rentflow/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultHistoryLimit is the number of bills returned by room history when the caller gives no limit
const DefaultHistoryLimit = 12

// PaymentServiceConfig contains configuration for PaymentService
type PaymentServiceConfig struct {
	Rates        billing.RateDefaults
	HistoryLimit int
}

// DefaultPaymentServiceConfig returns default configuration
func DefaultPaymentServiceConfig() PaymentServiceConfig {
	return PaymentServiceConfig{
		Rates:        billing.DefaultRateDefaults(),
		HistoryLimit: DefaultHistoryLimit,
	}
}

// PaymentService handles payment record operations of an owner
type PaymentService struct {
	paymentRepo  billing.PaymentRecordRepository
	roomRepo     billing.RoomRepository
	propertyRepo billing.PropertyRepository
	calculator   *billing.FeeCalculator
	metrics      *telemetry.BillingMetrics
	logger       *zap.Logger
	historyLimit int
	now          func() time.Time
}

// PaymentServiceOption is a functional option for configuring PaymentService
type PaymentServiceOption func(*PaymentService)

// WithClock overrides the time source used for status derivation
func WithClock(now func() time.Time) PaymentServiceOption {
	return func(s *PaymentService) {
		s.now = now
	}
}

// WithPaymentMetrics records payments on the given collectors
func WithPaymentMetrics(m *telemetry.BillingMetrics) PaymentServiceOption {
	return func(s *PaymentService) {
		s.metrics = m
	}
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRecordRepository,
	roomRepo billing.RoomRepository,
	propertyRepo billing.PropertyRepository,
	logger *zap.Logger,
	config PaymentServiceConfig,
	opts ...PaymentServiceOption,
) *PaymentService {
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = DefaultHistoryLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &PaymentService{
		paymentRepo:  paymentRepo,
		roomRepo:     roomRepo,
		propertyRepo: propertyRepo,
		calculator:   billing.NewFeeCalculator(config.Rates),
		logger:       logger,
		historyLimit: config.HistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a payment record directly. Only one record may exist per room and period start.
func (s *PaymentService) Create(ctx context.Context, ownerID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	room, err := s.roomRepo.FindByIDForOwner(ctx, ownerID, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.PropertyID != req.PropertyID {
		return nil, shared.NewValidationError("Room does not belong to the given property")
	}

	tenantID := req.TenantID
	if tenantID == nil && room.CurrentTenant != nil {
		tenantID = room.CurrentTenant.TenantID
	}

	record, err := billing.NewPaymentRecord(billing.NewPaymentRecordParams{
		OwnerID:    ownerID,
		RoomID:     room.ID,
		PropertyID: room.PropertyID,
		TenantID:   tenantID,
		Period: billing.BillingPeriod{
			Start:   req.BillingPeriodStart,
			End:     req.BillingPeriodEnd,
			DueDate: req.DueDate,
			Month:   req.BillingMonth,
			Year:    req.BillingYear,
		},
		Charges: billing.ChargeBreakdown{
			RentalAmount:      req.RentalAmount,
			ElectricityAmount: req.ElectricityAmount,
			WaterAmount:       req.WaterAmount,
			GarbageAmount:     req.GarbageAmount,
			ParkingAmount:     req.ParkingAmount,
			Adjustments:       req.Adjustments,
		},
		ElectricityUsage: req.ElectricityUsage,
		WaterUsage:       req.WaterUsage,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, err
	}

	inserted, err := s.paymentRepo.InsertIfAbsent(ctx, record)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("A payment record already exists for this room starting %s", formatDate(record.BillingPeriodStart)))
	}

	s.logger.Info("Payment record created",
		zap.String("payment_id", record.ID.String()),
		zap.String("room_id", record.RoomID.String()),
		zap.String("billing_period_start", formatDate(record.BillingPeriodStart)),
		zap.String("total_amount", record.TotalAmount.String()))

	resp := ToPaymentResponse(record, s.now())
	return &resp, nil
}

// List returns a page of the owner's payment records and the total matching count.
// Status filters match the derived status.
func (s *PaymentService) List(ctx context.Context, ownerID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	now := s.now()

	domainFilter := billing.DefaultPaymentRecordFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.PropertyID = filter.PropertyID
	domainFilter.RoomID = filter.RoomID
	domainFilter.Statuses = filter.Statuses
	domainFilter.DueFrom = filter.DueFrom
	domainFilter.DueTo = filter.DueTo
	domainFilter.BillingMonth = filter.BillingMonth
	domainFilter.BillingYear = filter.BillingYear
	domainFilter.AsOf = now

	if m := filter.BillingMonth; m != nil && (*m < 1 || *m > 12) {
		return nil, 0, shared.NewValidationError("Billing month must be between 1 and 12")
	}
	if filter.DueFrom != nil && filter.DueTo != nil && filter.DueTo.Before(*filter.DueFrom) {
		return nil, 0, shared.NewValidationError("Due date range end cannot precede its start")
	}

	records, err := s.paymentRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPaymentResponses(records, now), total, nil
}

// GetByID returns one payment record with its derived status
func (s *PaymentService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*PaymentResponse, error) {
	record, err := s.paymentRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(record, s.now())
	return &resp, nil
}

// RecordUsage attaches metered usage to the latest bill of a room and recomputes its charges
func (s *PaymentService) RecordUsage(ctx context.Context, ownerID, roomID uuid.UUID, in UsageInput) (*PaymentResponse, error) {
	if err := in.usage().Validate(); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByIDForOwner(ctx, ownerID, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsBillable() {
		return nil, shared.NewInvalidStateError("Room is not eligible for usage recording: it must be occupied with a tenant assigned")
	}

	record, err := s.paymentRepo.FindLatestForRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Payment record for this room")
		}
		return nil, err
	}
	if !record.IsOwnedBy(ownerID) {
		return nil, shared.NewNotFoundError("Payment record for this room")
	}

	return s.applyUsage(ctx, room, record, in)
}

// UpdateUsage recomputes the charges of any unpaid bill from new usage
func (s *PaymentService) UpdateUsage(ctx context.Context, ownerID, paymentID uuid.UUID, in UsageInput) (*PaymentResponse, error) {
	if err := in.usage().Validate(); err != nil {
		return nil, err
	}

	record, err := s.paymentRepo.FindByIDForOwner(ctx, ownerID, paymentID)
	if err != nil {
		return nil, err
	}
	if record.IsPaid() {
		return nil, shared.NewInvalidStateError("Cannot update usage of a paid bill")
	}

	room, err := s.roomRepo.FindByIDForOwner(ctx, ownerID, record.RoomID)
	if err != nil {
		return nil, err
	}
	return s.applyUsage(ctx, room, record, in)
}

func (s *PaymentService) applyUsage(ctx context.Context, room *billing.RoomConfiguration, record *billing.PaymentRecord, in UsageInput) (*PaymentResponse, error) {
	if record.IsPaid() {
		return nil, shared.NewInvalidStateError("Cannot update usage of a paid bill")
	}

	usage := in.usage()
	charges, err := s.calculator.Calculate(room, usage)
	if err != nil {
		return nil, err
	}
	if err := record.ApplyUsage(charges, usage, in.readings(), in.Notes); err != nil {
		return nil, err
	}

	now := s.now()
	record.RefreshStatus(now)
	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Usage recorded",
		zap.String("payment_id", record.ID.String()),
		zap.String("room_id", record.RoomID.String()),
		zap.String("electricity_usage", usage.ElectricityUsage.String()),
		zap.String("water_usage", usage.WaterUsage.String()),
		zap.String("total_amount", record.TotalAmount.String()))

	resp := ToPaymentResponse(record, now)
	return &resp, nil
}

// MarkPaid records a payment. It settles the bill when the amount covers the total.
func (s *PaymentService) MarkPaid(ctx context.Context, ownerID, id uuid.UUID, req MarkPaidRequest) (*PaymentResponse, error) {
	record, err := s.paymentRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, record, req)
}

func (s *PaymentService) markPaid(ctx context.Context, record *billing.PaymentRecord, req MarkPaidRequest) (*PaymentResponse, error) {
	now := s.now()
	paidDate := now
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}
	if err := record.MarkPaid(req.PaidAmount, paidDate, req.PaymentMethod, req.Notes); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.metrics.ObservePayment(record.Status.String())
	s.logger.Info("Payment recorded",
		zap.String("payment_id", record.ID.String()),
		zap.String("paid_amount", record.PaidAmount.String()),
		zap.String("status", record.Status.String()))

	resp := ToPaymentResponse(record, now)
	return &resp, nil
}

// UpdateStatus marks a bill paid or reverts it to unpaid.
// Other statuses are derived and cannot be set.
func (s *PaymentService) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, req UpdateStatusRequest) (*PaymentResponse, error) {
	if req.Status != billing.PaymentStatusPaid && req.Status != billing.PaymentStatusUnpaid {
		return nil, shared.NewValidationError(fmt.Sprintf("Status can only be set to %s or %s", billing.PaymentStatusPaid, billing.PaymentStatusUnpaid))
	}

	record, err := s.paymentRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Status == billing.PaymentStatusPaid {
		amount := record.TotalAmount
		if req.PaidAmount != nil {
			amount = *req.PaidAmount
		}
		return s.markPaid(ctx, record, MarkPaidRequest{
			PaidAmount:    amount,
			PaidDate:      req.PaidDate,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		})
	}

	record.ResetToUnpaid(req.Notes)
	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info("Payment reset to unpaid", zap.String("payment_id", record.ID.String()))

	resp := ToPaymentResponse(record, s.now())
	return &resp, nil
}

// UpdateDueDate moves the due date of a bill
func (s *PaymentService) UpdateDueDate(ctx context.Context, ownerID, id uuid.UUID, dueDate time.Time) (*PaymentResponse, error) {
	record, err := s.paymentRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := record.SetDueDate(dueDate); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(record, s.now())
	return &resp, nil
}

// Overdue lists the property's bills that are past due and not paid, oldest due date first
func (s *PaymentService) Overdue(ctx context.Context, ownerID, propertyID uuid.UUID) ([]PaymentResponse, error) {
	if err := s.ensureProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}
	now := s.now()
	records, err := s.paymentRepo.FindOverdueForProperty(ctx, ownerID, propertyID, now)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(records, now), nil
}

// History returns the latest bills of a room, newest period first. A non-positive limit uses the configured default.
func (s *PaymentService) History(ctx context.Context, ownerID, roomID uuid.UUID, limit int) ([]PaymentResponse, error) {
	if _, err := s.roomRepo.FindByIDForOwner(ctx, ownerID, roomID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	records, err := s.paymentRepo.FindHistoryForRoom(ctx, ownerID, roomID, limit)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(records, s.now()), nil
}

// CalculateFees previews the charges of a room for the given usage without persisting anything
func (s *PaymentService) CalculateFees(ctx context.Context, ownerID uuid.UUID, req CalculateFeesRequest) (*FeePreviewResponse, error) {
	room, err := s.roomRepo.FindByIDForOwner(ctx, ownerID, req.RoomID)
	if err != nil {
		return nil, err
	}
	charges, err := s.calculator.Calculate(room, req.Usage.usage())
	if err != nil {
		return nil, err
	}

	rates := s.calculator.Rates()
	electricity, water := room.ElectricityUnitPrice, room.WaterUnitPrice
	if electricity.IsZero() {
		electricity = rates.ElectricityUnitPrice
	}
	if water.IsZero() {
		water = rates.WaterUnitPrice
	}

	return &FeePreviewResponse{
		RoomID:               room.ID,
		ElectricityUnitPrice: electricity,
		WaterUnitPrice:       water,
		Charges:              charges,
	}, nil
}

// Statistics summarizes a property's bills, optionally bounded by due date.
// Counts use the derived status.
func (s *PaymentService) Statistics(ctx context.Context, ownerID uuid.UUID, filter StatisticsFilter) (*StatisticsResponse, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, shared.NewValidationError("End date cannot precede start date")
	}
	if err := s.ensureProperty(ctx, ownerID, filter.PropertyID); err != nil {
		return nil, err
	}

	records, err := s.paymentRepo.FindForProperty(ctx, ownerID, filter.PropertyID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	stats := billing.Summarize(records, s.now())

	resp := &StatisticsResponse{
		PropertyID:        filter.PropertyID,
		TotalRecords:      stats.TotalRecords,
		TotalRevenue:      stats.TotalRevenue,
		PaidCount:         stats.PaidCount,
		UnpaidCount:       stats.UnpaidCount,
		OverdueCount:      stats.OverdueCount,
		LatePaymentRate:   stats.LatePaymentRate,
		OutstandingAmount: stats.OutstandingAmount,
	}
	if filter.StartDate != nil {
		resp.StartDate = formatDate(*filter.StartDate)
	}
	if filter.EndDate != nil {
		resp.EndDate = formatDate(*filter.EndDate)
	}
	return resp, nil
}

// RoomPaymentStatus summarizes the latest bill of a room, or reports no_payment
func (s *PaymentService) RoomPaymentStatus(ctx context.Context, ownerID, roomID uuid.UUID) (*RoomPaymentStatusResponse, error) {
	if _, err := s.roomRepo.FindByIDForOwner(ctx, ownerID, roomID); err != nil {
		return nil, err
	}

	record, err := s.paymentRepo.FindLatestForRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &RoomPaymentStatusResponse{RoomID: roomID, Status: RoomPaymentStatusNone}, nil
		}
		return nil, err
	}

	total := record.TotalAmount
	paid := record.PaidAmount
	return &RoomPaymentStatusResponse{
		RoomID:       roomID,
		Status:       record.EffectiveStatus(s.now()).String(),
		PaymentID:    &record.ID,
		BillingMonth: record.BillingMonth,
		BillingYear:  record.BillingYear,
		DueDate:      formatDate(record.DueDate),
		TotalAmount:  &total,
		PaidAmount:   &paid,
	}, nil
}

func (s *PaymentService) ensureProperty(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	if propertyID == uuid.Nil {
		return shared.NewValidationError("Property ID is required")
	}
	ok, err := s.propertyRepo.ExistsForOwner(ctx, ownerID, propertyID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewNotFoundError("Property")
	}
	return nil
}
