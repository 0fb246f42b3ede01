package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPaymentRecordRepo is a mock implementation of billing.PaymentRecordRepository
type mockPaymentRecordRepo struct {
	mock.Mock
}

func (m *mockPaymentRecordRepo) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.PaymentRecord, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecordRepo) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter billing.PaymentRecordFilter) ([]*billing.PaymentRecord, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecordRepo) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter billing.PaymentRecordFilter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRecordRepo) FindLatestForRoom(ctx context.Context, roomID uuid.UUID) (*billing.PaymentRecord, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecordRepo) FindByRoomAndPeriodStart(ctx context.Context, roomID uuid.UUID, periodStart time.Time) (*billing.PaymentRecord, error) {
	args := m.Called(ctx, roomID, periodStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecordRepo) FindHistoryForRoom(ctx context.Context, ownerID, roomID uuid.UUID, limit int) ([]*billing.PaymentRecord, error) {
	args := m.Called(ctx, ownerID, roomID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecordRepo) FindOverdueForProperty(ctx context.Context, ownerID, propertyID uuid.UUID, asOf time.Time) ([]*billing.PaymentRecord, error) {
	args := m.Called(ctx, ownerID, propertyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecordRepo) FindForProperty(ctx context.Context, ownerID, propertyID uuid.UUID, dueFrom, dueTo *time.Time) ([]*billing.PaymentRecord, error) {
	args := m.Called(ctx, ownerID, propertyID, dueFrom, dueTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRecordRepo) InsertIfAbsent(ctx context.Context, record *billing.PaymentRecord) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRecordRepo) Save(ctx context.Context, record *billing.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// mockRoomRepo is a mock implementation of billing.RoomRepository
type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.RoomConfiguration, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RoomConfiguration), args.Error(1)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.RoomConfiguration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RoomConfiguration), args.Error(1)
}

func (m *mockRoomRepo) FindOccupied(ctx context.Context) ([]*billing.RoomConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.RoomConfiguration), args.Error(1)
}

// mockPropertyRepo is a mock implementation of billing.PropertyRepository
type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) ExistsForOwner(ctx context.Context, ownerID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, propertyID)
	return args.Bool(0), args.Error(1)
}

// mockRunLock is a mock implementation of RunLock
type mockRunLock struct {
	mock.Mock
	released int
}

func (m *mockRunLock) TryAcquire(ctx context.Context, key string) (func(context.Context) error, bool, error) {
	args := m.Called(ctx, key)
	release := func(context.Context) error {
		m.released++
		return nil
	}
	return release, args.Bool(0), args.Error(1)
}

// ==================== Fixtures ====================

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// scenarioRoom is an occupied room with rent 3,000,000, garbage 50,000 and parking 100,000,
// whose tenant moved in on 2024-01-03 and pays on the 5th.
func scenarioRoom(ownerID uuid.UUID) *billing.RoomConfiguration {
	tenantID := uuid.New()
	return &billing.RoomConfiguration{
		ID:                   uuid.New(),
		OwnerID:              ownerID,
		PropertyID:           uuid.New(),
		RoomCode:             "A101",
		Status:               billing.RoomStatusOccupied,
		RentalPrice:          decimal.NewFromInt(3_000_000),
		ElectricityUnitPrice: decimal.NewFromInt(3500),
		WaterUnitPrice:       decimal.NewFromInt(20000),
		GarbageFee:           decimal.NewFromInt(50_000),
		ParkingFee:           decimal.NewFromInt(100_000),
		CurrentTenant: &billing.TenantAssignment{
			TenantID:      &tenantID,
			Name:          "Nguyen Van A",
			MoveInDate:    day(2024, time.January, 3),
			PaymentDueDay: 5,
		},
	}
}

// generatedRecord is the bill generation produces for room on reference
func generatedRecord(t *testing.T, room *billing.RoomConfiguration, reference time.Time) *billing.PaymentRecord {
	t.Helper()
	period := billing.NewPeriodResolver(5).Resolve(room.CurrentTenant.MoveInDate, reference, room.CurrentTenant.PaymentDueDay)
	charges := billing.NewFeeCalculator(billing.DefaultRateDefaults()).InitialCharges(room)
	record, err := billing.NewGeneratedPaymentRecord(room, period, charges)
	require.NoError(t, err)
	return record
}
