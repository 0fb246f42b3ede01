package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
)

// PaymentRecordFilter defines filtering options for payment record queries
type PaymentRecordFilter struct {
	shared.Filter
	PropertyID   *uuid.UUID      // Filter by property
	RoomID       *uuid.UUID      // Filter by room
	Statuses     []PaymentStatus // Matched against the status derived as of AsOf
	DueFrom      *time.Time      // Filter by due date range start (inclusive)
	DueTo        *time.Time      // Filter by due date range end (inclusive)
	BillingMonth *int
	BillingYear  *int
	AsOf         time.Time // Reference time for status derivation; zero means now
}

// DefaultPaymentRecordFilter returns a filter ordered by due date, newest first
func DefaultPaymentRecordFilter() PaymentRecordFilter {
	f := shared.DefaultFilter()
	f.OrderBy = "due_date"
	return PaymentRecordFilter{Filter: f}
}

// PaymentRecordRepository defines the interface for payment record persistence.
// Implementations report persistence failures as STORE_UNAVAILABLE domain errors.
type PaymentRecordRepository interface {
	// FindByIDForOwner finds a payment record by ID for a specific owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*PaymentRecord, error)

	// FindAllForOwner finds payment records for an owner with filtering and pagination
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter PaymentRecordFilter) ([]*PaymentRecord, error)

	// CountForOwner counts payment records for an owner with the same filters as FindAllForOwner
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter PaymentRecordFilter) (int64, error)

	// FindLatestForRoom finds the room's record with the highest billing year, then month
	FindLatestForRoom(ctx context.Context, roomID uuid.UUID) (*PaymentRecord, error)

	// FindByRoomAndPeriodStart finds the record of a room for a billing period
	FindByRoomAndPeriodStart(ctx context.Context, roomID uuid.UUID, periodStart time.Time) (*PaymentRecord, error)

	// FindHistoryForRoom returns the latest records of a room, newest billing period first
	FindHistoryForRoom(ctx context.Context, ownerID, roomID uuid.UUID, limit int) ([]*PaymentRecord, error)

	// FindOverdueForProperty returns unpaid or partial records due before asOf, oldest due date first
	FindOverdueForProperty(ctx context.Context, ownerID, propertyID uuid.UUID, asOf time.Time) ([]*PaymentRecord, error)

	// FindForProperty returns every record of a property whose due date lies in the optional range
	FindForProperty(ctx context.Context, ownerID, propertyID uuid.UUID, dueFrom, dueTo *time.Time) ([]*PaymentRecord, error)

	// InsertIfAbsent inserts the record unless one already exists for the same room and period start.
	// It reports whether the record was inserted.
	InsertIfAbsent(ctx context.Context, record *PaymentRecord) (bool, error)

	// Save updates an existing payment record
	Save(ctx context.Context, record *PaymentRecord) error
}

// RoomRepository reads room configuration owned by the property subsystem
type RoomRepository interface {
	// FindByIDForOwner finds a room by ID for a specific owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*RoomConfiguration, error)

	// FindByID finds a room by ID regardless of owner
	FindByID(ctx context.Context, id uuid.UUID) (*RoomConfiguration, error)

	// FindOccupied returns every occupied room across all owners
	FindOccupied(ctx context.Context) ([]*RoomConfiguration, error)
}

// PropertyRepository answers ownership questions about properties
type PropertyRepository interface {
	// ExistsForOwner reports whether the property exists and belongs to the owner
	ExistsForOwner(ctx context.Context, ownerID, propertyID uuid.UUID) (bool, error)
}
