package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/rentflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRecordRepository implements billing.PaymentRecordRepository using GORM
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// FindByIDForOwner finds a payment record by ID for a specific owner
func (r *GormPaymentRecordRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.PaymentRecord, error) {
	var model models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "Payment record")
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds payment records for an owner with filtering and pagination
func (r *GormPaymentRecordRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter billing.PaymentRecordFilter) ([]*billing.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	query := r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}).
		Where("owner_id = ?", ownerID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, translateError(err, "Payment record")
	}
	return toPaymentRecords(recordModels), nil
}

// CountForOwner counts payment records for an owner with the same filters as FindAllForOwner
func (r *GormPaymentRecordRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter billing.PaymentRecordFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}).
		Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err, "Payment record")
	}
	return count, nil
}

// FindLatestForRoom finds the room's record with the highest billing year, then month
func (r *GormPaymentRecordRepository) FindLatestForRoom(ctx context.Context, roomID uuid.UUID) (*billing.PaymentRecord, error) {
	var model models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("billing_year DESC, billing_month DESC, billing_period_start DESC").
		First(&model).Error; err != nil {
		return nil, translateError(err, "Payment record")
	}
	return model.ToDomain(), nil
}

// FindByRoomAndPeriodStart finds the record of a room for a billing period
func (r *GormPaymentRecordRepository) FindByRoomAndPeriodStart(ctx context.Context, roomID uuid.UUID, periodStart time.Time) (*billing.PaymentRecord, error) {
	var model models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND billing_period_start = ?", roomID, billing.NormalizeDate(periodStart)).
		First(&model).Error; err != nil {
		return nil, translateError(err, "Payment record")
	}
	return model.ToDomain(), nil
}

// FindHistoryForRoom returns the latest records of a room, newest billing period first
func (r *GormPaymentRecordRepository) FindHistoryForRoom(ctx context.Context, ownerID, roomID uuid.UUID, limit int) ([]*billing.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	query := r.db.WithContext(ctx).
		Where("owner_id = ? AND room_id = ?", ownerID, roomID).
		Order("billing_year DESC, billing_month DESC, billing_period_start DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, translateError(err, "Payment record")
	}
	return toPaymentRecords(recordModels), nil
}

// FindOverdueForProperty returns unpaid or partial records due before asOf, oldest due date first
func (r *GormPaymentRecordRepository) FindOverdueForProperty(ctx context.Context, ownerID, propertyID uuid.UUID, asOf time.Time) ([]*billing.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND property_id = ?", ownerID, propertyID).
		Where("status <> ? AND due_date < ?", billing.PaymentStatusPaid, asOf.UTC()).
		Order("due_date ASC").
		Find(&recordModels).Error; err != nil {
		return nil, translateError(err, "Payment record")
	}
	return toPaymentRecords(recordModels), nil
}

// FindForProperty returns every record of a property whose due date lies in the optional range
func (r *GormPaymentRecordRepository) FindForProperty(ctx context.Context, ownerID, propertyID uuid.UUID, dueFrom, dueTo *time.Time) ([]*billing.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	query := r.db.WithContext(ctx).
		Where("owner_id = ? AND property_id = ?", ownerID, propertyID)
	if dueFrom != nil {
		query = query.Where("due_date >= ?", billing.NormalizeDate(*dueFrom))
	}
	if dueTo != nil {
		query = query.Where("due_date <= ?", billing.NormalizeDate(*dueTo))
	}

	if err := query.Order("due_date ASC").Find(&recordModels).Error; err != nil {
		return nil, translateError(err, "Payment record")
	}
	return toPaymentRecords(recordModels), nil
}

// InsertIfAbsent inserts the record unless one already exists for the same room and period start.
// The unique index on (room_id, billing_period_start) decides; RowsAffected tells which way it went.
func (r *GormPaymentRecordRepository) InsertIfAbsent(ctx context.Context, record *billing.PaymentRecord) (bool, error) {
	model := models.PaymentRecordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "billing_period_start"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return false, translateError(result.Error, "Payment record")
	}
	return result.RowsAffected > 0, nil
}

// Save updates an existing payment record using the version column for optimistic locking.
// On success the record's version is advanced to the stored value.
func (r *GormPaymentRecordRepository) Save(ctx context.Context, record *billing.PaymentRecord) error {
	expected := record.Version
	model := models.PaymentRecordModelFromDomain(record)
	model.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&models.PaymentRecordModel{}).
		Where("id = ? AND owner_id = ? AND version = ?", record.ID, record.OwnerID, expected).
		Select("*").
		Omit("id", "created_at", "owner_id").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "Payment record")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}).
			Where("id = ? AND owner_id = ?", record.ID, record.OwnerID).
			Count(&count).Error; err != nil {
			return translateError(err, "Payment record")
		}
		if count == 0 {
			return shared.NewNotFoundError("Payment record")
		}
		return shared.NewInvalidStateError("Payment record was modified concurrently, reload and retry")
	}

	record.IncrementVersion()
	return nil
}

func (r *GormPaymentRecordRepository) applyFilter(query *gorm.DB, filter billing.PaymentRecordFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	// id breaks ties so pages stay stable
	query = query.Order(PaymentRecordSortFields.OrderClause(filter.OrderBy, filter.OrderDir, "due_date")).
		Order("id ASC")

	return query
}

func (r *GormPaymentRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter billing.PaymentRecordFilter) *gorm.DB {
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.BillingMonth != nil {
		query = query.Where("billing_month = ?", *filter.BillingMonth)
	}
	if filter.BillingYear != nil {
		query = query.Where("billing_year = ?", *filter.BillingYear)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", billing.NormalizeDate(*filter.DueFrom))
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", billing.NormalizeDate(*filter.DueTo))
	}
	if len(filter.Statuses) > 0 {
		asOf := filter.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}
		if cond, args := derivedStatusCondition(filter.Statuses, asOf.UTC()); cond != "" {
			query = query.Where(cond, args...)
		}
	}
	return query
}

// derivedStatusCondition expresses billing.DeriveStatus in SQL so that status filters
// and pagination agree with the status callers see.
func derivedStatusCondition(statuses []billing.PaymentStatus, asOf time.Time) (string, []any) {
	var parts []string
	var args []any
	seen := make(map[billing.PaymentStatus]bool, len(statuses))

	for _, s := range statuses {
		if seen[s] {
			continue
		}
		seen[s] = true

		switch s {
		case billing.PaymentStatusPaid:
			parts = append(parts, "status = ?")
			args = append(args, billing.PaymentStatusPaid)
		case billing.PaymentStatusOverdue:
			parts = append(parts, "(status <> ? AND due_date < ?)")
			args = append(args, billing.PaymentStatusPaid, asOf)
		case billing.PaymentStatusUnpaid:
			parts = append(parts, "(due_date >= ? AND (status = ? OR (status = ? AND paid_amount <= 0)))")
			args = append(args, asOf, billing.PaymentStatusUnpaid, billing.PaymentStatusOverdue)
		case billing.PaymentStatusPartial:
			parts = append(parts, "(due_date >= ? AND (status = ? OR (status = ? AND paid_amount > 0)))")
			args = append(args, asOf, billing.PaymentStatusPartial, billing.PaymentStatusOverdue)
		}
	}

	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func toPaymentRecords(recordModels []models.PaymentRecordModel) []*billing.PaymentRecord {
	records := make([]*billing.PaymentRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records
}

// translateError maps GORM errors onto the domain error taxonomy
func translateError(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource)
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return shared.NewStoreUnavailableError(err)
}
