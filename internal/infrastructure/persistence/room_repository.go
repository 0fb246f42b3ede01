package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoomRepository implements billing.RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByIDForOwner finds a room by ID for a specific owner
func (r *GormRoomRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.RoomConfiguration, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "Room")
	}
	return model.ToDomain(), nil
}

// FindByID finds a room by ID regardless of owner
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RoomConfiguration, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Room")
	}
	return model.ToDomain(), nil
}

// FindOccupied returns every occupied room across all owners
func (r *GormRoomRepository) FindOccupied(ctx context.Context) ([]*billing.RoomConfiguration, error) {
	var roomModels []models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", billing.RoomStatusOccupied).
		Order("property_id ASC, room_code ASC").
		Find(&roomModels).Error; err != nil {
		return nil, translateError(err, "Room")
	}

	rooms := make([]*billing.RoomConfiguration, len(roomModels))
	for i := range roomModels {
		rooms[i] = roomModels[i].ToDomain()
	}
	return rooms, nil
}

// GormPropertyRepository implements billing.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// ExistsForOwner reports whether the property exists and belongs to the owner
func (r *GormPropertyRepository) ExistsForOwner(ctx context.Context, ownerID, propertyID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("owner_id = ? AND id = ?", ownerID, propertyID).
		Count(&count).Error; err != nil {
		return false, translateError(err, "Property")
	}
	return count > 0, nil
}
