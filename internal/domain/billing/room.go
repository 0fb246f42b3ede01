package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomStatus represents the occupancy status of a room
type RoomStatus string

const (
	RoomStatusVacant      RoomStatus = "vacant"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// IsValid checks if the status is a valid RoomStatus
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusVacant, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

// String returns the string representation of RoomStatus
func (s RoomStatus) String() string {
	return string(s)
}

// TenantAssignment is the billing-relevant view of the tenant currently living in a room.
// It replaces both the referenced and the embedded tenant representations with a single value.
type TenantAssignment struct {
	TenantID      *uuid.UUID
	Name          string
	Phone         string
	MoveInDate    time.Time
	PaymentDueDay int // 1-31, zero means "use the configured default"
}

// HasMoveInDate reports whether the assignment carries a usable move-in date
func (a *TenantAssignment) HasMoveInDate() bool {
	return a != nil && !a.MoveInDate.IsZero()
}

// RoomConfiguration is the read-only pricing and occupancy data of a room.
// Rooms are owned by the property subsystem; billing never writes them.
type RoomConfiguration struct {
	ID                   uuid.UUID
	OwnerID              uuid.UUID
	PropertyID           uuid.UUID
	RoomCode             string
	RoomName             string
	Status               RoomStatus
	RentalPrice          decimal.Decimal
	ElectricityUnitPrice decimal.Decimal
	WaterUnitPrice       decimal.Decimal
	GarbageFee           decimal.Decimal
	ParkingFee           decimal.Decimal
	CurrentTenant        *TenantAssignment
}

// IsOccupied returns true if the room is occupied
func (r *RoomConfiguration) IsOccupied() bool {
	return r.Status == RoomStatusOccupied
}

// IsBillable reports whether usage can be recorded against the room:
// it must be occupied and have a tenant assigned.
func (r *RoomConfiguration) IsBillable() bool {
	return r.IsOccupied() && r.CurrentTenant != nil
}

// IsAnniversary reports whether the given day is the room's move-in anniversary,
// i.e. the tenant's move-in day-of-month equals the day-of-month of day.
func (r *RoomConfiguration) IsAnniversary(day time.Time) bool {
	if !r.CurrentTenant.HasMoveInDate() {
		return false
	}
	return r.CurrentTenant.MoveInDate.Day() == day.Day()
}
