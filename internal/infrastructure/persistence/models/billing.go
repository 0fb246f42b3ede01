package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for properties. Billing only reads it.
type PropertyModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(200);not null"`
	Address string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// RoomModel is the persistence model for rooms and their current tenant.
type RoomModel struct {
	BaseModel
	OwnerID              uuid.UUID          `gorm:"type:uuid;not null;index"`
	PropertyID           uuid.UUID          `gorm:"type:uuid;not null;index"`
	RoomCode             string             `gorm:"type:varchar(50);not null"`
	RoomName             string             `gorm:"type:varchar(200)"`
	Status               billing.RoomStatus `gorm:"type:varchar(20);not null;default:'vacant';index"`
	RentalPrice          decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	ElectricityUnitPrice decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	WaterUnitPrice       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	GarbageFee           decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	ParkingFee           decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	TenantID             *uuid.UUID         `gorm:"type:uuid;index"`
	TenantName           string             `gorm:"type:varchar(200)"`
	TenantPhone          string             `gorm:"type:varchar(30)"`
	MoveInDate           *time.Time         `gorm:"type:date"`
	PaymentDueDay        int                `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain RoomConfiguration.
// A room carries a tenant assignment when it has a tenant ID, a tenant name or a move-in date.
func (m *RoomModel) ToDomain() *billing.RoomConfiguration {
	room := &billing.RoomConfiguration{
		ID:                   m.ID,
		OwnerID:              m.OwnerID,
		PropertyID:           m.PropertyID,
		RoomCode:             m.RoomCode,
		RoomName:             m.RoomName,
		Status:               m.Status,
		RentalPrice:          m.RentalPrice,
		ElectricityUnitPrice: m.ElectricityUnitPrice,
		WaterUnitPrice:       m.WaterUnitPrice,
		GarbageFee:           m.GarbageFee,
		ParkingFee:           m.ParkingFee,
	}
	if m.TenantID != nil || m.TenantName != "" || m.MoveInDate != nil {
		assignment := &billing.TenantAssignment{
			TenantID:      m.TenantID,
			Name:          m.TenantName,
			Phone:         m.TenantPhone,
			PaymentDueDay: m.PaymentDueDay,
		}
		if m.MoveInDate != nil {
			assignment.MoveInDate = billing.NormalizeDate(*m.MoveInDate)
		}
		room.CurrentTenant = assignment
	}
	return room
}

// FromDomain populates the persistence model from a domain RoomConfiguration
func (m *RoomModel) FromDomain(r *billing.RoomConfiguration) {
	m.ID = r.ID
	m.OwnerID = r.OwnerID
	m.PropertyID = r.PropertyID
	m.RoomCode = r.RoomCode
	m.RoomName = r.RoomName
	m.Status = r.Status
	m.RentalPrice = r.RentalPrice
	m.ElectricityUnitPrice = r.ElectricityUnitPrice
	m.WaterUnitPrice = r.WaterUnitPrice
	m.GarbageFee = r.GarbageFee
	m.ParkingFee = r.ParkingFee
	if t := r.CurrentTenant; t != nil {
		m.TenantID = t.TenantID
		m.TenantName = t.Name
		m.TenantPhone = t.Phone
		m.PaymentDueDay = t.PaymentDueDay
		if t.HasMoveInDate() {
			moveIn := billing.NormalizeDate(t.MoveInDate)
			m.MoveInDate = &moveIn
		}
	}
}

// RoomModelFromDomain creates a new persistence model from a domain RoomConfiguration
func RoomModelFromDomain(r *billing.RoomConfiguration) *RoomModel {
	m := &RoomModel{}
	m.FromDomain(r)
	return m
}

// PaymentRecordModel is the persistence model for the PaymentRecord aggregate root.
// (room_id, billing_period_start) is unique so concurrent generation cannot duplicate a period.
type PaymentRecordModel struct {
	OwnedAggregateModel
	RoomID                     uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_payment_room_period,priority:1"`
	PropertyID                 uuid.UUID             `gorm:"type:uuid;not null;index"`
	TenantID                   *uuid.UUID            `gorm:"type:uuid;index"`
	BillingMonth               int                   `gorm:"not null;index:idx_payment_billing_period,priority:2"`
	BillingYear                int                   `gorm:"not null;index:idx_payment_billing_period,priority:1"`
	BillingPeriodStart         time.Time             `gorm:"type:date;not null;uniqueIndex:idx_payment_room_period,priority:2"`
	BillingPeriodEnd           time.Time             `gorm:"type:date;not null"`
	DueDate                    time.Time             `gorm:"type:date;not null;index"`
	RentalAmount               decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	ElectricityAmount          decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	WaterAmount                decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	GarbageAmount              decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	ParkingAmount              decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Adjustments                decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount                decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	ElectricityUsage           decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	WaterUsage                 decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	PreviousElectricityReading decimal.NullDecimal   `gorm:"type:decimal(18,4)"`
	CurrentElectricityReading  decimal.NullDecimal   `gorm:"type:decimal(18,4)"`
	PreviousWaterReading       decimal.NullDecimal   `gorm:"type:decimal(18,4)"`
	CurrentWaterReading        decimal.NullDecimal   `gorm:"type:decimal(18,4)"`
	Status                     billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	PaidAmount                 decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	PaidDate                   *time.Time
	PaymentMethod              billing.PaymentMethod `gorm:"type:varchar(20)"`
	Notes                      string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// ToDomain converts the persistence model to a domain PaymentRecord
func (m *PaymentRecordModel) ToDomain() *billing.PaymentRecord {
	return &billing.PaymentRecord{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		RoomID:             m.RoomID,
		PropertyID:         m.PropertyID,
		TenantID:           m.TenantID,
		BillingMonth:       m.BillingMonth,
		BillingYear:        m.BillingYear,
		BillingPeriodStart: billing.NormalizeDate(m.BillingPeriodStart),
		BillingPeriodEnd:   billing.NormalizeDate(m.BillingPeriodEnd),
		DueDate:            billing.NormalizeDate(m.DueDate),
		ChargeBreakdown: billing.ChargeBreakdown{
			RentalAmount:      m.RentalAmount,
			ElectricityAmount: m.ElectricityAmount,
			WaterAmount:       m.WaterAmount,
			GarbageAmount:     m.GarbageAmount,
			ParkingAmount:     m.ParkingAmount,
			Adjustments:       m.Adjustments,
			TotalAmount:       m.TotalAmount,
		},
		ElectricityUsage: m.ElectricityUsage,
		WaterUsage:       m.WaterUsage,
		Readings: billing.MeterReadings{
			PreviousElectricity: fromNullDecimal(m.PreviousElectricityReading),
			CurrentElectricity:  fromNullDecimal(m.CurrentElectricityReading),
			PreviousWater:       fromNullDecimal(m.PreviousWaterReading),
			CurrentWater:        fromNullDecimal(m.CurrentWaterReading),
		},
		Status:        m.Status,
		PaidAmount:    m.PaidAmount,
		PaidDate:      m.PaidDate,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
	}
}

// FromDomain populates the persistence model from a domain PaymentRecord
func (m *PaymentRecordModel) FromDomain(p *billing.PaymentRecord) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.RoomID = p.RoomID
	m.PropertyID = p.PropertyID
	m.TenantID = p.TenantID
	m.BillingMonth = p.BillingMonth
	m.BillingYear = p.BillingYear
	m.BillingPeriodStart = p.BillingPeriodStart
	m.BillingPeriodEnd = p.BillingPeriodEnd
	m.DueDate = p.DueDate
	m.RentalAmount = p.RentalAmount
	m.ElectricityAmount = p.ElectricityAmount
	m.WaterAmount = p.WaterAmount
	m.GarbageAmount = p.GarbageAmount
	m.ParkingAmount = p.ParkingAmount
	m.Adjustments = p.Adjustments
	m.TotalAmount = p.TotalAmount
	m.ElectricityUsage = p.ElectricityUsage
	m.WaterUsage = p.WaterUsage
	m.PreviousElectricityReading = toNullDecimal(p.Readings.PreviousElectricity)
	m.CurrentElectricityReading = toNullDecimal(p.Readings.CurrentElectricity)
	m.PreviousWaterReading = toNullDecimal(p.Readings.PreviousWater)
	m.CurrentWaterReading = toNullDecimal(p.Readings.CurrentWater)
	m.Status = p.Status
	m.PaidAmount = p.PaidAmount
	m.PaidDate = p.PaidDate
	m.PaymentMethod = p.PaymentMethod
	m.Notes = p.Notes
}

// PaymentRecordModelFromDomain creates a new persistence model from a domain PaymentRecord
func PaymentRecordModelFromDomain(p *billing.PaymentRecord) *PaymentRecordModel {
	m := &PaymentRecordModel{}
	m.FromDomain(p)
	return m
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
