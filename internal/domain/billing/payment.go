package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a bill was settled
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodEWallet      PaymentMethod = "e_wallet"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodEWallet:
		return true
	}
	return false
}

// MeterReadings are raw meter values kept for audit. They never feed the calculation.
type MeterReadings struct {
	PreviousElectricity *decimal.Decimal `json:"previous_electricity_reading,omitempty"`
	CurrentElectricity  *decimal.Decimal `json:"current_electricity_reading,omitempty"`
	PreviousWater       *decimal.Decimal `json:"previous_water_reading,omitempty"`
	CurrentWater        *decimal.Decimal `json:"current_water_reading,omitempty"`
}

var _ shared.AggregateRoot = (*PaymentRecord)(nil)

// PaymentRecord is the aggregate root for one billing period's charge and payment state
type PaymentRecord struct {
	shared.OwnedAggregateRoot
	RoomID             uuid.UUID
	PropertyID         uuid.UUID
	TenantID           *uuid.UUID // weak reference, never ownership
	BillingMonth       int
	BillingYear        int
	BillingPeriodStart time.Time
	BillingPeriodEnd   time.Time
	DueDate            time.Time
	ChargeBreakdown
	ElectricityUsage decimal.Decimal
	WaterUsage       decimal.Decimal
	Readings         MeterReadings
	Status           PaymentStatus
	PaidAmount       decimal.Decimal
	PaidDate         *time.Time
	PaymentMethod    PaymentMethod
	Notes            string
}

// NewPaymentRecordParams carries the inputs of a new payment record
type NewPaymentRecordParams struct {
	OwnerID          uuid.UUID
	RoomID           uuid.UUID
	PropertyID       uuid.UUID
	TenantID         *uuid.UUID
	Period           BillingPeriod
	Charges          ChargeBreakdown
	ElectricityUsage decimal.Decimal
	WaterUsage       decimal.Decimal
	Notes            string
}

// NewPaymentRecord creates an unpaid payment record. The total is always recomputed from the charges.
func NewPaymentRecord(p NewPaymentRecordParams) (*PaymentRecord, error) {
	if p.OwnerID == uuid.Nil {
		return nil, shared.NewValidationError("Owner ID cannot be empty")
	}
	if p.RoomID == uuid.Nil {
		return nil, shared.NewValidationError("Room ID cannot be empty")
	}
	if p.PropertyID == uuid.Nil {
		return nil, shared.NewValidationError("Property ID cannot be empty")
	}
	if p.Period.Month < 1 || p.Period.Month > 12 {
		return nil, shared.NewValidationError("Billing month must be between 1 and 12")
	}
	if p.Period.Year < 2000 {
		return nil, shared.NewValidationError("Billing year must be 2000 or later")
	}
	if p.Period.Start.IsZero() || p.Period.End.IsZero() || p.Period.DueDate.IsZero() {
		return nil, shared.NewValidationError("Billing period dates are required")
	}
	if p.Period.End.Before(p.Period.Start) {
		return nil, shared.NewValidationError("Billing period end cannot precede its start")
	}
	if err := validateCharges(p.Charges); err != nil {
		return nil, err
	}
	if err := (Usage{ElectricityUsage: p.ElectricityUsage, WaterUsage: p.WaterUsage}).Validate(); err != nil {
		return nil, err
	}

	charges := p.Charges
	charges.TotalAmount = charges.Sum()

	return &PaymentRecord{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(p.OwnerID),
		RoomID:             p.RoomID,
		PropertyID:         p.PropertyID,
		TenantID:           p.TenantID,
		BillingMonth:       p.Period.Month,
		BillingYear:        p.Period.Year,
		BillingPeriodStart: NormalizeDate(p.Period.Start),
		BillingPeriodEnd:   NormalizeDate(p.Period.End),
		DueDate:            NormalizeDate(p.Period.DueDate),
		ChargeBreakdown:    charges,
		ElectricityUsage:   p.ElectricityUsage,
		WaterUsage:         p.WaterUsage,
		Status:             PaymentStatusUnpaid,
		PaidAmount:         decimal.Zero,
		Notes:              p.Notes,
	}, nil
}

// NewGeneratedPaymentRecord creates the record the daily generation produces for a room
func NewGeneratedPaymentRecord(room *RoomConfiguration, period BillingPeriod, charges ChargeBreakdown) (*PaymentRecord, error) {
	params := NewPaymentRecordParams{
		OwnerID:          room.OwnerID,
		RoomID:           room.ID,
		PropertyID:       room.PropertyID,
		Period:           period,
		Charges:          charges,
		ElectricityUsage: decimal.Zero,
		WaterUsage:       decimal.Zero,
	}
	if room.CurrentTenant != nil {
		params.TenantID = room.CurrentTenant.TenantID
	}
	return NewPaymentRecord(params)
}

func validateCharges(c ChargeBreakdown) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"rental amount", c.RentalAmount},
		{"electricity amount", c.ElectricityAmount},
		{"water amount", c.WaterAmount},
		{"garbage amount", c.GarbageAmount},
		{"parking amount", c.ParkingAmount},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return shared.NewValidationError(fmt.Sprintf("The %s cannot be negative", f.name))
		}
	}
	return nil
}

// IsPaid returns true if the record has been fully paid
func (p *PaymentRecord) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// IsOverdue reports whether the record is past due and not paid
func (p *PaymentRecord) IsOverdue(now time.Time) bool {
	return p.EffectiveStatus(now) == PaymentStatusOverdue
}

// EffectiveStatus derives the status a caller should see at time now.
// Paid is sticky; otherwise a due date in the past means overdue regardless of the stored value.
func (p *PaymentRecord) EffectiveStatus(now time.Time) PaymentStatus {
	return DeriveStatus(p.Status, p.DueDate, p.PaidAmount, now)
}

// Outstanding returns the amount still owed
func (p *PaymentRecord) Outstanding() decimal.Decimal {
	return p.TotalAmount.Sub(p.PaidAmount)
}

// RefreshStatus persists the derived overdue status onto the record.
// It returns true if the stored status changed.
func (p *PaymentRecord) RefreshStatus(now time.Time) bool {
	effective := p.EffectiveStatus(now)
	if effective == p.Status {
		return false
	}
	p.Status = effective
	p.Touch()
	return true
}

// ApplyUsage replaces all charges, usage and readings in one step.
// Paid records are immutable to usage edits.
func (p *PaymentRecord) ApplyUsage(charges ChargeBreakdown, usage Usage, readings MeterReadings, notes *string) error {
	if p.IsPaid() {
		return shared.NewInvalidStateError("Cannot update usage of a paid bill")
	}
	if err := usage.Validate(); err != nil {
		return err
	}
	if err := validateCharges(charges); err != nil {
		return err
	}

	charges.TotalAmount = charges.Sum()
	p.ChargeBreakdown = charges
	p.ElectricityUsage = usage.ElectricityUsage
	p.WaterUsage = usage.WaterUsage
	p.Readings = readings
	if notes != nil {
		p.Notes = *notes
	}

	p.Touch()
	return nil
}

// MarkPaid records a payment. The status becomes paid when the amount covers the total,
// partial otherwise. A zero paidDate means now.
func (p *PaymentRecord) MarkPaid(amount decimal.Decimal, paidDate time.Time, method PaymentMethod, notes string) error {
	if amount.IsNegative() {
		return shared.NewValidationError("Paid amount cannot be negative")
	}
	if method != "" && !method.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid payment method: %s", method))
	}
	if paidDate.IsZero() {
		paidDate = time.Now()
	}

	p.PaidAmount = amount
	p.PaidDate = &paidDate
	if amount.GreaterThanOrEqual(p.TotalAmount) {
		p.Status = PaymentStatusPaid
	} else {
		p.Status = PaymentStatusPartial
	}
	if method != "" {
		p.PaymentMethod = method
	}
	if notes != "" {
		p.Notes = notes
	}

	p.Touch()
	return nil
}

// ResetToUnpaid reverts a mistaken payment mark
func (p *PaymentRecord) ResetToUnpaid(notes string) {
	p.Status = PaymentStatusUnpaid
	p.PaidAmount = decimal.Zero
	p.PaidDate = nil
	p.PaymentMethod = ""
	if notes != "" {
		p.Notes = notes
	}

	p.Touch()
}

// SetDueDate moves the due date
func (p *PaymentRecord) SetDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return shared.NewValidationError("Due date is required")
	}
	p.DueDate = NormalizeDate(dueDate)
	p.Touch()
	return nil
}
