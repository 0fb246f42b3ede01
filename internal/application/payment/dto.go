package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ==================== Requests ====================

// CreatePaymentRequest represents a request to create a payment record directly
type CreatePaymentRequest struct {
	RoomID             uuid.UUID
	PropertyID         uuid.UUID
	TenantID           *uuid.UUID
	BillingMonth       int
	BillingYear        int
	BillingPeriodStart time.Time
	BillingPeriodEnd   time.Time
	DueDate            time.Time
	RentalAmount       decimal.Decimal
	ElectricityAmount  decimal.Decimal
	WaterAmount        decimal.Decimal
	GarbageAmount      decimal.Decimal
	ParkingAmount      decimal.Decimal
	Adjustments        decimal.Decimal
	ElectricityUsage   decimal.Decimal
	WaterUsage         decimal.Decimal
	Notes              string
}

// UsageInput represents metered usage submitted for a bill
type UsageInput struct {
	ElectricityUsage           decimal.Decimal
	WaterUsage                 decimal.Decimal
	Adjustments                decimal.Decimal
	PreviousElectricityReading *decimal.Decimal
	CurrentElectricityReading  *decimal.Decimal
	PreviousWaterReading       *decimal.Decimal
	CurrentWaterReading        *decimal.Decimal
	Notes                      *string
}

func (in UsageInput) usage() billing.Usage {
	return billing.Usage{
		ElectricityUsage: in.ElectricityUsage,
		WaterUsage:       in.WaterUsage,
		Adjustments:      in.Adjustments,
	}
}

func (in UsageInput) readings() billing.MeterReadings {
	return billing.MeterReadings{
		PreviousElectricity: in.PreviousElectricityReading,
		CurrentElectricity:  in.CurrentElectricityReading,
		PreviousWater:       in.PreviousWaterReading,
		CurrentWater:        in.CurrentWaterReading,
	}
}

// MarkPaidRequest represents a payment against a bill. A nil PaidDate means now.
type MarkPaidRequest struct {
	PaidAmount    decimal.Decimal
	PaidDate      *time.Time
	PaymentMethod billing.PaymentMethod
	Notes         string
}

// UpdateStatusRequest switches a bill between paid and unpaid.
// Paid without an amount settles the full total.
type UpdateStatusRequest struct {
	Status        billing.PaymentStatus
	PaidAmount    *decimal.Decimal
	PaidDate      *time.Time
	PaymentMethod billing.PaymentMethod
	Notes         string
}

// CalculateFeesRequest asks for a fee preview without persisting anything
type CalculateFeesRequest struct {
	RoomID uuid.UUID
	Usage  UsageInput
}

// PaymentListFilter represents filtering options for the payment list
type PaymentListFilter struct {
	PropertyID   *uuid.UUID
	RoomID       *uuid.UUID
	Statuses     []billing.PaymentStatus
	DueFrom      *time.Time
	DueTo        *time.Time
	BillingMonth *int
	BillingYear  *int
	Page         int
	PageSize     int
	OrderBy      string
	OrderDir     string
}

// StatisticsFilter bounds statistics by due date
type StatisticsFilter struct {
	PropertyID uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ==================== Responses ====================

// PaymentResponse represents a payment record as seen by callers.
// Status is always the derived status.
type PaymentResponse struct {
	ID                 uuid.UUID               `json:"id"`
	RoomID             uuid.UUID               `json:"room_id"`
	PropertyID         uuid.UUID               `json:"property_id"`
	TenantID           *uuid.UUID              `json:"tenant_id,omitempty"`
	BillingMonth       int                     `json:"billing_month"`
	BillingYear        int                     `json:"billing_year"`
	BillingPeriodStart string                  `json:"billing_period_start"`
	BillingPeriodEnd   string                  `json:"billing_period_end"`
	DueDate            string                  `json:"due_date"`
	Charges            billing.ChargeBreakdown `json:"charges"`
	ElectricityUsage   decimal.Decimal         `json:"electricity_usage"`
	WaterUsage         decimal.Decimal         `json:"water_usage"`
	Readings           billing.MeterReadings   `json:"readings"`
	Status             billing.PaymentStatus   `json:"status"`
	PaidAmount         decimal.Decimal         `json:"paid_amount"`
	Outstanding        decimal.Decimal         `json:"outstanding"`
	PaidDate           *time.Time              `json:"paid_date,omitempty"`
	PaymentMethod      billing.PaymentMethod   `json:"payment_method,omitempty"`
	Notes              string                  `json:"notes,omitempty"`
	Version            int                     `json:"version"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// ToPaymentResponse converts a domain record into a response, deriving its status at now
func ToPaymentResponse(p *billing.PaymentRecord, now time.Time) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		RoomID:             p.RoomID,
		PropertyID:         p.PropertyID,
		TenantID:           p.TenantID,
		BillingMonth:       p.BillingMonth,
		BillingYear:        p.BillingYear,
		BillingPeriodStart: formatDate(p.BillingPeriodStart),
		BillingPeriodEnd:   formatDate(p.BillingPeriodEnd),
		DueDate:            formatDate(p.DueDate),
		Charges:            p.ChargeBreakdown,
		ElectricityUsage:   p.ElectricityUsage,
		WaterUsage:         p.WaterUsage,
		Readings:           p.Readings,
		Status:             p.EffectiveStatus(now),
		PaidAmount:         p.PaidAmount,
		Outstanding:        p.Outstanding(),
		PaidDate:           p.PaidDate,
		PaymentMethod:      p.PaymentMethod,
		Notes:              p.Notes,
		Version:            p.Version,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToPaymentResponses converts a slice of domain records
func ToPaymentResponses(records []*billing.PaymentRecord, now time.Time) []PaymentResponse {
	responses := make([]PaymentResponse, len(records))
	for i, r := range records {
		responses[i] = ToPaymentResponse(r, now)
	}
	return responses
}

// FeePreviewResponse is the result of a fee calculation
type FeePreviewResponse struct {
	RoomID               uuid.UUID               `json:"room_id"`
	ElectricityUnitPrice decimal.Decimal         `json:"electricity_unit_price"`
	WaterUnitPrice       decimal.Decimal         `json:"water_unit_price"`
	Charges              billing.ChargeBreakdown `json:"charges"`
}

// StatisticsResponse summarizes the payments of a property
type StatisticsResponse struct {
	PropertyID        uuid.UUID       `json:"property_id"`
	StartDate         string          `json:"start_date,omitempty"`
	EndDate           string          `json:"end_date,omitempty"`
	TotalRecords      int             `json:"total_records"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	PaidCount         int             `json:"paid_count"`
	UnpaidCount       int             `json:"unpaid_count"`
	OverdueCount      int             `json:"overdue_count"`
	LatePaymentRate   decimal.Decimal `json:"late_payment_rate"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// RoomPaymentStatusNone is reported for a room that has never been billed
const RoomPaymentStatusNone = "no_payment"

// RoomPaymentStatusResponse summarizes the latest bill of a room
type RoomPaymentStatusResponse struct {
	RoomID       uuid.UUID        `json:"room_id"`
	Status       string           `json:"status"`
	PaymentID    *uuid.UUID       `json:"payment_id,omitempty"`
	BillingMonth int              `json:"billing_month,omitempty"`
	BillingYear  int              `json:"billing_year,omitempty"`
	DueDate      string           `json:"due_date,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	PaidAmount   *decimal.Decimal `json:"paid_amount,omitempty"`
}

// ReminderResponse is one reminder with its display message
type ReminderResponse struct {
	Kind         billing.ReminderKind  `json:"kind"`
	Priority     ReminderPriority      `json:"priority"`
	PaymentID    uuid.UUID             `json:"payment_id"`
	RoomID       uuid.UUID             `json:"room_id"`
	PropertyID   uuid.UUID             `json:"property_id"`
	TenantID     *uuid.UUID            `json:"tenant_id,omitempty"`
	BillingMonth int                   `json:"billing_month"`
	BillingYear  int                   `json:"billing_year"`
	DueDate      string                `json:"due_date"`
	DaysUntilDue int                   `json:"days_until_due"`
	Status       billing.PaymentStatus `json:"status"`
	Outstanding  decimal.Decimal       `json:"outstanding"`
	Message      string                `json:"message"`
}

// ReminderListResponse groups reminders of a property by kind
type ReminderListResponse struct {
	PropertyID   uuid.UUID          `json:"property_id"`
	GeneratedAt  time.Time          `json:"generated_at"`
	DueSoonCount int                `json:"due_soon_count"`
	OverdueCount int                `json:"overdue_count"`
	UnpaidCount  int                `json:"unpaid_count"`
	Reminders    []ReminderResponse `json:"reminders"`
}

// GenerationResultResponse reports one generation run
type GenerationResultResponse struct {
	RunDate     string              `json:"run_date"`
	TotalRooms  int                 `json:"total_rooms"`
	Eligible    int                 `json:"eligible"`
	Created     int                 `json:"created"`
	Skipped     int                 `json:"skipped"`
	Errors      int                 `json:"errors"`
	LockSkipped bool                `json:"lock_skipped"`
	Failures    []GenerationFailure `json:"failures,omitempty"`
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
