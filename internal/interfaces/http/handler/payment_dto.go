package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/application/payment"
	"github.com/rentflow/backend/internal/domain/billing"
)

// CreatePaymentRequest represents a request to create a payment record
// @Description Request body for creating a payment record directly
type CreatePaymentRequest struct {
	RoomID             string   `json:"room_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	PropertyID         string   `json:"property_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	TenantID           *string  `json:"tenant_id" binding:"omitempty,uuid"`
	BillingMonth       int      `json:"billing_month" binding:"required,min=1,max=12" example:"3"`
	BillingYear        int      `json:"billing_year" binding:"required,min=2000,max=2100" example:"2024"`
	BillingPeriodStart string   `json:"billing_period_start" binding:"required,datetime=2006-01-02" example:"2024-03-03"`
	BillingPeriodEnd   string   `json:"billing_period_end" binding:"required,datetime=2006-01-02" example:"2024-04-02"`
	DueDate            string   `json:"due_date" binding:"required,datetime=2006-01-02" example:"2024-03-05"`
	RentalAmount       float64  `json:"rental_amount" binding:"gte=0" example:"3000000"`
	ElectricityAmount  float64  `json:"electricity_amount" binding:"gte=0" example:"350000"`
	WaterAmount        float64  `json:"water_amount" binding:"gte=0" example:"100000"`
	GarbageAmount      float64  `json:"garbage_amount" binding:"gte=0" example:"50000"`
	ParkingAmount      float64  `json:"parking_amount" binding:"gte=0" example:"100000"`
	Adjustments        float64  `json:"adjustments" example:"0"`
	ElectricityUsage   *float64 `json:"electricity_usage" binding:"omitempty,gte=0" example:"100"`
	WaterUsage         *float64 `json:"water_usage" binding:"omitempty,gte=0" example:"5"`
	Notes              string   `json:"notes" binding:"max=1000"`
}

func (r CreatePaymentRequest) toAppRequest() payment.CreatePaymentRequest {
	req := payment.CreatePaymentRequest{
		RoomID:             uuid.MustParse(r.RoomID),
		PropertyID:         uuid.MustParse(r.PropertyID),
		BillingMonth:       r.BillingMonth,
		BillingYear:        r.BillingYear,
		BillingPeriodStart: parseDate(r.BillingPeriodStart),
		BillingPeriodEnd:   parseDate(r.BillingPeriodEnd),
		DueDate:            parseDate(r.DueDate),
		RentalAmount:       toDecimal(r.RentalAmount),
		ElectricityAmount:  toDecimal(r.ElectricityAmount),
		WaterAmount:        toDecimal(r.WaterAmount),
		GarbageAmount:      toDecimal(r.GarbageAmount),
		ParkingAmount:      toDecimal(r.ParkingAmount),
		Adjustments:        toDecimal(r.Adjustments),
		Notes:              r.Notes,
	}
	if r.TenantID != nil {
		req.TenantID = parseUUIDPtr(*r.TenantID)
	}
	if r.ElectricityUsage != nil {
		req.ElectricityUsage = toDecimal(*r.ElectricityUsage)
	}
	if r.WaterUsage != nil {
		req.WaterUsage = toDecimal(*r.WaterUsage)
	}
	return req
}

// UsageRequest represents metered usage for a bill
// @Description Request body for recording or updating usage
type UsageRequest struct {
	ElectricityUsage           float64  `json:"electricity_usage" binding:"gte=0" example:"120"`
	WaterUsage                 float64  `json:"water_usage" binding:"gte=0" example:"6"`
	Adjustments                float64  `json:"adjustments" example:"-50000"`
	PreviousElectricityReading *float64 `json:"previous_electricity_reading" binding:"omitempty,gte=0" example:"1200"`
	CurrentElectricityReading  *float64 `json:"current_electricity_reading" binding:"omitempty,gte=0" example:"1320"`
	PreviousWaterReading       *float64 `json:"previous_water_reading" binding:"omitempty,gte=0" example:"80"`
	CurrentWaterReading        *float64 `json:"current_water_reading" binding:"omitempty,gte=0" example:"86"`
	Notes                      *string  `json:"notes" binding:"omitempty,max=1000"`
}

func (r UsageRequest) toUsageInput() payment.UsageInput {
	return payment.UsageInput{
		ElectricityUsage:           toDecimal(r.ElectricityUsage),
		WaterUsage:                 toDecimal(r.WaterUsage),
		Adjustments:                toDecimal(r.Adjustments),
		PreviousElectricityReading: toDecimalPtr(r.PreviousElectricityReading),
		CurrentElectricityReading:  toDecimalPtr(r.CurrentElectricityReading),
		PreviousWaterReading:       toDecimalPtr(r.PreviousWaterReading),
		CurrentWaterReading:        toDecimalPtr(r.CurrentWaterReading),
		Notes:                      r.Notes,
	}
}

// CalculateFeesRequest represents a fee preview request
// @Description Request body for previewing the charges of a room
type CalculateFeesRequest struct {
	RoomID string `json:"room_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	UsageRequest
}

// MarkPaidRequest represents a payment against a bill
// @Description Request body for marking a bill as paid
type MarkPaidRequest struct {
	PaidAmount    float64 `json:"paid_amount" binding:"required,gt=0" example:"3650000"`
	PaidDate      string  `json:"paid_date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-04"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,payment_method" example:"bank_transfer"`
	Notes         string  `json:"notes" binding:"max=1000"`
}

func (r MarkPaidRequest) toAppRequest() payment.MarkPaidRequest {
	return payment.MarkPaidRequest{
		PaidAmount:    toDecimal(r.PaidAmount),
		PaidDate:      parseDatePtr(r.PaidDate),
		PaymentMethod: billing.PaymentMethod(r.PaymentMethod),
		Notes:         r.Notes,
	}
}

// UpdateStatusRequest switches a bill between paid and unpaid
// @Description Request body for updating the status of a bill
type UpdateStatusRequest struct {
	Status        string   `json:"status" binding:"required,settable_status" example:"paid"`
	PaidAmount    *float64 `json:"paid_amount" binding:"omitempty,gt=0" example:"3650000"`
	PaidDate      string   `json:"paid_date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-04"`
	PaymentMethod string   `json:"payment_method" binding:"omitempty,payment_method" example:"cash"`
	Notes         string   `json:"notes" binding:"max=1000"`
}

func (r UpdateStatusRequest) toAppRequest() payment.UpdateStatusRequest {
	return payment.UpdateStatusRequest{
		Status:        billing.PaymentStatus(r.Status),
		PaidAmount:    toDecimalPtr(r.PaidAmount),
		PaidDate:      parseDatePtr(r.PaidDate),
		PaymentMethod: billing.PaymentMethod(r.PaymentMethod),
		Notes:         r.Notes,
	}
}

// UpdateDueDateRequest moves the due date of a bill
// @Description Request body for changing the due date of a bill
type UpdateDueDateRequest struct {
	DueDate string `json:"due_date" binding:"required,datetime=2006-01-02" example:"2024-03-10"`
}

// GeneratePaymentsRequest triggers generation for the caller's rooms
// @Description Request body for a manual generation run. With room_id only that room is billed.
type GeneratePaymentsRequest struct {
	Date   string `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2024-03-03"`
	RoomID string `json:"room_id" binding:"omitempty,uuid"`
}

// ListPaymentsQuery represents query parameters for listing payments
type ListPaymentsQuery struct {
	PropertyID   string `form:"property_id" binding:"omitempty,uuid"`
	RoomID       string `form:"room_id" binding:"omitempty,uuid"`
	Status       string `form:"status"`
	DueFrom      string `form:"due_from" binding:"omitempty,datetime=2006-01-02"`
	DueTo        string `form:"due_to" binding:"omitempty,datetime=2006-01-02"`
	BillingMonth *int   `form:"billing_month" binding:"omitempty,min=1,max=12"`
	BillingYear  *int   `form:"billing_year" binding:"omitempty,min=2000,max=2100"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by" binding:"omitempty,max=50"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// toFilter converts the query. It returns the status tokens that are not valid statuses.
func (q ListPaymentsQuery) toFilter() (payment.PaymentListFilter, []string) {
	filter := payment.PaymentListFilter{
		PropertyID:   parseUUIDPtr(q.PropertyID),
		RoomID:       parseUUIDPtr(q.RoomID),
		DueFrom:      parseDatePtr(q.DueFrom),
		DueTo:        parseDatePtr(q.DueTo),
		BillingMonth: q.BillingMonth,
		BillingYear:  q.BillingYear,
		Page:         q.Page,
		PageSize:     q.PageSize,
		OrderBy:      q.OrderBy,
		OrderDir:     q.OrderDir,
	}
	var invalid []string
	if strings.TrimSpace(q.Status) != "" {
		filter.Statuses, invalid = billing.ParseStatuses(q.Status)
	}
	return filter, invalid
}

// PropertyQuery selects a property
type PropertyQuery struct {
	PropertyID string `form:"property_id" binding:"required,uuid"`
}

// StatisticsQuery bounds statistics of a property by due date
type StatisticsQuery struct {
	PropertyID string `form:"property_id" binding:"required,uuid"`
	StartDate  string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// RemindersQuery selects the reminders of a property
type RemindersQuery struct {
	PropertyID string `form:"property_id" binding:"required,uuid"`
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
	Type       string `form:"type" binding:"omitempty,oneof=due_soon overdue unpaid"`
}

// HistoryQuery limits the payment history of a room
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=120"`
}
