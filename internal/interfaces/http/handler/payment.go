package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/application/payment"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/infrastructure/logger"
	"github.com/rentflow/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PaymentHandler handles payment record API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService    *payment.PaymentService
	generationService *payment.GenerationService
	reminderService   *payment.ReminderService
	location          *time.Location
	now               func() time.Time
}

// PaymentHandlerOption configures a PaymentHandler
type PaymentHandlerOption func(*PaymentHandler)

// WithLocation sets the zone whose calendar day is "today" for manual generation
func WithLocation(loc *time.Location) PaymentHandlerOption {
	return func(h *PaymentHandler) {
		if loc != nil {
			h.location = loc
		}
	}
}

// WithHandlerClock overrides the handler clock
func WithHandlerClock(now func() time.Time) PaymentHandlerOption {
	return func(h *PaymentHandler) {
		h.now = now
	}
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(
	paymentService *payment.PaymentService,
	generationService *payment.GenerationService,
	reminderService *payment.ReminderService,
	opts ...PaymentHandlerOption,
) *PaymentHandler {
	h := &PaymentHandler{
		paymentService:    paymentService,
		generationService: generationService,
		reminderService:   reminderService,
		location:          time.UTC,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// today is the current calendar day in the handler's zone
func (h *PaymentHandler) today() time.Time {
	return billing.NormalizeDate(h.now().In(h.location))
}

// List godoc
// @ID           listPayments
// @Summary      List payment records
// @Description  List the caller's payment records with filtering and pagination. Status filters match the derived status.
// @Tags         payments
// @Produce      json
// @Param        property_id   query  string  false  "Property ID"  format(uuid)
// @Param        room_id       query  string  false  "Room ID"      format(uuid)
// @Param        status        query  string  false  "Comma-separated statuses (unpaid,partial,paid,overdue)"
// @Param        due_from      query  string  false  "Due date from (YYYY-MM-DD)"
// @Param        due_to        query  string  false  "Due date to (YYYY-MM-DD)"
// @Param        billing_month query  int     false  "Billing month"  minimum(1) maximum(12)
// @Param        billing_year  query  int     false  "Billing year"
// @Param        page          query  int     false  "Page number"  default(1)
// @Param        page_size     query  int     false  "Page size"    default(20)  maximum(100)
// @Param        order_by      query  string  false  "Sort field"   default(due_date)
// @Param        order_dir     query  string  false  "Sort order"   Enums(asc, desc)  default(desc)
// @Success      200 {object} APIResponse[[]payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var query ListPaymentsQuery
	if !h.bindQuery(c, &query) {
		return
	}
	filter, invalid := query.toFilter()
	if len(invalid) > 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Invalid status filter: "+strings.Join(invalid, ", "))
		return
	}

	records, total, err := h.paymentService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = billing.DefaultPaymentRecordFilter().PageSize
	}
	h.SuccessWithMeta(c, records, total, page, pageSize)
}

// Create godoc
// @ID           createPayment
// @Summary      Create a payment record
// @Description  Create a payment record directly. Only one record may exist per room and billing period start.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentRequest true "Payment record"
// @Success      201 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.Create(c.Request.Context(), ownerID, req.toAppRequest())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// CalculateFees godoc
// @ID           calculatePaymentFees
// @Summary      Preview fees
// @Description  Calculate the charges of a room for the given usage without persisting anything
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CalculateFeesRequest true "Room and usage"
// @Success      200 {object} APIResponse[payment.FeePreviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/calculate [post]
func (h *PaymentHandler) CalculateFees(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req CalculateFeesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.CalculateFees(c.Request.Context(), ownerID, payment.CalculateFeesRequest{
		RoomID: uuid.MustParse(req.RoomID),
		Usage:  req.toUsageInput(),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Generate godoc
// @ID           generatePayments
// @Summary      Run payment generation
// @Description  Bill the caller's rooms whose move-in anniversary falls on the given date (default today).
// @Description  With room_id only that room is billed for the period covering the date.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body GeneratePaymentsRequest false "Run options"
// @Success      200 {object} APIResponse[payment.GenerationResultResponse]
// @Success      201 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/generate [post]
func (h *PaymentHandler) Generate(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	// The body is optional
	var req GeneratePaymentsRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.bindError(c, err)
			return
		}
	}

	today := h.today()
	if req.Date != "" {
		today = parseDate(req.Date)
	}
	ctx := c.Request.Context()

	if roomID := parseUUIDPtr(req.RoomID); roomID != nil {
		resp, err := h.generationService.CreateForRoom(ctx, ownerID, *roomID, today)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Created(c, resp)
		return
	}

	result, err := h.generationService.GenerateForOwner(ctx, ownerID, today)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	logger.GetGinLogger(c).Info("Manual payment generation finished",
		zap.String("run_date", today.Format(payment.DateLayout)),
		zap.Int("created", result.Created))
	h.Success(c, result.ToResponse())
}

// Overdue godoc
// @ID           listOverduePayments
// @Summary      List overdue payments
// @Description  List the property's bills that are past due and not fully paid, oldest due date first
// @Tags         payments
// @Produce      json
// @Param        property_id query string true "Property ID" format(uuid)
// @Success      200 {object} APIResponse[[]payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/overdue [get]
func (h *PaymentHandler) Overdue(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var query PropertyQuery
	if !h.bindQuery(c, &query) {
		return
	}

	records, err := h.paymentService.Overdue(c.Request.Context(), ownerID, uuid.MustParse(query.PropertyID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// Statistics godoc
// @ID           getPaymentStatistics
// @Summary      Payment statistics
// @Description  Summarize the property's bills, optionally bounded by due date
// @Tags         payments
// @Produce      json
// @Param        property_id query string true  "Property ID" format(uuid)
// @Param        start_date  query string false "Due date from (YYYY-MM-DD)"
// @Param        end_date    query string false "Due date to (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[payment.StatisticsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/statistics [get]
func (h *PaymentHandler) Statistics(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var query StatisticsQuery
	if !h.bindQuery(c, &query) {
		return
	}

	resp, err := h.paymentService.Statistics(c.Request.Context(), ownerID, payment.StatisticsFilter{
		PropertyID: uuid.MustParse(query.PropertyID),
		StartDate:  parseDatePtr(query.StartDate),
		EndDate:    parseDatePtr(query.EndDate),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reminders godoc
// @ID           listPaymentReminders
// @Summary      List payment reminders
// @Description  Derive reminders for the property's unpaid bills. Nothing is persisted.
// @Tags         payments
// @Produce      json
// @Param        property_id query string true  "Property ID" format(uuid)
// @Param        room_id     query string false "Room ID"     format(uuid)
// @Param        type        query string false "Reminder type" Enums(due_soon, overdue, unpaid)
// @Success      200 {object} APIResponse[payment.ReminderListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/reminders [get]
func (h *PaymentHandler) Reminders(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var query RemindersQuery
	if !h.bindQuery(c, &query) {
		return
	}

	resp, err := h.reminderService.ListReminders(c.Request.Context(), ownerID, payment.ReminderFilter{
		PropertyID: uuid.MustParse(query.PropertyID),
		RoomID:     parseUUIDPtr(query.RoomID),
		Kind:       billing.ReminderKind(query.Type),
	}, h.now())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID godoc
// @ID           getPayment
// @Summary      Get a payment record
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	resp, err := h.paymentService.GetByID(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateUsage godoc
// @ID           updatePaymentUsage
// @Summary      Update usage of a bill
// @Description  Recompute the charges of an unpaid bill from new usage
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string       true "Payment ID" format(uuid)
// @Param        request body UsageRequest true "Usage"
// @Success      200 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/usage [put]
func (h *PaymentHandler) UpdateUsage(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	var req UsageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.UpdateUsage(c.Request.Context(), ownerID, id, req.toUsageInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkPaid godoc
// @ID           markPaymentPaid
// @Summary      Record a payment
// @Description  Record a payment against a bill. The bill is paid when the amount covers its total, partial otherwise.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string          true "Payment ID" format(uuid)
// @Param        request body MarkPaidRequest true "Payment"
// @Success      200 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/pay [put]
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	var req MarkPaidRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.MarkPaid(c.Request.Context(), ownerID, id, req.toAppRequest())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updatePaymentStatus
// @Summary      Update payment status
// @Description  Mark a bill paid (full total unless paid_amount is given) or reset it to unpaid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Payment ID" format(uuid)
// @Param        request body UpdateStatusRequest true "Status"
// @Success      200 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.UpdateStatus(c.Request.Context(), ownerID, id, req.toAppRequest())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateDueDate godoc
// @ID           updatePaymentDueDate
// @Summary      Update due date
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Payment ID" format(uuid)
// @Param        request body UpdateDueDateRequest true "Due date"
// @Success      200 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/due-date [put]
func (h *PaymentHandler) UpdateDueDate(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "payment")
	if !ok {
		return
	}

	var req UpdateDueDateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.UpdateDueDate(c.Request.Context(), ownerID, id, parseDate(req.DueDate))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordUsage godoc
// @ID           recordRoomUsage
// @Summary      Record usage for a room
// @Description  Attach metered usage to the latest bill of an occupied room and recompute its charges
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id      path string       true "Room ID" format(uuid)
// @Param        request body UsageRequest true "Usage"
// @Success      200 {object} APIResponse[payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /rooms/{id}/usage [post]
func (h *PaymentHandler) RecordUsage(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	roomID, ok := h.pathID(c, "id", "room")
	if !ok {
		return
	}

	var req UsageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.RecordUsage(c.Request.Context(), ownerID, roomID, req.toUsageInput())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// History godoc
// @ID           listRoomPayments
// @Summary      Room payment history
// @Description  Latest bills of a room, newest period first
// @Tags         rooms
// @Produce      json
// @Param        id    path  string true  "Room ID" format(uuid)
// @Param        limit query int    false "Maximum records" default(12) maximum(120)
// @Success      200 {object} APIResponse[[]payment.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /rooms/{id}/payments [get]
func (h *PaymentHandler) History(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	roomID, ok := h.pathID(c, "id", "room")
	if !ok {
		return
	}

	var query HistoryQuery
	if !h.bindQuery(c, &query) {
		return
	}

	records, err := h.paymentService.History(c.Request.Context(), ownerID, roomID, query.Limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// RoomPaymentStatus godoc
// @ID           getRoomPaymentStatus
// @Summary      Room payment status
// @Description  Status of the latest bill of a room, or no_payment when it was never billed
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID" format(uuid)
// @Success      200 {object} APIResponse[payment.RoomPaymentStatusResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /rooms/{id}/payment-status [get]
func (h *PaymentHandler) RoomPaymentStatus(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}
	roomID, ok := h.pathID(c, "id", "room")
	if !ok {
		return
	}

	resp, err := h.paymentService.RoomPaymentStatus(c.Request.Context(), ownerID, roomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
