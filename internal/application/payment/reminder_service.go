package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReminderPriority ranks reminders for display
type ReminderPriority string

const (
	ReminderPriorityHigh   ReminderPriority = "high"
	ReminderPriorityMedium ReminderPriority = "medium"
	ReminderPriorityLow    ReminderPriority = "low"
)

// overdueEscalationDays is how long a bill may stay overdue before its reminder becomes high priority
const overdueEscalationDays = 7

// ReminderFilter narrows the reminder projection of a property
type ReminderFilter struct {
	PropertyID uuid.UUID
	RoomID     *uuid.UUID
	Kind       billing.ReminderKind
}

// ReminderService projects unpaid bills into reminders. It never mutates payment records.
type ReminderService struct {
	paymentRepo  billing.PaymentRecordRepository
	propertyRepo billing.PropertyRepository
	policy       billing.ReminderPolicy
	printer      *message.Printer
	logger       *zap.Logger
}

// NewReminderService creates a new ReminderService. dueSoonDays <= 0 uses the default window.
func NewReminderService(
	paymentRepo billing.PaymentRecordRepository,
	propertyRepo billing.PropertyRepository,
	logger *zap.Logger,
	dueSoonDays int,
) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		paymentRepo:  paymentRepo,
		propertyRepo: propertyRepo,
		policy:       billing.NewReminderPolicy(dueSoonDays),
		printer:      message.NewPrinter(language.Vietnamese),
		logger:       logger,
	}
}

// ListReminders classifies the property's bills as of now, oldest due date first
func (s *ReminderService) ListReminders(ctx context.Context, ownerID uuid.UUID, filter ReminderFilter, now time.Time) (*ReminderListResponse, error) {
	if filter.PropertyID == uuid.Nil {
		return nil, shared.NewValidationError("Property ID is required")
	}
	switch filter.Kind {
	case "", billing.ReminderKindDueSoon, billing.ReminderKindOverdue, billing.ReminderKindUnpaid:
	default:
		return nil, shared.NewValidationError("Reminder type must be one of due_soon, overdue, unpaid")
	}

	ok, err := s.propertyRepo.ExistsForOwner(ctx, ownerID, filter.PropertyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewNotFoundError("Property")
	}

	records, err := s.paymentRepo.FindForProperty(ctx, ownerID, filter.PropertyID, nil, nil)
	if err != nil {
		return nil, err
	}

	resp := &ReminderListResponse{
		PropertyID:  filter.PropertyID,
		GeneratedAt: now,
		Reminders:   make([]ReminderResponse, 0),
	}
	for _, record := range records {
		if filter.RoomID != nil && record.RoomID != *filter.RoomID {
			continue
		}
		reminder, needed := s.policy.Classify(record, now)
		if !needed {
			continue
		}
		if filter.Kind != "" && reminder.Kind != filter.Kind {
			continue
		}

		switch reminder.Kind {
		case billing.ReminderKindDueSoon:
			resp.DueSoonCount++
		case billing.ReminderKindOverdue:
			resp.OverdueCount++
		default:
			resp.UnpaidCount++
		}
		resp.Reminders = append(resp.Reminders, s.toResponse(reminder))
	}

	s.logger.Debug("Reminders derived",
		zap.String("property_id", filter.PropertyID.String()),
		zap.Int("records", len(records)),
		zap.Int("reminders", len(resp.Reminders)))
	return resp, nil
}

func (s *ReminderService) toResponse(r billing.Reminder) ReminderResponse {
	return ReminderResponse{
		Kind:         r.Kind,
		Priority:     priorityOf(r),
		PaymentID:    r.PaymentID,
		RoomID:       r.RoomID,
		PropertyID:   r.PropertyID,
		TenantID:     r.TenantID,
		BillingMonth: r.BillingMonth,
		BillingYear:  r.BillingYear,
		DueDate:      formatDate(r.DueDate),
		DaysUntilDue: r.DaysUntilDue,
		Status:       r.Status,
		Outstanding:  r.Outstanding,
		Message:      s.messageFor(r),
	}
}

// messageFor renders the reminder text. Amounts are whole dong with Vietnamese digit grouping.
func (s *ReminderService) messageFor(r billing.Reminder) string {
	amount := r.Outstanding.Round(0).IntPart()
	switch r.Kind {
	case billing.ReminderKindOverdue:
		days := -r.DaysUntilDue
		if days <= 0 {
			return s.printer.Sprintf("Payment is due today, %d VND outstanding", amount)
		}
		return s.printer.Sprintf("Payment is %d %s overdue, %d VND outstanding", days, plural(days, "day", "days"), amount)
	case billing.ReminderKindDueSoon:
		if r.DaysUntilDue == 0 {
			return s.printer.Sprintf("Payment due today, %d VND outstanding", amount)
		}
		return s.printer.Sprintf("Payment due in %d %s, %d VND outstanding", r.DaysUntilDue, plural(r.DaysUntilDue, "day", "days"), amount)
	default:
		return s.printer.Sprintf("Payment not yet due, %d VND outstanding", amount)
	}
}

func priorityOf(r billing.Reminder) ReminderPriority {
	switch r.Kind {
	case billing.ReminderKindOverdue:
		if -r.DaysUntilDue > overdueEscalationDays {
			return ReminderPriorityHigh
		}
		return ReminderPriorityMedium
	case billing.ReminderKindDueSoon:
		return ReminderPriorityMedium
	default:
		return ReminderPriorityLow
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
