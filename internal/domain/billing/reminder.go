package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReminderKind classifies a payment record for reminder purposes
type ReminderKind string

const (
	ReminderKindDueSoon ReminderKind = "due_soon"
	ReminderKindOverdue ReminderKind = "overdue"
	ReminderKindUnpaid  ReminderKind = "unpaid"
)

// DefaultDueSoonDays is the default look-ahead window for due-soon reminders
const DefaultDueSoonDays = 3

// Reminder is a read-only projection of a payment record that still needs attention
type Reminder struct {
	Kind         ReminderKind
	PaymentID    uuid.UUID
	RoomID       uuid.UUID
	PropertyID   uuid.UUID
	TenantID     *uuid.UUID
	BillingMonth int
	BillingYear  int
	DueDate      time.Time
	DaysUntilDue int // negative when overdue
	Status       PaymentStatus
	Outstanding  decimal.Decimal
}

// ReminderPolicy decides which records deserve a reminder
type ReminderPolicy struct {
	DueSoonDays int
}

// NewReminderPolicy creates a policy; a non-positive window uses DefaultDueSoonDays
func NewReminderPolicy(dueSoonDays int) ReminderPolicy {
	if dueSoonDays <= 0 {
		dueSoonDays = DefaultDueSoonDays
	}
	return ReminderPolicy{DueSoonDays: dueSoonDays}
}

// Classify returns the reminder for a record, or false when the record needs none (it is paid).
// It never mutates the record.
func (p ReminderPolicy) Classify(record *PaymentRecord, now time.Time) (Reminder, bool) {
	status := record.EffectiveStatus(now)
	if status == PaymentStatusPaid {
		return Reminder{}, false
	}

	days := daysBetween(NormalizeDate(now), record.DueDate)
	reminder := Reminder{
		PaymentID:    record.ID,
		RoomID:       record.RoomID,
		PropertyID:   record.PropertyID,
		TenantID:     record.TenantID,
		BillingMonth: record.BillingMonth,
		BillingYear:  record.BillingYear,
		DueDate:      record.DueDate,
		DaysUntilDue: days,
		Status:       status,
		Outstanding:  record.Outstanding(),
	}

	switch {
	case status == PaymentStatusOverdue:
		reminder.Kind = ReminderKindOverdue
	case days >= 0 && days <= p.DueSoonDays:
		reminder.Kind = ReminderKindDueSoon
	default:
		reminder.Kind = ReminderKindUnpaid
	}
	return reminder, true
}

func daysBetween(from, to time.Time) int {
	return int(NormalizeDate(to).Sub(NormalizeDate(from)).Hours() / 24)
}
