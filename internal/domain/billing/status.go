package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle status of a payment record
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that automatic reclassification never touches
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid
}

// DeriveStatus computes the read-time status of a record.
//
//   - paid is returned unchanged
//   - a due date before now yields overdue
//   - a stored overdue whose due date moved into the future falls back to partial or unpaid
//   - anything else is returned as stored
func DeriveStatus(stored PaymentStatus, dueDate time.Time, paidAmount decimal.Decimal, now time.Time) PaymentStatus {
	if stored.IsTerminal() {
		return stored
	}
	if dueDate.Before(now) {
		return PaymentStatusOverdue
	}
	if stored == PaymentStatusOverdue {
		if paidAmount.IsPositive() {
			return PaymentStatusPartial
		}
		return PaymentStatusUnpaid
	}
	return stored
}

// ParseStatuses parses a comma-separated status list such as "unpaid,overdue".
// Unknown values are reported through the second return value.
func ParseStatuses(raw string) ([]PaymentStatus, []string) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var statuses []PaymentStatus
	var invalid []string
	for _, part := range strings.Split(raw, ",") {
		s := PaymentStatus(strings.TrimSpace(part))
		if s == "" {
			continue
		}
		if !s.IsValid() {
			invalid = append(invalid, string(s))
			continue
		}
		statuses = append(statuses, s)
	}
	return statuses, invalid
}
