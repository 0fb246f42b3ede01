package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/application/payment"
	"github.com/shopspring/decimal"
)

// toDecimalPtr converts an optional float64 to a *decimal.Decimal
func toDecimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// toDecimal converts a float64 to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// parseDate parses a calendar date already checked by the datetime binding
func parseDate(s string) time.Time {
	t, _ := time.Parse(payment.DateLayout, s)
	return t
}

// parseDatePtr parses an optional calendar date; empty means absent
func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseDate(s)
	return &t
}

// parseUUIDPtr parses an optional UUID already checked by the uuid binding
func parseUUIDPtr(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
