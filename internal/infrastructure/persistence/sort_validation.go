package persistence

import (
	"strings"
)

// SortWhitelist lists the columns a caller may order by. Anything else falls back to a default,
// so user input never reaches the ORDER BY clause unchecked.
type SortWhitelist map[string]bool

// PaymentRecordSortFields contains allowed sort fields for payment records
var PaymentRecordSortFields = SortWhitelist{
	"created_at":           true,
	"updated_at":           true,
	"due_date":             true,
	"billing_period_start": true,
	"billing_year":         true,
	"billing_month":        true,
	"total_amount":         true,
	"paid_amount":          true,
	"paid_date":            true,
	"status":               true,
}

// Field returns the trimmed field when allowed, otherwise fallback
func (w SortWhitelist) Field(field, fallback string) string {
	field = strings.TrimSpace(field)
	if w[field] {
		return field
	}
	return fallback
}

// OrderClause builds "<column> <ASC|DESC>". Direction defaults to DESC.
func (w SortWhitelist) OrderClause(field, dir, fallback string) string {
	return w.Field(field, fallback) + " " + sortDirection(dir)
}

func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}
