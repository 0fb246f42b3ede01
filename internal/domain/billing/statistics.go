package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatistics summarizes payment records of a property
type PaymentStatistics struct {
	TotalRecords      int
	TotalRevenue      decimal.Decimal
	PaidCount         int
	UnpaidCount       int // unpaid and partial, not yet overdue
	OverdueCount      int
	LatePaymentRate   decimal.Decimal // percent, two decimals
	OutstandingAmount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Summarize aggregates records using their derived status at time now.
// Revenue counts paid records only; outstanding covers every record that is not paid.
func Summarize(records []*PaymentRecord, now time.Time) PaymentStatistics {
	stats := PaymentStatistics{
		TotalRecords:      len(records),
		TotalRevenue:      decimal.Zero,
		LatePaymentRate:   decimal.Zero,
		OutstandingAmount: decimal.Zero,
	}

	for _, r := range records {
		switch r.EffectiveStatus(now) {
		case PaymentStatusPaid:
			stats.PaidCount++
			stats.TotalRevenue = stats.TotalRevenue.Add(r.PaidAmount)
			continue
		case PaymentStatusOverdue:
			stats.OverdueCount++
		default:
			stats.UnpaidCount++
		}
		stats.OutstandingAmount = stats.OutstandingAmount.Add(r.Outstanding())
	}

	if stats.TotalRecords > 0 {
		stats.LatePaymentRate = decimal.NewFromInt(int64(stats.OverdueCount)).
			Div(decimal.NewFromInt(int64(stats.TotalRecords))).
			Mul(hundred).
			Round(2)
	}
	return stats
}
