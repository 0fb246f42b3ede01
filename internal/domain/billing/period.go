package billing

import (
	"time"
)

// DefaultPaymentDueDay is used when neither the tenant nor configuration specify a due day
const DefaultPaymentDueDay = 5

// BillingPeriod is one anniversary-aligned billing cycle
type BillingPeriod struct {
	Start   time.Time
	End     time.Time // inclusive: the day before the next anniversary
	DueDate time.Time
	Month   int
	Year    int
}

// PeriodResolver computes billing periods using the anniversary rule
type PeriodResolver struct {
	DefaultDueDay int
}

// NewPeriodResolver creates a resolver with the given fallback due day.
// Values outside 1-31 fall back to DefaultPaymentDueDay.
func NewPeriodResolver(defaultDueDay int) PeriodResolver {
	if defaultDueDay < 1 || defaultDueDay > 31 {
		defaultDueDay = DefaultPaymentDueDay
	}
	return PeriodResolver{DefaultDueDay: defaultDueDay}
}

// Resolve returns the billing period covering reference for a tenant who moved in on moveIn.
//
// The period starts on the move-in day-of-month of the reference month, or of the previous month
// when the reference day is before the move-in day. Days past the end of a month roll over
// into the next month the way time.Date normalizes them (moving in on the 31st gives a
// period starting 2024-03-31 for reference 2024-04-30, and 2024-05-31 for 2024-05-31).
//
// dueDay <= 0 uses the resolver's default. The due date is the due day of the start month,
// pushed one month forward if that would precede the start.
func (r PeriodResolver) Resolve(moveIn, reference time.Time, dueDay int) BillingPeriod {
	ref := NormalizeDate(reference)
	moveInDay := moveIn.Day()

	start := time.Date(ref.Year(), ref.Month(), moveInDay, 0, 0, 0, 0, time.UTC)
	if ref.Day() < moveInDay {
		start = time.Date(ref.Year(), ref.Month()-1, moveInDay, 0, 0, 0, 0, time.UTC)
	}

	end := time.Date(start.Year(), start.Month()+1, start.Day()-1, 0, 0, 0, 0, time.UTC)
	if start.Day() != moveInDay {
		// start already rolled over; anchor the end to the move-in day of the following month
		end = time.Date(start.Year(), start.Month(), moveInDay-1, 0, 0, 0, 0, time.UTC)
	}

	if dueDay <= 0 {
		dueDay = r.DefaultDueDay
	}
	if dueDay <= 0 {
		dueDay = DefaultPaymentDueDay
	}
	due := time.Date(start.Year(), start.Month(), dueDay, 0, 0, 0, 0, time.UTC)
	if due.Before(start) {
		due = time.Date(start.Year(), start.Month()+1, dueDay, 0, 0, 0, 0, time.UTC)
	}

	return BillingPeriod{
		Start:   start,
		End:     end,
		DueDate: due,
		Month:   int(start.Month()),
		Year:    start.Year(),
	}
}

// NormalizeDate truncates t to midnight UTC of its own calendar day
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
