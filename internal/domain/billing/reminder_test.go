package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderPolicy_Classify(t *testing.T) {
	policy := NewReminderPolicy(3)

	tests := []struct {
		name     string
		now      time.Time
		wantKind ReminderKind
		wantDays int
	}{
		{"due today", date(2024, 3, 5), ReminderKindDueSoon, 0},
		{"due in three days", date(2024, 3, 2), ReminderKindDueSoon, 3},
		{"due later", date(2024, 2, 20), ReminderKindUnpaid, 14},
		{"past due", date(2024, 3, 8), ReminderKindOverdue, -3},
		{"afternoon of due day", time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC), ReminderKindOverdue, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := newTestRecord(t)
			reminder, ok := policy.Classify(record, tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, reminder.Kind)
			assert.Equal(t, tt.wantDays, reminder.DaysUntilDue)
			assert.Equal(t, record.ID, reminder.PaymentID)
			assert.True(t, reminder.Outstanding.Equal(dec(3150000)))
		})
	}

	t.Run("paid records need no reminder", func(t *testing.T) {
		record := newTestRecord(t)
		require.NoError(t, record.MarkPaid(dec(3150000), date(2024, 3, 1), PaymentMethodCash, ""))
		_, ok := policy.Classify(record, date(2024, 4, 1))
		assert.False(t, ok)
	})

	t.Run("classification does not mutate the record", func(t *testing.T) {
		record := newTestRecord(t)
		_, ok := policy.Classify(record, date(2024, 4, 1))
		require.True(t, ok)
		assert.Equal(t, PaymentStatusUnpaid, record.Status)
	})
}

func TestNewReminderPolicy_Default(t *testing.T) {
	assert.Equal(t, DefaultDueSoonDays, NewReminderPolicy(0).DueSoonDays)
	assert.Equal(t, 7, NewReminderPolicy(7).DueSoonDays)
}
