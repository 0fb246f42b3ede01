package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T) *PaymentRecord {
	t.Helper()
	room := newTestRoom()
	room.ID = uuid.New()
	room.OwnerID = uuid.New()
	room.PropertyID = uuid.New()
	tenantID := uuid.New()
	room.CurrentTenant = &TenantAssignment{
		TenantID:      &tenantID,
		MoveInDate:    date(2024, 1, 3),
		PaymentDueDay: 5,
	}

	period := NewPeriodResolver(5).Resolve(room.CurrentTenant.MoveInDate, date(2024, 3, 3), 5)
	record, err := NewGeneratedPaymentRecord(room, period, NewFeeCalculator(RateDefaults{}).InitialCharges(room))
	require.NoError(t, err)
	return record
}

func TestNewGeneratedPaymentRecord(t *testing.T) {
	record := newTestRecord(t)

	assert.Equal(t, date(2024, 3, 3), record.BillingPeriodStart)
	assert.Equal(t, date(2024, 4, 2), record.BillingPeriodEnd)
	assert.Equal(t, date(2024, 3, 5), record.DueDate)
	assert.Equal(t, 3, record.BillingMonth)
	assert.Equal(t, 2024, record.BillingYear)
	assert.True(t, record.TotalAmount.Equal(dec(3150000)))
	assert.Equal(t, PaymentStatusUnpaid, record.Status)
	assert.True(t, record.PaidAmount.IsZero())
	assert.NotNil(t, record.TenantID)
	assert.Equal(t, 1, record.GetVersion())
}

func TestNewPaymentRecord_Validation(t *testing.T) {
	valid := func() NewPaymentRecordParams {
		return NewPaymentRecordParams{
			OwnerID:    uuid.New(),
			RoomID:     uuid.New(),
			PropertyID: uuid.New(),
			Period: BillingPeriod{
				Start:   date(2024, 3, 3),
				End:     date(2024, 4, 2),
				DueDate: date(2024, 3, 5),
				Month:   3,
				Year:    2024,
			},
			Charges: ChargeBreakdown{RentalAmount: dec(100)},
		}
	}

	tests := []struct {
		name   string
		mutate func(p *NewPaymentRecordParams)
	}{
		{"missing owner", func(p *NewPaymentRecordParams) { p.OwnerID = uuid.Nil }},
		{"missing room", func(p *NewPaymentRecordParams) { p.RoomID = uuid.Nil }},
		{"missing property", func(p *NewPaymentRecordParams) { p.PropertyID = uuid.Nil }},
		{"month zero", func(p *NewPaymentRecordParams) { p.Period.Month = 0 }},
		{"month thirteen", func(p *NewPaymentRecordParams) { p.Period.Month = 13 }},
		{"year too early", func(p *NewPaymentRecordParams) { p.Period.Year = 1999 }},
		{"missing due date", func(p *NewPaymentRecordParams) { p.Period.DueDate = time.Time{} }},
		{"end before start", func(p *NewPaymentRecordParams) { p.Period.End = date(2024, 3, 1) }},
		{"negative rent", func(p *NewPaymentRecordParams) { p.Charges.RentalAmount = dec(-1) }},
		{"negative usage", func(p *NewPaymentRecordParams) { p.WaterUsage = dec(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid()
			tt.mutate(&params)
			_, err := NewPaymentRecord(params)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}

	t.Run("total is recomputed from charges", func(t *testing.T) {
		params := valid()
		params.Charges.TotalAmount = dec(999)
		record, err := NewPaymentRecord(params)
		require.NoError(t, err)
		assert.True(t, record.TotalAmount.Equal(dec(100)))
	})
}

func TestPaymentRecord_ApplyUsage(t *testing.T) {
	calc := NewFeeCalculator(RateDefaults{})
	room := newTestRoom()
	usage := Usage{ElectricityUsage: dec(50), WaterUsage: dec(10)}
	charges, err := calc.Calculate(room, usage)
	require.NoError(t, err)

	t.Run("replaces charges and keeps total consistent", func(t *testing.T) {
		record := newTestRecord(t)
		prev := dec(100)
		curr := dec(150)
		notes := "March readings"

		err := record.ApplyUsage(charges, usage, MeterReadings{PreviousElectricity: &prev, CurrentElectricity: &curr}, &notes)
		require.NoError(t, err)

		assert.True(t, record.TotalAmount.Equal(dec(3525000)))
		assert.True(t, record.TotalAmount.Equal(record.Sum()))
		assert.True(t, record.ElectricityUsage.Equal(dec(50)))
		assert.True(t, record.Readings.CurrentElectricity.Equal(curr))
		assert.Equal(t, "March readings", record.Notes)
	})

	t.Run("nil notes keep existing notes", func(t *testing.T) {
		record := newTestRecord(t)
		record.Notes = "keep"
		require.NoError(t, record.ApplyUsage(charges, usage, MeterReadings{}, nil))
		assert.Equal(t, "keep", record.Notes)
	})

	t.Run("paid record is immutable", func(t *testing.T) {
		record := newTestRecord(t)
		require.NoError(t, record.MarkPaid(dec(3150000), date(2024, 3, 4), PaymentMethodCash, ""))
		version := record.GetVersion()

		err := record.ApplyUsage(charges, usage, MeterReadings{}, nil)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.True(t, record.TotalAmount.Equal(dec(3150000)))
		assert.True(t, record.ElectricityUsage.IsZero())
		assert.Equal(t, version, record.GetVersion())
	})

	t.Run("negative usage rejected", func(t *testing.T) {
		record := newTestRecord(t)
		err := record.ApplyUsage(charges, Usage{ElectricityUsage: dec(-5)}, MeterReadings{}, nil)
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.True(t, record.TotalAmount.Equal(dec(3150000)))
	})
}

func TestPaymentRecord_MarkPaid(t *testing.T) {
	paidOn := date(2024, 3, 4)

	t.Run("full amount marks paid", func(t *testing.T) {
		record := newTestRecord(t)
		require.NoError(t, record.MarkPaid(dec(3150000), paidOn, PaymentMethodBankTransfer, "thanks"))

		assert.Equal(t, PaymentStatusPaid, record.Status)
		assert.True(t, record.PaidAmount.Equal(dec(3150000)))
		require.NotNil(t, record.PaidDate)
		assert.Equal(t, paidOn, *record.PaidDate)
		assert.Equal(t, PaymentMethodBankTransfer, record.PaymentMethod)
		assert.Equal(t, "thanks", record.Notes)
	})

	t.Run("overpayment marks paid", func(t *testing.T) {
		record := newTestRecord(t)
		require.NoError(t, record.MarkPaid(dec(4000000), paidOn, "", ""))
		assert.Equal(t, PaymentStatusPaid, record.Status)
	})

	t.Run("smaller amount marks partial", func(t *testing.T) {
		record := newTestRecord(t)
		require.NoError(t, record.MarkPaid(dec(2000000), paidOn, PaymentMethodCash, ""))
		assert.Equal(t, PaymentStatusPartial, record.Status)
		assert.True(t, record.Outstanding().Equal(dec(1150000)))
	})

	t.Run("amount replaces previous payment", func(t *testing.T) {
		record := newTestRecord(t)
		require.NoError(t, record.MarkPaid(dec(1000000), paidOn, "", ""))
		require.NoError(t, record.MarkPaid(dec(1000000), paidOn, "", ""))
		assert.True(t, record.PaidAmount.Equal(dec(1000000)))
		assert.Equal(t, PaymentStatusPartial, record.Status)
	})

	t.Run("zero date defaults to now", func(t *testing.T) {
		record := newTestRecord(t)
		before := time.Now()
		require.NoError(t, record.MarkPaid(dec(1), time.Time{}, "", ""))
		require.NotNil(t, record.PaidDate)
		assert.False(t, record.PaidDate.Before(before))
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		record := newTestRecord(t)
		err := record.MarkPaid(dec(-1), paidOn, "", "")
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Equal(t, PaymentStatusUnpaid, record.Status)
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		record := newTestRecord(t)
		err := record.MarkPaid(dec(1), paidOn, PaymentMethod("cheque"), "")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("paid stays paid long after the due date", func(t *testing.T) {
		record := newTestRecord(t)
		require.NoError(t, record.MarkPaid(dec(3150000), paidOn, "", ""))
		assert.Equal(t, PaymentStatusPaid, record.EffectiveStatus(date(2030, 1, 1)))
		assert.False(t, record.IsOverdue(date(2030, 1, 1)))
	})
}

func TestPaymentRecord_ResetToUnpaid(t *testing.T) {
	record := newTestRecord(t)
	require.NoError(t, record.MarkPaid(dec(3150000), date(2024, 3, 4), PaymentMethodCash, ""))

	record.ResetToUnpaid("wrong room")

	assert.Equal(t, PaymentStatusUnpaid, record.Status)
	assert.True(t, record.PaidAmount.IsZero())
	assert.Nil(t, record.PaidDate)
	assert.Empty(t, record.PaymentMethod)
	assert.Equal(t, "wrong room", record.Notes)
}

func TestPaymentRecord_SetDueDate(t *testing.T) {
	record := newTestRecord(t)

	require.NoError(t, record.SetDueDate(time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, date(2024, 3, 20), record.DueDate)

	assert.ErrorIs(t, record.SetDueDate(time.Time{}), shared.ErrValidation)
}

func TestPaymentRecord_EffectiveStatus(t *testing.T) {
	record := newTestRecord(t)

	assert.Equal(t, PaymentStatusUnpaid, record.EffectiveStatus(date(2024, 3, 5)))
	assert.Equal(t, PaymentStatusOverdue, record.EffectiveStatus(date(2024, 3, 6)))
	assert.True(t, record.IsOverdue(date(2024, 3, 6)))
}

func TestPaymentRecord_RefreshStatus(t *testing.T) {
	record := newTestRecord(t)

	assert.False(t, record.RefreshStatus(date(2024, 3, 4)))
	assert.True(t, record.RefreshStatus(date(2024, 3, 10)))
	assert.Equal(t, PaymentStatusOverdue, record.Status)

	require.NoError(t, record.SetDueDate(date(2024, 4, 30)))
	assert.True(t, record.RefreshStatus(date(2024, 3, 10)))
	assert.Equal(t, PaymentStatusUnpaid, record.Status)
}

func TestPaymentRecord_Outstanding(t *testing.T) {
	record := newTestRecord(t)
	assert.True(t, record.Outstanding().Equal(dec(3150000)))

	record.PaidAmount = decimal.NewFromInt(150000)
	assert.True(t, record.Outstanding().Equal(dec(3000000)))
}
