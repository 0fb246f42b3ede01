package billing

import (
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Fallback utility unit prices (VND) applied when a room has no price configured
var (
	DefaultElectricityUnitPrice = decimal.NewFromInt(3000)
	DefaultWaterUnitPrice       = decimal.NewFromInt(20000)
)

// RateDefaults holds the fallback unit prices used by the fee calculator
type RateDefaults struct {
	ElectricityUnitPrice decimal.Decimal
	WaterUnitPrice       decimal.Decimal
}

// DefaultRateDefaults returns the standard fallback unit prices
func DefaultRateDefaults() RateDefaults {
	return RateDefaults{
		ElectricityUnitPrice: DefaultElectricityUnitPrice,
		WaterUnitPrice:       DefaultWaterUnitPrice,
	}
}

// Usage is metered consumption for one billing period
type Usage struct {
	ElectricityUsage decimal.Decimal
	WaterUsage       decimal.Decimal
	Adjustments      decimal.Decimal // may be negative
}

// Validate rejects negative consumption
func (u Usage) Validate() error {
	if u.ElectricityUsage.IsNegative() {
		return shared.NewValidationError("Electricity usage cannot be negative")
	}
	if u.WaterUsage.IsNegative() {
		return shared.NewValidationError("Water usage cannot be negative")
	}
	return nil
}

// ChargeBreakdown is the itemized amount of a bill
type ChargeBreakdown struct {
	RentalAmount      decimal.Decimal `json:"rental_amount"`
	ElectricityAmount decimal.Decimal `json:"electricity_amount"`
	WaterAmount       decimal.Decimal `json:"water_amount"`
	GarbageAmount     decimal.Decimal `json:"garbage_amount"`
	ParkingAmount     decimal.Decimal `json:"parking_amount"`
	Adjustments       decimal.Decimal `json:"adjustments"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// Sum returns the five charges plus adjustments
func (b ChargeBreakdown) Sum() decimal.Decimal {
	return b.RentalAmount.
		Add(b.ElectricityAmount).
		Add(b.WaterAmount).
		Add(b.GarbageAmount).
		Add(b.ParkingAmount).
		Add(b.Adjustments)
}

// FeeCalculator computes itemized charges from room configuration and usage
type FeeCalculator struct {
	rates RateDefaults
}

// NewFeeCalculator creates a calculator. Zero rates fall back to the standard defaults.
func NewFeeCalculator(rates RateDefaults) *FeeCalculator {
	if rates.ElectricityUnitPrice.IsZero() {
		rates.ElectricityUnitPrice = DefaultElectricityUnitPrice
	}
	if rates.WaterUnitPrice.IsZero() {
		rates.WaterUnitPrice = DefaultWaterUnitPrice
	}
	return &FeeCalculator{rates: rates}
}

// Rates returns the fallback unit prices in effect
func (c *FeeCalculator) Rates() RateDefaults {
	return c.rates
}

// Calculate computes the full breakdown for a room and its metered usage
func (c *FeeCalculator) Calculate(room *RoomConfiguration, usage Usage) (ChargeBreakdown, error) {
	if err := usage.Validate(); err != nil {
		return ChargeBreakdown{}, err
	}

	breakdown := ChargeBreakdown{
		RentalAmount:      room.RentalPrice,
		ElectricityAmount: usage.ElectricityUsage.Mul(c.electricityPrice(room)),
		WaterAmount:       usage.WaterUsage.Mul(c.waterPrice(room)),
		GarbageAmount:     room.GarbageFee,
		ParkingAmount:     room.ParkingFee,
		Adjustments:       usage.Adjustments,
	}
	breakdown.TotalAmount = breakdown.Sum()
	return breakdown, nil
}

// InitialCharges returns the charge generated at the start of a period:
// rent and fixed fees only, utilities zero until usage is recorded.
func (c *FeeCalculator) InitialCharges(room *RoomConfiguration) ChargeBreakdown {
	breakdown := ChargeBreakdown{
		RentalAmount:      room.RentalPrice,
		ElectricityAmount: decimal.Zero,
		WaterAmount:       decimal.Zero,
		GarbageAmount:     room.GarbageFee,
		ParkingAmount:     room.ParkingFee,
		Adjustments:       decimal.Zero,
	}
	breakdown.TotalAmount = breakdown.Sum()
	return breakdown
}

func (c *FeeCalculator) electricityPrice(room *RoomConfiguration) decimal.Decimal {
	if room.ElectricityUnitPrice.IsZero() {
		return c.rates.ElectricityUnitPrice
	}
	return room.ElectricityUnitPrice
}

func (c *FeeCalculator) waterPrice(room *RoomConfiguration) decimal.Decimal {
	if room.WaterUnitPrice.IsZero() {
		return c.rates.WaterUnitPrice
	}
	return room.WaterUnitPrice
}
