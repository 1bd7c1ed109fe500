package interest

import (
	"nftpool/core"
	"nftpool/pkg/number"

	"github.com/shopspring/decimal"
)

// Model borrow rate curve, all rates per year
type Model struct {
	// Rate pool interest rate, the borrow rate at zero utilization
	Rate decimal.Decimal
	// The multiplier of utilization rate that gives the slope of the interest rate
	Multiplier decimal.Decimal
	// The multiplier after hitting the kink
	JumpMultiplier decimal.Decimal
	Kink           decimal.Decimal
}

// NewModel model from config with the pool interest rate
func NewModel(rate decimal.Decimal, cfg core.RateModel) Model {
	return Model{
		Rate:           rate,
		Multiplier:     cfg.Multiplier,
		JumpMultiplier: cfg.JumpMultiplier,
		Kink:           cfg.Kink,
	}
}

// Utilization utilization = debt / (debt + deposit)
func Utilization(debt, deposit decimal.Decimal) decimal.Decimal {
	total := debt.Add(deposit)
	if !total.IsPositive() {
		return decimal.Zero
	}

	return number.WadDiv(debt, total)
}

// BorrowRate annual borrow rate at utilization
func (m Model) BorrowRate(utilization decimal.Decimal) decimal.Decimal {
	if m.Kink.IsZero() || utilization.LessThanOrEqual(m.Kink) {
		return number.Ray(utilization.Mul(m.Multiplier).Add(m.Rate))
	}

	normalRate := m.Kink.Mul(m.Multiplier).Add(m.Rate)
	excessUtilRate := utilization.Sub(m.Kink)
	return number.Ray(excessUtilRate.Mul(m.JumpMultiplier).Add(normalRate))
}
