package interest

import (
	"time"

	"nftpool/core"
	"nftpool/pkg/number"

	"github.com/shopspring/decimal"
)

// DefaultSecondsPerYear 365 days
const DefaultSecondsPerYear int64 = 365 * 24 * 60 * 60

// Accrual pool inflator, compounded lazily
//
// The inflator starts at 1 and only grows. Debts are stored together with the
// inflator they were last rescaled with and must be synced through Sync before
// they are read or written.
type Accrual struct {
	model          Model
	secondsPerYear int64
	inflator       decimal.Decimal
	accruedAt      time.Time
}

// New new accrual
func New(model Model, secondsPerYear int64) *Accrual {
	if secondsPerYear <= 0 {
		secondsPerYear = DefaultSecondsPerYear
	}

	return &Accrual{
		model:          model,
		secondsPerYear: secondsPerYear,
		inflator:       number.One,
	}
}

// Model rate model
func (a *Accrual) Model() Model {
	return a.model
}

// SetRate set the pool interest rate
func (a *Accrual) SetRate(rate decimal.Decimal) {
	a.model.Rate = rate
}

// Inflator current inflator, ray
func (a *Accrual) Inflator() decimal.Decimal {
	return a.inflator
}

// AccruedAt time of the last accrual
func (a *Accrual) AccruedAt() time.Time {
	return a.accruedAt
}

// Restore reset inflator and accrual time
func (a *Accrual) Restore(inflator decimal.Decimal, accruedAt time.Time) {
	if !inflator.IsPositive() {
		inflator = number.One
	}

	a.inflator = inflator
	a.accruedAt = accruedAt
}

// Start marks now as the beginning of accrual, the inflator is kept
func (a *Accrual) Start(now time.Time) {
	a.accruedAt = now
}

// Accrue advance the inflator to now at the rate given by utilization
//
// Calling it twice at the same instant is a no-op.
func (a *Accrual) Accrue(now time.Time, utilization decimal.Decimal) decimal.Decimal {
	if a.accruedAt.IsZero() {
		a.accruedAt = now
		return a.inflator
	}

	if elapsed := a.elapsed(now); elapsed > 0 {
		a.inflator = number.Ray(a.inflator.Mul(a.Factor(elapsed, utilization)))
		a.accruedAt = now
	}

	return a.inflator
}

// Pending the inflator Accrue would produce at now, without changing state
func (a *Accrual) Pending(now time.Time, utilization decimal.Decimal) decimal.Decimal {
	if a.accruedAt.IsZero() {
		return a.inflator
	}

	if elapsed := a.elapsed(now); elapsed > 0 {
		return number.Ray(a.inflator.Mul(a.Factor(elapsed, utilization)))
	}

	return a.inflator
}

// Factor compounding factor over elapsed seconds
// factor = (1 + borrow_rate / seconds_per_year) ^ elapsed
func (a *Accrual) Factor(elapsed int64, utilization decimal.Decimal) decimal.Decimal {
	if elapsed <= 0 {
		return number.One
	}

	rate := a.model.BorrowRate(utilization)
	if !rate.IsPositive() {
		return number.One
	}

	perSecond := number.RayDiv(rate, decimal.NewFromInt(a.secondsPerYear))
	return number.RayPow(number.One.Add(perSecond), uint64(elapsed))
}

func (a *Accrual) elapsed(now time.Time) int64 {
	return int64(now.Sub(a.accruedAt) / time.Second)
}

// Sync rescale amount from the snapshot inflator to inflator
// amount = amount * inflator / snapshot
//
// Borrower debt rounds up and lender side debt rounds down, so the pool never
// owes more than it is owed.
func Sync(amount, snapshot, inflator decimal.Decimal, roundUp bool) decimal.Decimal {
	if amount.IsZero() || !snapshot.IsPositive() || snapshot.Equal(inflator) {
		return amount
	}

	if roundUp {
		return number.MulDivCeil(amount, inflator, snapshot, number.WadPrecision)
	}

	return number.MulDiv(amount, inflator, snapshot, number.WadPrecision)
}

// SyncBorrowerDebt rescale the borrower debt to inflator, the debt and its
// snapshot are always updated together
func SyncBorrowerDebt(b *core.Borrower, inflator decimal.Decimal) decimal.Decimal {
	b.Debt = Sync(b.Debt, b.InflatorSnapshot, inflator, true)
	b.InflatorSnapshot = inflator
	return b.Debt
}
