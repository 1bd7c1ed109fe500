package interest

import (
	"testing"
	"time"

	"nftpool/core"
	"nftpool/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccrual() *Accrual {
	return New(Model{
		Rate:           number.Decimal("0.05"),
		Multiplier:     number.Decimal("0.1"),
		JumpMultiplier: number.Decimal("1"),
		Kink:           number.Decimal("0.8"),
	}, DefaultSecondsPerYear)
}

func TestBorrowRate(t *testing.T) {
	m := newTestAccrual().Model()

	assert.Equal(t, "0.05", m.BorrowRate(number.Decimal("0")).String())
	assert.Equal(t, "0.1", m.BorrowRate(number.Decimal("0.5")).String())
	// 0.05 + 0.8*0.1 + 0.1*1
	assert.Equal(t, "0.23", m.BorrowRate(number.Decimal("0.9")).String())
}

func TestUtilization(t *testing.T) {
	assert.True(t, Utilization(number.Decimal("0"), number.Decimal("0")).IsZero())
	assert.Equal(t, "0.25", Utilization(number.Decimal("25"), number.Decimal("75")).String())
}

func TestAccrueSameInstantIsNoop(t *testing.T) {
	a := newTestAccrual()
	start := time.Unix(1_700_000_000, 0)
	a.Start(start)

	now := start.Add(24 * time.Hour)
	first := a.Accrue(now, number.Decimal("0.5"))
	second := a.Accrue(now, number.Decimal("0.5"))

	assert.True(t, first.GreaterThan(number.One))
	assert.True(t, first.Equal(second))
}

func TestAccrueNotStarted(t *testing.T) {
	a := newTestAccrual()
	now := time.Unix(1_700_000_000, 0)

	assert.True(t, a.Accrue(now, number.Decimal("0.5")).Equal(number.One))
	assert.Equal(t, now, a.AccruedAt())
}

func TestPendingDoesNotMutate(t *testing.T) {
	a := newTestAccrual()
	start := time.Unix(1_700_000_000, 0)
	a.Start(start)

	pending := a.Pending(start.Add(time.Hour*24*365), number.Decimal("0"))
	assert.True(t, a.Inflator().Equal(number.One))
	// continuous-ish compounding of 5% over a year
	assert.True(t, pending.GreaterThan(number.Decimal("1.0512")))
	assert.True(t, pending.LessThan(number.Decimal("1.0513")))

	assert.True(t, pending.Equal(a.Accrue(start.Add(time.Hour*24*365), number.Decimal("0"))))
}

func TestAccrueMonotonic(t *testing.T) {
	a := newTestAccrual()
	start := time.Unix(1_700_000_000, 0)
	a.Start(start)

	borrower := &core.Borrower{
		Debt:             number.Decimal("1000"),
		InflatorSnapshot: a.Inflator(),
	}

	prev := borrower.Debt
	now := start
	for i := 0; i < 50; i++ {
		now = now.Add(time.Duration(i*997) * time.Second)
		inflator := a.Accrue(now, number.Decimal("0.3"))

		debt := SyncBorrowerDebt(borrower, inflator)
		require.True(t, debt.GreaterThanOrEqual(prev), "debt decreased at step %d", i)
		require.True(t, borrower.InflatorSnapshot.Equal(inflator))
		prev = debt
	}
}

func TestSyncRounding(t *testing.T) {
	amount := number.Decimal("1")
	snapshot := number.Decimal("3")
	inflator := number.Decimal("4")

	assert.Equal(t, "1.333333333333333334", Sync(amount, snapshot, inflator, true).String())
	assert.Equal(t, "1.333333333333333333", Sync(amount, snapshot, inflator, false).String())
	assert.Equal(t, "1", Sync(amount, number.Decimal("0"), inflator, true).String())
}
