package bucket

import (
	"testing"

	"nftpool/core"
	"nftpool/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lenderA = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	lenderB = common.HexToAddress("0x00000000000000000000000000000000000000b1")
)

type claimableCounts map[string]int

func (c claimableCounts) ClaimableCount(price decimal.Decimal) int {
	return c[price.String()]
}

func newTestLedger(t *testing.T) (*Ledger, claimableCounts) {
	ladder, err := NewLadderFromPrices(
		number.Decimal("40"),
		number.Decimal("60"),
		number.Decimal("80"),
	)
	require.NoError(t, err)

	counts := claimableCounts{}
	return New(ladder, counts), counts
}

func TestDepositWithdraw(t *testing.T) {
	l, _ := newTestLedger(t)
	price := number.Decimal("60")

	_, err := l.Deposit(lenderA, number.Decimal("61"), number.Decimal("1"))
	assert.ErrorIs(t, err, core.ErrInvalidPrice)
	_, err = l.Deposit(lenderA, price, decimal.Zero)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	lp, err := l.Deposit(lenderA, price, number.Decimal("1000"))
	require.NoError(t, err)
	assert.Equal(t, "1000", lp.String())

	lp, err = l.Deposit(lenderB, price, number.Decimal("500"))
	require.NoError(t, err)
	assert.Equal(t, "500", lp.String())

	amount, burned, err := l.Withdraw(lenderB, price, number.Decimal("10000"))
	require.NoError(t, err)
	assert.Equal(t, "500", amount.String())
	assert.Equal(t, "500", burned.String())
	assert.True(t, l.Lender(price, lenderB).IsZero())

	_, _, err = l.Withdraw(lenderB, price, number.Decimal("1"))
	assert.ErrorIs(t, err, core.ErrInsufficientLPBalance)
	_, _, err = l.Withdraw(lenderB, number.Decimal("40"), number.Decimal("1"))
	assert.ErrorIs(t, err, core.ErrPriceBucketEmpty)

	require.NoError(t, l.CheckInvariants())
}

func TestWithdrawPrunesEmptyBucket(t *testing.T) {
	l, _ := newTestLedger(t)
	price := number.Decimal("40")

	_, err := l.Deposit(lenderA, price, number.Decimal("10"))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	_, _, err = l.Withdraw(lenderA, price, number.Decimal("10"))
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestSourceLiquidity(t *testing.T) {
	l, _ := newTestLedger(t)
	price := number.Decimal("60")

	_, err := l.SourceLiquidity(price, number.Decimal("1"))
	assert.ErrorIs(t, err, core.ErrPriceBucketEmpty)

	_, err = l.Deposit(lenderA, price, number.Decimal("150"))
	require.NoError(t, err)

	_, err = l.SourceLiquidity(price, number.Decimal("151"))
	assert.ErrorIs(t, err, core.ErrInsufficientLiquidity)

	b, _ := l.Get(price)
	assert.Equal(t, "150", b.Deposit.String())

	amount, err := l.SourceLiquidity(price, number.Decimal("100"))
	require.NoError(t, err)
	assert.Equal(t, "100", amount.String())
	assert.Equal(t, "50", b.Deposit.String())
}

func TestClaim(t *testing.T) {
	l, counts := newTestLedger(t)
	price := number.Decimal("60")

	_, err := l.Deposit(lenderA, price, number.Decimal("100"))
	require.NoError(t, err)
	_, err = l.Deposit(lenderB, price, number.Decimal("100"))
	require.NoError(t, err)

	// a purchase of 100 paid with two ids worth 60 each
	_, err = l.SourceLiquidity(price, number.Decimal("100"))
	require.NoError(t, err)
	counts[price.String()] = 2

	// value 100 + 120 over 200 lp
	rate, ok := l.Get(price)
	require.True(t, ok)
	exchange, _ := rate.ExchangeRate(2)
	assert.Equal(t, "1.1", exchange.String())

	_, err = l.Claim(lenderA, price, 3)
	assert.ErrorIs(t, err, core.ErrTokenNotClaimable)
	_, err = l.Claim(common.Address{}, price, 1)
	assert.ErrorIs(t, err, core.ErrInsufficientLPBalance)

	lp, err := l.Claim(lenderA, price, 1)
	require.NoError(t, err)
	// ceil(60 * 200 / 220)
	assert.Equal(t, "54.545454545454545455", lp.String())
	counts[price.String()] = 1

	b, _ := l.Get(price)
	assert.True(t, b.LPClaimed.Equal(lp))
	assert.True(t, b.LPClaimed.LessThanOrEqual(b.LPMinted))
	require.NoError(t, l.CheckInvariants())

	// lender A only holds 45.45 lp, worth 50 < 60
	_, err = l.Claim(lenderA, price, 1)
	assert.ErrorIs(t, err, core.ErrInsufficientLPBalance)
}

func TestClaimWithoutShares(t *testing.T) {
	l, counts := newTestLedger(t)
	counts["60"] = 1

	_, err := l.Claim(lenderA, number.Decimal("60"), 1)
	assert.ErrorIs(t, err, core.ErrInsufficientLPBalance)
}

func TestDrawAndRepayDebt(t *testing.T) {
	l, _ := newTestLedger(t)

	for _, p := range []string{"40", "60", "80"} {
		_, err := l.Deposit(lenderA, number.Decimal(p), number.Decimal("100"))
		require.NoError(t, err)
	}

	hpb, ok := l.HPB()
	require.True(t, ok)
	assert.Equal(t, "80", hpb.String())
	_, ok = l.LUP()
	assert.False(t, ok)

	assert.ErrorIs(t, l.DrawDebt(number.Decimal("201"), number.Decimal("60")), core.ErrInsufficientLiquidity)
	require.NoError(t, l.DrawDebt(number.Decimal("150"), number.Decimal("60")))

	lup, ok := l.LUP()
	require.True(t, ok)
	assert.Equal(t, "60", lup.String())
	assert.Equal(t, "60", l.PoolPrice().String())

	deposit, debt := l.Totals()
	assert.Equal(t, "150", deposit.String())
	assert.Equal(t, "150", debt.String())

	// interest accrues to the buckets
	l.Sync(number.Decimal("1.1"))
	_, debt = l.Totals()
	assert.Equal(t, "165", debt.String())

	l.RepayDebt(number.Decimal("55"))
	b60, _ := l.Get(number.Decimal("60"))
	assert.True(t, b60.Debt.IsZero())
	assert.Equal(t, "105", b60.Deposit.String())

	l.RepayDebt(number.Decimal("110.5"))
	b80, _ := l.Get(number.Decimal("80"))
	assert.True(t, b80.Debt.IsZero())
	assert.Equal(t, "110.5", b80.Deposit.String())

	_, ok = l.LUP()
	assert.False(t, ok)
	require.NoError(t, l.CheckInvariants())
}

func TestSnapshotRestore(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.Deposit(lenderA, number.Decimal("60"), number.Decimal("100"))
	require.NoError(t, err)
	_, err = l.Deposit(lenderB, number.Decimal("80"), number.Decimal("50"))
	require.NoError(t, err)
	require.NoError(t, l.DrawDebt(number.Decimal("70"), number.Decimal("40")))

	snapshot := l.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "60", snapshot[0].Price.String())

	restored, _ := newTestLedger(t)
	require.NoError(t, restored.Restore(number.One, snapshot))
	assert.Equal(t, snapshot, restored.Snapshot())
	assert.Equal(t, "100", restored.Lender(number.Decimal("60"), lenderA).String())
}

func TestDrawPrice(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.Deposit(lenderA, number.Decimal("80"), number.Decimal("100"))
	require.NoError(t, err)
	_, err = l.Deposit(lenderA, number.Decimal("40"), number.Decimal("100"))
	require.NoError(t, err)

	price, err := l.DrawPrice(number.Decimal("100"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "80", price.String())

	price, err = l.DrawPrice(number.Decimal("101"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "40", price.String())

	_, err = l.DrawPrice(number.Decimal("101"), number.Decimal("60"))
	assert.ErrorIs(t, err, core.ErrInsufficientLiquidity)

	// nothing moved
	_, debt := l.Totals()
	assert.True(t, debt.IsZero())
}
