package bucket

import (
	"fmt"

	"nftpool/core"
	"nftpool/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

// ClaimableCounter number of claimable collateral ids held at a price
type ClaimableCounter interface {
	ClaimableCount(price decimal.Decimal) int
}

// Ledger price ordered buckets
//
// Bucket debt is kept in sync with the pool inflator through Sync, which the
// caller runs right after accruing interest and before any other call.
type Ledger struct {
	ladder    *Ladder
	tree      *btree.BTree
	claimable ClaimableCounter
	inflator  decimal.Decimal
}

// New empty ledger
func New(ladder *Ladder, claimable ClaimableCounter) *Ledger {
	return &Ledger{
		ladder:    ladder,
		tree:      btree.New(32),
		claimable: claimable,
		inflator:  number.One,
	}
}

// Ladder price ladder
func (l *Ledger) Ladder() *Ladder {
	return l.ladder
}

// Len number of live buckets
func (l *Ledger) Len() int {
	return l.tree.Len()
}

func (l *Ledger) get(price decimal.Decimal) *Bucket {
	if item := l.tree.Get(pivot(price)); item != nil {
		return item.(*Bucket)
	}

	return nil
}

// Get bucket at price
func (l *Ledger) Get(price decimal.Decimal) (*Bucket, bool) {
	b := l.get(price)
	return b, b != nil
}

// Ascend iterates buckets from the lowest price up until fn returns false
func (l *Ledger) Ascend(fn func(b *Bucket) bool) {
	l.tree.Ascend(func(i btree.Item) bool {
		return fn(i.(*Bucket))
	})
}

// Descend iterates buckets from the highest price down until fn returns false
func (l *Ledger) Descend(fn func(b *Bucket) bool) {
	l.tree.Descend(func(i btree.Item) bool {
		return fn(i.(*Bucket))
	})
}

// Sync rescale the debt of every bucket to inflator
func (l *Ledger) Sync(inflator decimal.Decimal) {
	l.inflator = inflator
	l.Ascend(func(b *Bucket) bool {
		b.sync(inflator)
		return true
	})
}

func (l *Ledger) claimableAt(price decimal.Decimal) int {
	if l.claimable == nil {
		return 0
	}

	return l.claimable.ClaimableCount(price)
}

func (l *Ledger) prune(b *Bucket, claimable int) {
	if b.empty(claimable) {
		l.tree.Delete(b)
	}
}

// Deposit adds quote token at price, returns lp minted
//
// The first deposit mints lp 1:1, later ones at the bucket exchange rate
// rounded down.
func (l *Ledger) Deposit(lender common.Address, price, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := core.Require(l.ladder.Contains(price), core.ErrInvalidPrice); err != nil {
		return decimal.Zero, err
	}

	amount = number.Wad(amount)
	if err := core.Require(amount.IsPositive(), core.ErrInvalidAmount); err != nil {
		return decimal.Zero, err
	}

	b := l.get(price)
	created := b == nil
	if created {
		b = newBucket(price)
		b.InflatorSnapshot = l.inflator
	}

	lp := amount
	if b.LPOutstanding.IsPositive() {
		if value := b.Value(l.claimableAt(price)); value.IsPositive() {
			lp = number.MulDiv(amount, b.LPOutstanding, value, number.WadPrecision)
		}
	}

	if err := core.Require(lp.IsPositive(), core.ErrInvalidAmount); err != nil {
		return decimal.Zero, err
	}

	b.Deposit = b.Deposit.Add(amount)
	b.mint(lender, lp)

	if created {
		l.tree.ReplaceOrInsert(b)
	}

	return lp, nil
}

// Withdraw removes up to maxAmount of the lender's quote token at price,
// bounded by the lender's share and the bucket's undrawn deposit
func (l *Ledger) Withdraw(lender common.Address, price, maxAmount decimal.Decimal) (amount, lp decimal.Decimal, err error) {
	if err := core.Require(maxAmount.IsPositive(), core.ErrInvalidAmount); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	b := l.get(price)
	if b == nil {
		return decimal.Zero, decimal.Zero, core.ErrPriceBucketEmpty
	}

	balance := b.Lender(lender)
	if !balance.IsPositive() {
		return decimal.Zero, decimal.Zero, core.ErrInsufficientLPBalance
	}

	claimable := l.claimableAt(price)
	value := b.Value(claimable)
	worth := number.MulDiv(balance, value, b.LPOutstanding, number.WadPrecision)

	amount = decimal.Min(number.Wad(maxAmount), worth, b.Deposit)
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, core.ErrInsufficientLiquidity
	}

	lp = number.MulDivCeil(amount, b.LPOutstanding, value, number.WadPrecision)
	if lp.GreaterThan(balance) {
		lp = balance
	}

	b.Deposit = b.Deposit.Sub(amount)
	b.burn(lender, lp)
	l.prune(b, claimable)
	return amount, lp, nil
}

// CheckSource validates that the bucket at price can supply amount
func (l *Ledger) CheckSource(price, amount decimal.Decimal) error {
	if err := core.Require(amount.IsPositive(), core.ErrInvalidAmount); err != nil {
		return err
	}

	b := l.get(price)
	if b == nil || !b.Deposit.IsPositive() {
		return core.ErrPriceBucketEmpty
	}

	return core.Require(b.Deposit.GreaterThanOrEqual(amount), core.ErrInsufficientLiquidity)
}

// SourceLiquidity draws amount of quote token out of the bucket at price,
// all or nothing
func (l *Ledger) SourceLiquidity(price, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := l.CheckSource(price, amount); err != nil {
		return decimal.Zero, err
	}

	b := l.get(price)
	b.Deposit = b.Deposit.Sub(amount)
	return amount, nil
}

// ClaimCost lp the claimant burns for count claimable ids at price, rounded up
func (l *Ledger) ClaimCost(claimant common.Address, price decimal.Decimal, count int) (decimal.Decimal, error) {
	b := l.get(price)
	if b == nil || !b.LPOutstanding.IsPositive() {
		return decimal.Zero, core.ErrInsufficientLPBalance
	}

	claimable := l.claimableAt(price)
	if count <= 0 || count > claimable {
		return decimal.Zero, core.ErrTokenNotClaimable
	}

	cost := price.Mul(decimal.NewFromInt(int64(count)))
	lp := number.MulDivCeil(cost, b.LPOutstanding, b.Value(claimable), number.WadPrecision)
	if lp.GreaterThan(b.LPOutstanding) {
		lp = b.LPOutstanding
	}

	if b.Lender(claimant).LessThan(lp) {
		return decimal.Zero, core.ErrInsufficientLPBalance
	}

	return lp, nil
}

// Claim burns the claimant's lp for count claimable ids at price. It runs
// while the ids are still held in the claimable set.
func (l *Ledger) Claim(claimant common.Address, price decimal.Decimal, count int) (decimal.Decimal, error) {
	lp, err := l.ClaimCost(claimant, price, count)
	if err != nil {
		return decimal.Zero, err
	}

	b := l.get(price)
	b.burn(claimant, lp)
	b.LPClaimed = b.LPClaimed.Add(lp)
	l.prune(b, l.claimableAt(price)-count)
	return lp, nil
}

// Available deposit lendable from buckets priced at or above limitPrice
func (l *Ledger) Available(limitPrice decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	l.Descend(func(b *Bucket) bool {
		if b.Price.LessThan(limitPrice) {
			return false
		}

		total = total.Add(b.Deposit)
		return true
	})

	return total
}

// DrawPrice lowest bucket price DrawDebt would touch for amount
func (l *Ledger) DrawPrice(amount, limitPrice decimal.Decimal) (decimal.Decimal, error) {
	if err := core.Require(amount.IsPositive(), core.ErrInvalidAmount); err != nil {
		return decimal.Zero, err
	}

	remaining := amount
	price := decimal.Zero
	l.Descend(func(b *Bucket) bool {
		if !remaining.IsPositive() || b.Price.LessThan(limitPrice) {
			return false
		}

		if b.Deposit.IsPositive() {
			remaining = remaining.Sub(decimal.Min(b.Deposit, remaining))
			price = b.Price
		}

		return true
	})

	if remaining.IsPositive() {
		return decimal.Zero, core.ErrInsufficientLiquidity
	}

	return price, nil
}

// DrawDebt lends amount out of the highest priced buckets down to limitPrice
func (l *Ledger) DrawDebt(amount, limitPrice decimal.Decimal) error {
	if err := core.Require(amount.IsPositive(), core.ErrInvalidAmount); err != nil {
		return err
	}

	if err := core.Require(l.Available(limitPrice).GreaterThanOrEqual(amount), core.ErrInsufficientLiquidity); err != nil {
		return err
	}

	remaining := amount
	l.Descend(func(b *Bucket) bool {
		if !remaining.IsPositive() || b.Price.LessThan(limitPrice) {
			return false
		}

		take := decimal.Min(b.Deposit, remaining)
		b.Deposit = b.Deposit.Sub(take)
		b.Debt = b.Debt.Add(take)
		remaining = remaining.Sub(take)
		return true
	})

	return nil
}

// RepayDebt returns amount to the buckets lowest price first
//
// Borrower debt rounds up and bucket debt rounds down, whatever is left once
// every bucket debt is cleared goes to the deposit of the last bucket repaid.
func (l *Ledger) RepayDebt(amount decimal.Decimal) {
	remaining := amount
	var last *Bucket

	l.Ascend(func(b *Bucket) bool {
		if !b.Debt.IsPositive() {
			return true
		}

		take := decimal.Min(b.Debt, remaining)
		b.Debt = b.Debt.Sub(take)
		b.Deposit = b.Deposit.Add(take)
		remaining = remaining.Sub(take)
		last = b
		return remaining.IsPositive()
	})

	if !remaining.IsPositive() {
		return
	}

	if last == nil {
		l.Ascend(func(b *Bucket) bool {
			if b.LPOutstanding.IsPositive() {
				last = b
				return false
			}

			return true
		})
	}

	if last != nil {
		last.Deposit = last.Deposit.Add(remaining)
	}
}

// LUP lowest price of a bucket carrying debt
func (l *Ledger) LUP() (decimal.Decimal, bool) {
	var price decimal.Decimal
	var ok bool
	l.Ascend(func(b *Bucket) bool {
		if b.Debt.IsPositive() {
			price, ok = b.Price, true
			return false
		}

		return true
	})

	return price, ok
}

// HPB highest price of a bucket with deposit
func (l *Ledger) HPB() (decimal.Decimal, bool) {
	var price decimal.Decimal
	var ok bool
	l.Descend(func(b *Bucket) bool {
		if b.Deposit.IsPositive() {
			price, ok = b.Price, true
			return false
		}

		return true
	})

	return price, ok
}

// PoolPrice price collateral is valued at, the LUP when debt is
// outstanding and the HPB otherwise, zero for an empty pool
func (l *Ledger) PoolPrice() decimal.Decimal {
	if lup, ok := l.LUP(); ok {
		return lup
	}

	if hpb, ok := l.HPB(); ok {
		return hpb
	}

	return decimal.Zero
}

// Totals deposit and debt summed over all buckets
func (l *Ledger) Totals() (deposit, debt decimal.Decimal) {
	deposit, debt = decimal.Zero, decimal.Zero
	l.Ascend(func(b *Bucket) bool {
		deposit = deposit.Add(b.Deposit)
		debt = debt.Add(b.Debt)
		return true
	})

	return
}

// Lender lp balance of a lender at price
func (l *Ledger) Lender(price decimal.Decimal, lender common.Address) decimal.Decimal {
	if b := l.get(price); b != nil {
		return b.Lender(lender)
	}

	return decimal.Zero
}

// Info read view of the bucket at price, claimable ids left empty
func (l *Ledger) Info(price decimal.Decimal) (*core.BucketInfo, bool) {
	b := l.get(price)
	if b == nil {
		return nil, false
	}

	rate, _ := b.ExchangeRate(l.claimableAt(price))
	return &core.BucketInfo{
		Price:         b.Price,
		Deposit:       b.Deposit,
		Debt:          b.Debt,
		LPOutstanding: b.LPOutstanding,
		ExchangeRate:  rate,
		Claimable:     []core.TokenID{},
	}, true
}

// Snapshot buckets in ascending price order
func (l *Ledger) Snapshot() []*core.BucketSnapshot {
	snapshots := make([]*core.BucketSnapshot, 0, l.tree.Len())
	l.Ascend(func(b *Bucket) bool {
		snapshots = append(snapshots, b.snapshot())
		return true
	})

	return snapshots
}

// Restore replace all buckets, inflator is the pool inflator of the snapshot
func (l *Ledger) Restore(inflator decimal.Decimal, snapshots []*core.BucketSnapshot) error {
	tree := btree.New(32)
	for _, s := range snapshots {
		if !l.ladder.Contains(s.Price) {
			return core.ErrInvalidPrice
		}

		tree.ReplaceOrInsert(restoreBucket(s))
	}

	l.tree = tree
	l.inflator = inflator
	return nil
}

// CheckInvariants lp claimed never exceeds lp minted and no bucket balance
// is negative
func (l *Ledger) CheckInvariants() error {
	var err error
	l.Ascend(func(b *Bucket) bool {
		switch {
		case b.LPClaimed.GreaterThan(b.LPMinted):
			err = fmt.Errorf("bucket %s: lp claimed %s exceeds lp minted %s", b.Price, b.LPClaimed, b.LPMinted)
		case b.LPOutstanding.GreaterThan(b.LPMinted):
			err = fmt.Errorf("bucket %s: lp outstanding %s exceeds lp minted %s", b.Price, b.LPOutstanding, b.LPMinted)
		case b.Deposit.IsNegative(), b.Debt.IsNegative(), b.LPOutstanding.IsNegative():
			err = fmt.Errorf("bucket %s: negative balance", b.Price)
		default:
			sum := decimal.Zero
			for _, lp := range b.lenders {
				sum = sum.Add(lp)
			}

			if !sum.Equal(b.LPOutstanding) {
				err = fmt.Errorf("bucket %s: lender lp %s != lp outstanding %s", b.Price, sum, b.LPOutstanding)
			}
		}

		return err == nil
	})

	return err
}
