package borrower

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"nftpool/core"
	"nftpool/internal/bucket"
	"nftpool/internal/collateral"
	"nftpool/internal/interest"
	"nftpool/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Engine borrower positions: debt through the pool inflator, collateral
// through the collateral ledger
type Engine struct {
	accrual              *interest.Accrual
	collateral           *collateral.Ledger
	buckets              *bucket.Ledger
	minCollateralization decimal.Decimal
	borrowers            map[common.Address]*core.Borrower
}

// New new engine, minCollateralization defaults to 1
func New(
	accrual *interest.Accrual,
	collaterals *collateral.Ledger,
	buckets *bucket.Ledger,
	minCollateralization decimal.Decimal,
) *Engine {
	if !minCollateralization.IsPositive() {
		minCollateralization = number.One
	}

	return &Engine{
		accrual:              accrual,
		collateral:           collaterals,
		buckets:              buckets,
		minCollateralization: minCollateralization,
		borrowers:            map[common.Address]*core.Borrower{},
	}
}

// MinCollateralization minimum collateral value / debt
func (e *Engine) MinCollateralization() decimal.Decimal {
	return e.minCollateralization
}

// Utilization pool utilization from the bucket totals
func (e *Engine) Utilization() decimal.Decimal {
	deposit, debt := e.buckets.Totals()
	return interest.Utilization(debt, deposit)
}

// Accrue advance the pool inflator to now and rescale the bucket debt. It
// runs first in every operation.
func (e *Engine) Accrue(now time.Time) decimal.Decimal {
	inflator := e.accrual.Accrue(now, e.Utilization())
	e.buckets.Sync(inflator)
	return inflator
}

// PoolPrice price collateral is valued at
func (e *Engine) PoolPrice() decimal.Decimal {
	return e.buckets.PoolPrice()
}

// Debt the borrower's debt synced to the current inflator
func (e *Engine) Debt(addr common.Address) decimal.Decimal {
	b, ok := e.borrowers[addr]
	if !ok {
		return decimal.Zero
	}

	return interest.SyncBorrowerDebt(b, e.accrual.Inflator())
}

func (e *Engine) borrower(addr common.Address) *core.Borrower {
	b, ok := e.borrowers[addr]
	if !ok {
		b = &core.Borrower{
			Address:          addr,
			Debt:             decimal.Zero,
			InflatorSnapshot: e.accrual.Inflator(),
		}
		e.borrowers[addr] = b
		return b
	}

	interest.SyncBorrowerDebt(b, e.accrual.Inflator())
	return b
}

func (e *Engine) release(addr common.Address) {
	if b, ok := e.borrowers[addr]; ok && b.Debt.IsZero() {
		delete(e.borrowers, addr)
	}
}

// Collateralized collateral value of count ids at price covers debt times the
// minimum collateralization
func (e *Engine) Collateralized(count int, debt, price decimal.Decimal) bool {
	if !debt.IsPositive() {
		return true
	}

	value := price.Mul(decimal.NewFromInt(int64(count)))
	return value.GreaterThanOrEqual(debt.Mul(e.minCollateralization))
}

// RequireMinCollateralization rejects a post state leaving the borrower under
// the minimum collateralization
func (e *Engine) RequireMinCollateralization(count int, debt, price decimal.Decimal) error {
	return core.Require(e.Collateralized(count, debt, price), core.ErrUndercollateralizedAction)
}

// Info read view of the borrower at now, nothing is mutated
func (e *Engine) Info(addr common.Address, now time.Time) *core.BorrowerInfo {
	poolInflator := e.accrual.Inflator()
	b := core.Borrower{
		Address:          addr,
		Debt:             decimal.Zero,
		InflatorSnapshot: poolInflator,
	}

	if stored, ok := e.borrowers[addr]; ok {
		b = *stored
	}

	pending := e.accrual.Pending(now, e.Utilization())
	total := interest.Sync(b.Debt, b.InflatorSnapshot, pending, true)

	ids := e.collateral.Deposited(addr)
	price := e.PoolPrice()

	info := &core.BorrowerInfo{
		Debt:                 b.Debt,
		PendingDebt:          total.Sub(b.Debt),
		CollateralIDs:        ids,
		EncumberedCollateral: decimal.Zero,
		Collateralization:    number.Infinity,
		BorrowerInflator:     b.InflatorSnapshot,
		PoolInflator:         poolInflator,
	}

	if total.IsPositive() {
		info.EncumberedCollateral = number.DivCeil(total, price, number.WadPrecision)
		value := price.Mul(decimal.NewFromInt(int64(len(ids))))
		info.Collateralization = number.WadDiv(value, total)
	}

	return info
}

// CheckRemoveCollateral validates a collateral removal, the remaining
// collateral must keep the borrower above the minimum
func (e *Engine) CheckRemoveCollateral(addr common.Address, ids []core.TokenID) error {
	if err := e.collateral.CheckDeposited(addr, ids); err != nil {
		return err
	}

	left := e.collateral.DepositedCount(addr) - len(ids)
	if !e.Collateralized(left, e.Debt(addr), e.PoolPrice()) {
		return core.ErrInsufficientCollateral
	}

	return nil
}

// RemoveCollateral removes ids from the borrower, they leave custody
func (e *Engine) RemoveCollateral(addr common.Address, ids []core.TokenID) error {
	if err := e.CheckRemoveCollateral(addr, ids); err != nil {
		return err
	}

	if err := e.collateral.Remove(addr, ids); err != nil {
		return err
	}

	e.release(addr)
	return nil
}

// Borrow draws amount from buckets priced at or above limitPrice
func (e *Engine) Borrow(addr common.Address, amount, limitPrice decimal.Decimal) error {
	amount = number.Wad(amount)
	drawPrice, err := e.buckets.DrawPrice(amount, limitPrice)
	if err != nil {
		return err
	}

	price := drawPrice
	if lup, ok := e.buckets.LUP(); ok && lup.LessThan(price) {
		price = lup
	}

	debt := e.Debt(addr).Add(amount)
	if err := e.RequireMinCollateralization(e.collateral.DepositedCount(addr), debt, price); err != nil {
		return err
	}

	if err := e.buckets.DrawDebt(amount, limitPrice); err != nil {
		return err
	}

	b := e.borrower(addr)
	b.Debt = b.Debt.Add(amount)
	return nil
}

// Repay repays up to maxAmount of the borrower's debt, returns the amount repaid
func (e *Engine) Repay(addr common.Address, maxAmount decimal.Decimal) (decimal.Decimal, error) {
	if err := core.Require(maxAmount.IsPositive(), core.ErrInvalidAmount); err != nil {
		return decimal.Zero, err
	}

	debt := e.Debt(addr)
	if err := core.Require(debt.IsPositive(), core.ErrNoDebt); err != nil {
		return decimal.Zero, err
	}

	amount := decimal.Min(number.Wad(maxAmount), debt)
	b := e.borrower(addr)
	b.Debt = b.Debt.Sub(amount)
	e.buckets.RepayDebt(amount)
	e.release(addr)
	return amount, nil
}

// Snapshot borrowers with debt or collateral, sorted by address
func (e *Engine) Snapshot() []*core.BorrowerSnapshot {
	addrs := e.collateral.Borrowers()
	for addr := range e.borrowers {
		if e.collateral.DepositedCount(addr) == 0 {
			addrs = append(addrs, addr)
		}
	}

	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i].Bytes(), addrs[j].Bytes()) < 0
	})

	snapshots := make([]*core.BorrowerSnapshot, 0, len(addrs))
	for _, addr := range addrs {
		s := &core.BorrowerSnapshot{
			Borrower: core.Borrower{
				Address:          addr,
				Debt:             decimal.Zero,
				InflatorSnapshot: e.accrual.Inflator(),
			},
			Collateral: e.collateral.Deposited(addr),
		}

		if b, ok := e.borrowers[addr]; ok {
			s.Borrower = *b
		}

		snapshots = append(snapshots, s)
	}

	return snapshots
}

// Restore replace all borrowers, the collateral ledger must be empty
func (e *Engine) Restore(snapshots []*core.BorrowerSnapshot) error {
	e.borrowers = make(map[common.Address]*core.Borrower, len(snapshots))
	for _, s := range snapshots {
		if err := e.collateral.RestoreDeposited(s.Address, s.Collateral); err != nil {
			return err
		}

		if s.Debt.IsPositive() {
			b := s.Borrower
			e.borrowers[s.Address] = &b
		}
	}

	return nil
}

// CheckInvariants borrower debt is never negative and every borrower with
// debt is synced no further than the pool inflator
func (e *Engine) CheckInvariants() error {
	inflator := e.accrual.Inflator()
	for addr, b := range e.borrowers {
		if b.Debt.IsNegative() {
			return fmt.Errorf("borrower %s: negative debt %s", addr.Hex(), b.Debt)
		}

		if b.InflatorSnapshot.GreaterThan(inflator) {
			return fmt.Errorf("borrower %s: inflator snapshot %s ahead of pool %s", addr.Hex(), b.InflatorSnapshot, inflator)
		}
	}

	return nil
}
