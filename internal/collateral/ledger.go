package collateral

import (
	"bytes"
	"fmt"
	"sort"

	"nftpool/core"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Ledger token id custody of a pool
//
// Every id under custody has exactly one Location, mirrored by membership in
// one borrower set or one bucket set. All mutating methods validate the whole
// id list before touching any set.
type Ledger struct {
	owners    map[core.TokenID]Location
	borrowers map[common.Address]*TokenSet
	buckets   map[string]*TokenSet
	prices    map[string]decimal.Decimal
}

// New empty ledger
func New() *Ledger {
	return &Ledger{
		owners:    map[core.TokenID]Location{},
		borrowers: map[common.Address]*TokenSet{},
		buckets:   map[string]*TokenSet{},
		prices:    map[string]decimal.Decimal{},
	}
}

func priceKey(price decimal.Decimal) string {
	return price.String()
}

// Distinct reports whether ids holds no repeated id
func Distinct(ids []core.TokenID) bool {
	seen := mapset.NewThreadUnsafeSetWithSize[core.TokenID](len(ids))
	for _, id := range ids {
		if !seen.Add(id) {
			return false
		}
	}

	return true
}

// Locate location of id, KindOutside when not under custody
func (l *Ledger) Locate(id core.TokenID) Location {
	if loc, ok := l.owners[id]; ok {
		return loc
	}

	return Location{Kind: KindOutside}
}

// Count ids under custody
func (l *Ledger) Count() int {
	return len(l.owners)
}

// Pledged ids in borrower sets
func (l *Ledger) Pledged() int {
	n := 0
	for _, set := range l.borrowers {
		n += set.Len()
	}

	return n
}

// Deposited ids deposited by borrower
func (l *Ledger) Deposited(borrower common.Address) []core.TokenID {
	if set, ok := l.borrowers[borrower]; ok {
		return set.Values()
	}

	return []core.TokenID{}
}

// DepositedCount number of ids deposited by borrower
func (l *Ledger) DepositedCount(borrower common.Address) int {
	if set, ok := l.borrowers[borrower]; ok {
		return set.Len()
	}

	return 0
}

// Claimable ids claimable at the bucket
func (l *Ledger) Claimable(price decimal.Decimal) []core.TokenID {
	if set, ok := l.buckets[priceKey(price)]; ok {
		return set.Values()
	}

	return []core.TokenID{}
}

// ClaimableCount number of ids claimable at the bucket
func (l *Ledger) ClaimableCount(price decimal.Decimal) int {
	if set, ok := l.buckets[priceKey(price)]; ok {
		return set.Len()
	}

	return 0
}

// Borrowers addresses holding collateral, sorted
func (l *Ledger) Borrowers() []common.Address {
	addrs := make([]common.Address, 0, len(l.borrowers))
	for addr := range l.borrowers {
		addrs = append(addrs, addr)
	}

	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i].Bytes(), addrs[j].Bytes()) < 0
	})

	return addrs
}

// CheckAdd validates an AddCollateral call
func (l *Ledger) CheckAdd(ids []core.TokenID) error {
	if len(ids) == 0 {
		return core.ErrEmptyTokenList
	}

	if !Distinct(ids) {
		return core.ErrDuplicateCollateral
	}

	for _, id := range ids {
		if _, ok := l.owners[id]; ok {
			return core.ErrDuplicateCollateral
		}
	}

	return nil
}

// Add ids to the borrower's deposited set
func (l *Ledger) Add(borrower common.Address, ids []core.TokenID) error {
	if err := l.CheckAdd(ids); err != nil {
		return err
	}

	set, ok := l.borrowers[borrower]
	if !ok {
		set = NewTokenSet()
		l.borrowers[borrower] = set
	}

	loc := Deposited(borrower)
	for _, id := range ids {
		set.Add(id)
		l.owners[id] = loc
	}

	return nil
}

// CheckDeposited every id must be in the borrower's deposited set, once
func (l *Ledger) CheckDeposited(borrower common.Address, ids []core.TokenID) error {
	if len(ids) == 0 {
		return core.ErrEmptyTokenList
	}

	if !Distinct(ids) {
		return core.ErrNotDeposited
	}

	set, ok := l.borrowers[borrower]
	if !ok {
		return core.ErrNotDeposited
	}

	for _, id := range ids {
		if !set.Has(id) {
			return core.ErrNotDeposited
		}
	}

	return nil
}

// Remove ids from the borrower's deposited set, they leave custody
func (l *Ledger) Remove(borrower common.Address, ids []core.TokenID) error {
	if err := l.CheckDeposited(borrower, ids); err != nil {
		return err
	}

	l.removeDeposited(borrower, ids)
	for _, id := range ids {
		delete(l.owners, id)
	}

	return nil
}

// MoveToClaimable moves ids from the borrower's deposited set to the
// bucket's claimable set
func (l *Ledger) MoveToClaimable(borrower common.Address, ids []core.TokenID, price decimal.Decimal) error {
	if err := l.CheckDeposited(borrower, ids); err != nil {
		return err
	}

	l.removeDeposited(borrower, ids)

	key := priceKey(price)
	set, ok := l.buckets[key]
	if !ok {
		set = NewTokenSet()
		l.buckets[key] = set
		l.prices[key] = price
	}

	loc := Claimable(price)
	for _, id := range ids {
		set.Add(id)
		l.owners[id] = loc
	}

	return nil
}

// CheckClaimable every id must be claimable at the bucket, once
func (l *Ledger) CheckClaimable(price decimal.Decimal, ids []core.TokenID) error {
	if len(ids) == 0 {
		return core.ErrEmptyTokenList
	}

	if !Distinct(ids) {
		return core.ErrTokenNotClaimable
	}

	set, ok := l.buckets[priceKey(price)]
	if !ok {
		return core.ErrTokenNotClaimable
	}

	for _, id := range ids {
		if !set.Has(id) {
			return core.ErrTokenNotClaimable
		}
	}

	return nil
}

// Claim removes ids from the bucket's claimable set, they leave custody
func (l *Ledger) Claim(price decimal.Decimal, ids []core.TokenID) error {
	if err := l.CheckClaimable(price, ids); err != nil {
		return err
	}

	key := priceKey(price)
	set := l.buckets[key]
	for _, id := range ids {
		set.Remove(id)
		delete(l.owners, id)
	}

	if set.Len() == 0 {
		delete(l.buckets, key)
		delete(l.prices, key)
	}

	return nil
}

func (l *Ledger) removeDeposited(borrower common.Address, ids []core.TokenID) {
	set := l.borrowers[borrower]
	for _, id := range ids {
		set.Remove(id)
	}

	if set.Len() == 0 {
		delete(l.borrowers, borrower)
	}
}

// CheckInvariants verifies that every id has exactly one location and the
// sets mirror the location index
func (l *Ledger) CheckInvariants() error {
	seen := 0

	for addr, set := range l.borrowers {
		for _, id := range set.ids {
			loc, ok := l.owners[id]
			if !ok || !loc.Equal(Deposited(addr)) {
				return fmt.Errorf("token %s in deposited set of %s but located at %s", id.Dec(), addr.Hex(), loc)
			}
		}

		seen += set.Len()
	}

	for key, set := range l.buckets {
		price := l.prices[key]
		for _, id := range set.ids {
			loc, ok := l.owners[id]
			if !ok || !loc.Equal(Claimable(price)) {
				return fmt.Errorf("token %s in claimable set at %s but located at %s", id.Dec(), price, loc)
			}
		}

		seen += set.Len()
	}

	if seen != len(l.owners) {
		return fmt.Errorf("%d tokens located but %d held in sets", len(l.owners), seen)
	}

	return nil
}

// RestoreDeposited loads a borrower's deposited set from a snapshot
func (l *Ledger) RestoreDeposited(borrower common.Address, ids []core.TokenID) error {
	if len(ids) == 0 {
		return nil
	}

	return l.Add(borrower, ids)
}

// RestoreClaimable loads a bucket's claimable set from a snapshot
func (l *Ledger) RestoreClaimable(price decimal.Decimal, ids []core.TokenID) error {
	if len(ids) == 0 {
		return nil
	}

	if err := l.CheckAdd(ids); err != nil {
		return err
	}

	key := priceKey(price)
	set, ok := l.buckets[key]
	if !ok {
		set = NewTokenSet()
		l.buckets[key] = set
		l.prices[key] = price
	}

	loc := Claimable(price)
	for _, id := range ids {
		set.Add(id)
		l.owners[id] = loc
	}

	return nil
}
