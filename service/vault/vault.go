package vault

import (
	"context"
	"errors"
	"sync"

	"nftpool/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotOwner token not owned by the sender
	ErrNotOwner = errors.New("vault: token not owned by sender")
	// ErrInsufficientBalance quote balance too low
	ErrInsufficientBalance = errors.New("vault: insufficient balance")
)

// Vault in-memory erc721 collection and quote token ledger
type Vault struct {
	mu       sync.Mutex
	owners   map[core.TokenID]common.Address
	balances map[common.Address]decimal.Decimal
}

// New empty vault
func New() *Vault {
	return &Vault{
		owners:   map[core.TokenID]common.Address{},
		balances: map[common.Address]decimal.Decimal{},
	}
}

// Mint assigns ids to owner
func (v *Vault) Mint(owner common.Address, ids ...core.TokenID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, id := range ids {
		v.owners[id] = owner
	}
}

// Credit adds quote token to the account
func (v *Vault) Credit(account common.Address, amount decimal.Decimal) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.balances[account] = v.balance(account).Add(amount)
}

// OwnerOf owner of id
func (v *Vault) OwnerOf(id core.TokenID) (common.Address, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	owner, ok := v.owners[id]
	return owner, ok
}

// BalanceOf quote balance of the account
func (v *Vault) BalanceOf(account common.Address) decimal.Decimal {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.balance(account)
}

func (v *Vault) balance(account common.Address) decimal.Decimal {
	if b, ok := v.balances[account]; ok {
		return b
	}

	return decimal.Zero
}

// TransferFrom implements core.NFTService, all ids or none
func (v *Vault) TransferFrom(ctx context.Context, from, to common.Address, ids []core.TokenID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, id := range ids {
		if owner, ok := v.owners[id]; !ok || owner != from {
			return ErrNotOwner
		}
	}

	for _, id := range ids {
		v.owners[id] = to
	}

	return nil
}

// Transfer implements core.QuoteService
func (v *Vault) Transfer(ctx context.Context, from, to common.Address, amount decimal.Decimal) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.balance(from).LessThan(amount) {
		return ErrInsufficientBalance
	}

	v.balances[from] = v.balance(from).Sub(amount)
	v.balances[to] = v.balance(to).Add(amount)
	return nil
}
