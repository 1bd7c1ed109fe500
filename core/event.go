package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// EventType event type
type EventType string

const (
	// EventTypePoolInitialized pool initialized with its subset and interest rate
	EventTypePoolInitialized EventType = "PoolInitialized"
	// EventTypeAddNFTCollateral AddNFTCollateral(borrower, tokenIds)
	EventTypeAddNFTCollateral EventType = "AddNFTCollateral"
	// EventTypeRemoveNFTCollateral RemoveNFTCollateral(borrower, tokenIds)
	EventTypeRemoveNFTCollateral EventType = "RemoveNFTCollateral"
	// EventTypeClaimNFTCollateral ClaimNFTCollateral(claimer, price, tokenIds, lpBurned)
	EventTypeClaimNFTCollateral EventType = "ClaimNFTCollateral"
	// EventTypePurchaseWithNFTs PurchaseWithNFTs(bidder, price, amount, tokenIds)
	EventTypePurchaseWithNFTs EventType = "PurchaseWithNFTs"
	// EventTypeAddQuoteToken AddQuoteToken(lender, price, amount, lpMinted)
	EventTypeAddQuoteToken EventType = "AddQuoteToken"
	// EventTypeRemoveQuoteToken RemoveQuoteToken(lender, price, amount, lpBurned)
	EventTypeRemoveQuoteToken EventType = "RemoveQuoteToken"
	// EventTypeBorrow Borrow(borrower, lup, amount)
	EventTypeBorrow EventType = "Borrow"
	// EventTypeRepay Repay(borrower, lup, amount)
	EventTypeRepay EventType = "Repay"
)

const (
	// EventKeyRecipient recipient of claimed collateral
	EventKeyRecipient = "recipient"
	// EventKeyInterestRate interest rate set at initialization
	EventKeyInterestRate = "interest_rate"
)

// Event append-only record of an applied operation
type Event struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_events_trace_id" json:"trace_id,omitempty"`
	Pool      string          `sql:"size:42;index:idx_events_pool" json:"pool,omitempty"`
	Version   int64           `json:"version,omitempty"`
	Type      EventType       `sql:"size:32" json:"type,omitempty"`
	Account   string          `sql:"size:42;index:idx_events_account" json:"account,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(64,18)" json:"price"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount"`
	LP        decimal.Decimal `sql:"type:decimal(64,18)" json:"lp"`
	TokenIDs  pq.StringArray  `sql:"type:varchar(80)[]" json:"token_ids,omitempty"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
}

// Tokens token ids carried by the event
func (e *Event) Tokens() ([]TokenID, error) {
	ids := make([]TokenID, 0, len(e.TokenIDs))
	for _, s := range e.TokenIDs {
		id, err := ParseTokenID(s)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// EventExtra extra data of an event
type EventExtra map[string]interface{}

// Put put data
func (e EventExtra) Put(key string, value interface{}) EventExtra {
	e[key] = value
	return e
}

// Format format as []byte by default
func (e EventExtra) Format() []byte {
	bs, err := json.Marshal(e)
	if err != nil {
		return []byte("{}")
	}

	return bs
}

func newEvent(typ EventType, account common.Address, ids []TokenID) *Event {
	return &Event{
		Type:     typ,
		Account:  account.Hex(),
		Price:    decimal.Zero,
		Amount:   decimal.Zero,
		LP:       decimal.Zero,
		TokenIDs: FormatTokenIDs(ids),
	}
}

// NewPoolInitialized PoolInitialized(subset, interestRate)
func NewPoolInitialized(account common.Address, subset []TokenID, rate decimal.Decimal) *Event {
	e := newEvent(EventTypePoolInitialized, account, subset)
	e.Data = EventExtra{}.Put(EventKeyInterestRate, rate).Format()
	return e
}

// NewAddNFTCollateral AddNFTCollateral(borrower, tokenIds)
func NewAddNFTCollateral(borrower common.Address, ids []TokenID) *Event {
	return newEvent(EventTypeAddNFTCollateral, borrower, ids)
}

// NewRemoveNFTCollateral RemoveNFTCollateral(borrower, tokenIds)
func NewRemoveNFTCollateral(borrower common.Address, ids []TokenID) *Event {
	return newEvent(EventTypeRemoveNFTCollateral, borrower, ids)
}

// NewClaimNFTCollateral ClaimNFTCollateral(claimer, price, tokenIds, lpBurned)
func NewClaimNFTCollateral(claimer, recipient common.Address, price decimal.Decimal, ids []TokenID, lpBurned decimal.Decimal) *Event {
	e := newEvent(EventTypeClaimNFTCollateral, claimer, ids)
	e.Price = price
	e.LP = lpBurned
	e.Data = EventExtra{}.Put(EventKeyRecipient, recipient.Hex()).Format()
	return e
}

// NewPurchaseWithNFTs PurchaseWithNFTs(bidder, price, amount, tokenIds)
func NewPurchaseWithNFTs(bidder common.Address, price, amount decimal.Decimal, ids []TokenID) *Event {
	e := newEvent(EventTypePurchaseWithNFTs, bidder, ids)
	e.Price = price
	e.Amount = amount
	return e
}

// NewAddQuoteToken AddQuoteToken(lender, price, amount, lpMinted)
func NewAddQuoteToken(lender common.Address, price, amount, lp decimal.Decimal) *Event {
	e := newEvent(EventTypeAddQuoteToken, lender, nil)
	e.Price = price
	e.Amount = amount
	e.LP = lp
	return e
}

// NewRemoveQuoteToken RemoveQuoteToken(lender, price, amount, lpBurned)
func NewRemoveQuoteToken(lender common.Address, price, amount, lp decimal.Decimal) *Event {
	e := newEvent(EventTypeRemoveQuoteToken, lender, nil)
	e.Price = price
	e.Amount = amount
	e.LP = lp
	return e
}

// NewBorrow Borrow(borrower, lup, amount)
func NewBorrow(borrower common.Address, lup, amount decimal.Decimal) *Event {
	e := newEvent(EventTypeBorrow, borrower, nil)
	e.Price = lup
	e.Amount = amount
	return e
}

// NewRepay Repay(borrower, lup, amount)
func NewRepay(borrower common.Address, lup, amount decimal.Decimal) *Event {
	e := newEvent(EventTypeRepay, borrower, nil)
	e.Price = lup
	e.Amount = amount
	return e
}

// EventStore event store interface
type EventStore interface {
	Create(ctx context.Context, tx *db.DB, events ...*Event) error
	FindByTrace(ctx context.Context, traceID string) (*Event, error)
	List(ctx context.Context, pool string, fromID int64, limit int) ([]*Event, error)
}
