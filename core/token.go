package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// TokenID erc721 token id
type TokenID = uint256.Int

// NewTokenID token id from uint64
func NewTokenID(v uint64) TokenID {
	return *uint256.NewInt(v)
}

// NewTokenIDs token ids from uint64s
func NewTokenIDs(vs ...uint64) []TokenID {
	ids := make([]TokenID, len(vs))
	for i, v := range vs {
		ids[i] = NewTokenID(v)
	}

	return ids
}

// ParseTokenID parse a decimal or 0x-prefixed hex token id
func ParseTokenID(s string) (TokenID, error) {
	var id TokenID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return id, err
	}

	return id, nil
}

// FormatTokenIDs decimal strings of ids
func FormatTokenIDs(ids []TokenID) []string {
	values := make([]string, len(ids))
	for i := range ids {
		values[i] = ids[i].Dec()
	}

	return values
}

// NFTService moves collateral tokens in and out of pool custody
type NFTService interface {
	TransferFrom(ctx context.Context, from, to common.Address, ids []TokenID) error
}

// QuoteService moves quote tokens in and out of pool custody
type QuoteService interface {
	Transfer(ctx context.Context, from, to common.Address, amount decimal.Decimal) error
}
