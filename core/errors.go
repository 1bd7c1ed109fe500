package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrNotInitialized pool not initialized
	ErrNotInitialized ErrorCode = 100001
	// ErrAlreadyInitialized pool already initialized
	ErrAlreadyInitialized ErrorCode = 100002
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100003
	// ErrInvalidPrice price not on the price ladder
	ErrInvalidPrice ErrorCode = 100004
	// ErrInvalidRate invalid interest rate
	ErrInvalidRate ErrorCode = 100005
	// ErrEmptyTokenList no token ids supplied
	ErrEmptyTokenList ErrorCode = 100006

	// ErrDuplicateCollateral token id already under pool custody
	ErrDuplicateCollateral ErrorCode = 100100
	// ErrNotDeposited token id not deposited by the borrower
	ErrNotDeposited ErrorCode = 100101
	// ErrInsufficientCollateral removal would leave the borrower under the minimum collateralization
	ErrInsufficientCollateral ErrorCode = 100102
	// ErrUndercollateralizedAction action would leave the borrower under the minimum collateralization
	ErrUndercollateralizedAction ErrorCode = 100103
	// ErrTokenNotInSubset token id outside of the pool subset
	ErrTokenNotInSubset ErrorCode = 100104
	// ErrNoDebt borrower has no debt to repay
	ErrNoDebt ErrorCode = 100105

	// ErrInsufficientLPBalance claimant lp balance too low
	ErrInsufficientLPBalance ErrorCode = 100200
	// ErrTokenNotClaimable token id not claimable at the bucket
	ErrTokenNotClaimable ErrorCode = 100201
	// ErrInsufficientLiquidity bucket can not supply the amount
	ErrInsufficientLiquidity ErrorCode = 100202
	// ErrPriceBucketEmpty no liquidity at the bucket
	ErrPriceBucketEmpty ErrorCode = 100203

	// ErrInvalidTokenOrder duplicate or unowned token id in the supplied list
	ErrInvalidTokenOrder ErrorCode = 100300
	// ErrInsufficientCollateralValue supplied token ids can not cover the amount
	ErrInsufficientCollateralValue ErrorCode = 100301
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                     "unknown",
	ErrNotInitialized:              "pool not initialized",
	ErrAlreadyInitialized:          "pool already initialized",
	ErrInvalidAmount:               "invalid amount",
	ErrInvalidPrice:                "invalid price",
	ErrInvalidRate:                 "invalid interest rate",
	ErrEmptyTokenList:              "empty token list",
	ErrDuplicateCollateral:         "duplicate collateral",
	ErrNotDeposited:                "collateral not deposited",
	ErrInsufficientCollateral:      "insufficient collateral",
	ErrUndercollateralizedAction:   "undercollateralized action",
	ErrTokenNotInSubset:            "token not in subset",
	ErrNoDebt:                      "no debt",
	ErrInsufficientLPBalance:       "insufficient lp balance",
	ErrTokenNotClaimable:           "token not claimable",
	ErrInsufficientLiquidity:       "insufficient liquidity",
	ErrPriceBucketEmpty:            "price bucket empty",
	ErrInvalidTokenOrder:           "invalid token order",
	ErrInsufficientCollateralValue: "insufficient collateral value",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// Require returns code if cond is false
func Require(cond bool, code ErrorCode) error {
	if cond {
		return nil
	}

	return code
}
