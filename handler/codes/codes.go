package codes

import (
	"errors"
	"strconv"

	"nftpool/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 10001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// FromError twirp error of err, pool error codes are kept as custom code
func FromError(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	twerr := twirp.NewError(twirpCode(code), code.Error())
	return twerr.WithMeta(CustomCodeKey, code.String())
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrInvalidAmount,
		core.ErrInvalidPrice,
		core.ErrInvalidRate,
		core.ErrEmptyTokenList,
		core.ErrInvalidTokenOrder,
		core.ErrTokenNotInSubset:
		return twirp.InvalidArgument
	case core.ErrDuplicateCollateral,
		core.ErrAlreadyInitialized:
		return twirp.AlreadyExists
	case core.ErrNotDeposited,
		core.ErrTokenNotClaimable,
		core.ErrPriceBucketEmpty:
		return twirp.NotFound
	case core.ErrNotInitialized,
		core.ErrInsufficientCollateral,
		core.ErrUndercollateralizedAction,
		core.ErrNoDebt,
		core.ErrInsufficientLPBalance,
		core.ErrInsufficientLiquidity,
		core.ErrInsufficientCollateralValue:
		return twirp.FailedPrecondition
	default:
		return twirp.Internal
	}
}
