package vault

import (
	"context"
	"testing"

	"nftpool/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault(t *testing.T) {
	ctx := context.Background()
	a := common.HexToAddress("0xa")
	b := common.HexToAddress("0xb")

	v := New()
	v.Mint(a, core.NewTokenIDs(1, 2)...)
	v.Credit(a, decimal.NewFromInt(10))

	assert.ErrorIs(t, v.TransferFrom(ctx, b, a, core.NewTokenIDs(1)), ErrNotOwner)
	assert.ErrorIs(t, v.TransferFrom(ctx, a, b, core.NewTokenIDs(1, 3)), ErrNotOwner)

	owner, _ := v.OwnerOf(core.NewTokenID(1))
	assert.Equal(t, a, owner)

	require.NoError(t, v.TransferFrom(ctx, a, b, core.NewTokenIDs(1, 2)))
	owner, _ = v.OwnerOf(core.NewTokenID(2))
	assert.Equal(t, b, owner)

	assert.ErrorIs(t, v.Transfer(ctx, a, b, decimal.NewFromInt(11)), ErrInsufficientBalance)
	require.NoError(t, v.Transfer(ctx, a, b, decimal.NewFromInt(4)))
	assert.Equal(t, "6", v.BalanceOf(a).String())
	assert.Equal(t, "4", v.BalanceOf(b).String())
}
