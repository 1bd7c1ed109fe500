package collateral

import (
	"testing"

	"nftpool/core"

	"github.com/stretchr/testify/assert"
)

func TestTokenSet(t *testing.T) {
	s := NewTokenSet(core.NewTokenIDs(1, 2, 3, 2)...)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, core.NewTokenIDs(1, 2, 3), s.Values())

	assert.False(t, s.Add(core.NewTokenID(3)))
	assert.True(t, s.Remove(core.NewTokenID(1)))
	assert.False(t, s.Remove(core.NewTokenID(1)))
	assert.False(t, s.Has(core.NewTokenID(1)))

	// last id takes the freed slot
	assert.Equal(t, core.NewTokenIDs(3, 2), s.Values())
	assert.True(t, s.Has(core.NewTokenID(3)))

	assert.True(t, s.Remove(core.NewTokenID(2)))
	assert.True(t, s.Remove(core.NewTokenID(3)))
	assert.Equal(t, 0, s.Len())
}

func TestLocation(t *testing.T) {
	a := Deposited(borrowerA)
	assert.True(t, a.Equal(Deposited(borrowerA)))
	assert.False(t, a.Equal(Deposited(borrowerB)))
	assert.False(t, a.Equal(Claimable(price60)))
	assert.True(t, Claimable(price60).Equal(Claimable(price60.Round(4))))
	assert.Equal(t, "outside", Location{}.String())
}
