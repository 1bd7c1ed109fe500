package session

import (
	"context"
	"testing"
	"time"

	"nftpool/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := New(core.Auth{Secret: "s3cret", Issuers: []string{"gateway"}, Capacity: 16})

	token, err := Issue("s3cret", "gateway", alice, time.Hour)
	require.NoError(t, err)

	account, err := s.Login(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice, account)

	// served from cache
	account, err = s.Login(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice, account)
}

func TestLoginRejects(t *testing.T) {
	ctx := context.Background()
	s := New(core.Auth{Secret: "s3cret", Issuers: []string{"gateway"}})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := Issue("other", "gateway", alice, time.Hour)
		require.NoError(t, err)

		_, err = s.Login(ctx, token)
		assert.Error(t, err)
	})

	t.Run("unknown issuer", func(t *testing.T) {
		token, err := Issue("s3cret", "someone", alice, time.Hour)
		require.NoError(t, err)

		_, err = s.Login(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := Issue("s3cret", "gateway", alice, -time.Minute)
		require.NoError(t, err)

		_, err = s.Login(ctx, token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Login(ctx, "not.a.token")
		assert.Error(t, err)
	})
}

func TestCachedLoginRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	s := New(core.Auth{Secret: "s3cret", Capacity: 16})

	token, err := Issue("s3cret", "", alice, 2*time.Second)
	require.NoError(t, err)

	account, err := s.Login(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice, account)

	time.Sleep(3 * time.Second)

	_, err = s.Login(ctx, token)
	assert.Error(t, err)
}

func TestCacheTTL(t *testing.T) {
	now := time.Now()

	assert.Equal(t, cacheTTL, cacheTTLOf(grant{}, now), "no exp claim")
	assert.Equal(t, cacheTTL, cacheTTLOf(grant{expiresAt: now.Add(time.Hour)}, now))
	assert.Equal(t, time.Minute, cacheTTLOf(grant{expiresAt: now.Add(time.Minute)}, now))
	assert.LessOrEqual(t, cacheTTLOf(grant{expiresAt: now.Add(-time.Second)}, now), time.Duration(0))
}
