package session

import (
	"context"
	"time"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

const cacheTTL = 10 * time.Minute

type cacheSession struct {
	*session
	tokens gcache.Cache
}

// Login serves verified tokens from the cache, an entry never outlives the
// token's exp claim
func (s *cacheSession) Login(ctx context.Context, accessToken string) (common.Address, error) {
	now := time.Now()

	if v, err := s.tokens.Get(accessToken); err == nil {
		g := v.(grant)
		if g.expiresAt.IsZero() || now.Before(g.expiresAt) {
			return g.account, nil
		}

		s.tokens.Remove(accessToken)
		return common.Address{}, jwt.ErrTokenExpired
	}

	g, err := s.session.verify(accessToken)
	if err != nil {
		return common.Address{}, err
	}

	if ttl := cacheTTLOf(g, now); ttl > 0 {
		_ = s.tokens.SetWithExpire(accessToken, g, ttl)
	}

	return g.account, nil
}

func cacheTTLOf(g grant, now time.Time) time.Duration {
	if g.expiresAt.IsZero() {
		return cacheTTL
	}

	if ttl := g.expiresAt.Sub(now); ttl < cacheTTL {
		return ttl
	}

	return cacheTTL
}
