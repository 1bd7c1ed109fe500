package session

import (
	"context"
	"errors"
	"time"

	"nftpool/core"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidIssuer token issued by an unknown party
	ErrInvalidIssuer = errors.New("session: invalid issuer")
	// ErrInvalidSubject token subject is not an account address
	ErrInvalidSubject = errors.New("session: invalid subject")
)

// New new session
func New(cfg core.Auth) core.Session {
	s := &session{
		secret:  []byte(cfg.Secret),
		issuers: cfg.Issuers,
		sf:      &singleflight.Group{},
	}

	if cfg.Capacity > 0 {
		return &cacheSession{
			session: s,
			tokens:  gcache.New(cfg.Capacity).LRU().Build(),
		}
	}

	return s
}

// grant a verified token
type grant struct {
	account common.Address
	// expiresAt zero when the token carries no exp claim
	expiresAt time.Time
}

type session struct {
	secret  []byte
	issuers []string
	sf      *singleflight.Group
}

func (s *session) Login(ctx context.Context, accessToken string) (common.Address, error) {
	g, err := s.verify(accessToken)
	if err != nil {
		return common.Address{}, err
	}

	return g.account, nil
}

func (s *session) verify(accessToken string) (grant, error) {
	v, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		claims, err := s.parse(accessToken)
		if err != nil {
			return nil, err
		}

		if len(s.issuers) > 0 && !govalidator.IsIn(claims.Issuer, s.issuers...) {
			return nil, ErrInvalidIssuer
		}

		if !common.IsHexAddress(claims.Subject) {
			return nil, ErrInvalidSubject
		}

		g := grant{account: common.HexToAddress(claims.Subject)}
		if claims.ExpiresAt != nil {
			g.expiresAt = claims.ExpiresAt.Time
		}

		return g, nil
	})

	if err != nil {
		return grant{}, err
	}

	return v.(grant), nil
}

func (s *session) parse(accessToken string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return nil, err
	}

	return &claims, nil
}

// Issue signs an access token for account, used by tests and operators
func Issue(secret, issuer string, account common.Address, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   account.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString([]byte(secret))
}
