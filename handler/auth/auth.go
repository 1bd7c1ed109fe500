package auth

import (
	"errors"
	"net/http"
	"strings"

	"nftpool/core"
	"nftpool/handler/render"
	"nftpool/handler/request"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

// AccountHeader header carrying the calling account, only trusted when no
// session is configured
const AccountHeader = "X-Account"

// HandleAuthentication puts the calling account into the request context
func HandleAuthentication(s core.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			if s == nil {
				account := r.Header.Get(AccountHeader)
				if common.IsHexAddress(account) {
					ctx = request.NewContext(ctx).WithAccount(common.HexToAddress(account))
				}

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			accessToken := getBearerToken(r)
			if accessToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			account, err := s.Login(ctx, accessToken)
			if err != nil {
				log.WithError(err).Debugln("session.Login")
				render.Error(w, unauthenticated(err))
				return
			}

			ctx = request.NewContext(ctx).WithAccount(account)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// LoginRequired rejects requests without a calling account
func LoginRequired() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if _, ok := request.NewContext(r.Context()).GetAccount(); !ok {
				render.Error(w, errUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

var errUnauthorized = unauthenticated(errors.New("account required"))

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimPrefix(s, "Bearer ")
}
