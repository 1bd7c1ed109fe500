package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nftpool/core"
	"nftpool/handler/request"
	"nftpool/service/session"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")

func whoami(w http.ResponseWriter, r *http.Request) {
	account, _ := request.NewContext(r.Context()).GetAccount()
	_, _ = w.Write([]byte(account.Hex()))
}

func TestHeaderAccount(t *testing.T) {
	h := HandleAuthentication(nil)(LoginRequired()(http.HandlerFunc(whoami)))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(AccountHeader, alice.Hex())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alice.Hex(), w.Body.String())

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	s := session.New(core.Auth{Secret: "s3cret"})
	h := HandleAuthentication(s)(LoginRequired()(http.HandlerFunc(whoami)))

	token, err := session.Issue("s3cret", "", alice, time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alice.Hex(), w.Body.String())

	// the account header is ignored once tokens are required
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(AccountHeader, alice.Hex())
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bad")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
