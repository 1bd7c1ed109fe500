package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nftpool/core"
	"nftpool/handler/auth"
	"nftpool/pkg/number"
	"nftpool/service/pool"
	"nftpool/service/vault"
	"nftpool/store/journal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	poolAddress = common.HexToAddress("0x0000000000000000000000000000000000000900")
	alice       = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
)

type memoryEvents struct {
	journal *journal.Memory
}

func (s memoryEvents) Create(ctx context.Context, tx *db.DB, events ...*core.Event) error {
	return nil
}

func (s memoryEvents) FindByTrace(ctx context.Context, traceID string) (*core.Event, error) {
	for _, e := range s.journal.Events() {
		if e.TraceID == traceID {
			return e, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (s memoryEvents) List(ctx context.Context, pool string, fromID int64, limit int) ([]*core.Event, error) {
	return s.journal.Events(), nil
}

type response struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func newHandler(t *testing.T) (http.Handler, *journal.Memory) {
	v := vault.New()
	v.Mint(alice, core.NewTokenIDs(1, 2, 3)...)
	v.Credit(alice, number.Decimal("1000"))

	mem := journal.NewMemory()
	p, err := pool.New(core.PoolConfig{
		Address: poolAddress.Hex(),
		Prices:  []decimal.Decimal{number.Decimal("40"), number.Decimal("60")},
	},
		pool.WithClock(func() time.Time { return time.Unix(1_700_000_000, 0) }),
		pool.WithJournal(mem),
		pool.WithNFTService(v),
		pool.WithQuoteService(v),
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(auth.HandleAuthentication(nil))
	r.Mount("/", Handle(p, memoryEvents{journal: mem}))
	return r, mem
}

func do(h http.Handler, method, path, body string) (*httptest.ResponseRecorder, response) {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}

	r.Header.Set(auth.AccountHeader, alice.Hex())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var resp response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCollateralRoutes(t *testing.T) {
	h, mem := newHandler(t)

	w, _ := do(h, http.MethodPost, "/collateral/add", `{"token_ids":["1"]}`)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code, "pool not initialized")

	w, _ = do(h, http.MethodPost, "/initialize", `{"interest_rate":"0.05"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(h, http.MethodPost, "/collateral/add", `{"token_ids":["1","2"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(h, http.MethodPost, "/collateral/add", `{"token_ids":["2"]}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp := do(h, http.MethodGet, "/borrowers/"+alice.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var borrower struct {
		CollateralIDs     []string `json:"collateral_ids"`
		Collateralization string   `json:"collateralization"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &borrower))
	assert.Equal(t, []string{"1", "2"}, borrower.CollateralIDs)
	assert.Equal(t, "inf", borrower.Collateralization)

	w, resp = do(h, http.MethodPost, "/collateral/remove", `{"token_ids":["3"]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int(core.ErrNotDeposited), resp.Code)

	w, _ = do(h, http.MethodPost, "/collateral/remove", `{"token_ids":["2"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	events := mem.Events()
	require.Len(t, events, 3)
	assert.Equal(t, core.EventTypeRemoveNFTCollateral, events[2].Type)

	w, resp = do(h, http.MethodGet, "/events/"+events[2].TraceID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"token_ids":["2"]`)
}

func TestBadRequests(t *testing.T) {
	h, _ := newHandler(t)

	w, _ := do(h, http.MethodPost, "/collateral/add", `{"token_ids":["abc"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(h, http.MethodGet, "/borrowers/0x01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(h, http.MethodGet, "/events/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(h, http.MethodGet, "/events/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(h, http.MethodGet, "/buckets/55", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginRequired(t *testing.T) {
	h, _ := newHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/initialize", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuoteRoutes(t *testing.T) {
	h, _ := newHandler(t)

	w, _ := do(h, http.MethodPost, "/initialize", `{"interest_rate":"0.05"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := do(h, http.MethodPost, "/quote/add", `{"amount":"100","price":"60"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lp":"100"}`, string(resp.Data))

	w, resp = do(h, http.MethodGet, "/lenders/"+alice.Hex()+"?price=60", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"lp":"100"`)

	w, resp = do(h, http.MethodGet, "/buckets/60", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"deposit":"100"`)

	w, _ = do(h, http.MethodPost, "/quote/add", `{"amount":"100","price":"55"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
