package param

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct {
	From  int64           `json:"from"`
	Limit int             `json:"limit"`
	Price decimal.Decimal `json:"price"`
}

type body struct {
	Recipient string   `json:"recipient" valid:"address,optional"`
	TokenIDs  []string `json:"token_ids" valid:"required"`
}

func TestBindingQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/events?from=10&limit=5&price=60.5", nil)

	var q query
	require.NoError(t, Binding(r, &q))
	assert.Equal(t, int64(10), q.From)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, "60.5", q.Price.String())
}

func TestBindingBody(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/collateral/claim", strings.NewReader(`{"token_ids":["1","2"],"recipient":"0x00000000000000000000000000000000000000b2"}`))

		var b body
		require.NoError(t, Binding(r, &b))
		assert.Equal(t, []string{"1", "2"}, b.TokenIDs)
	})

	t.Run("bad address", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/collateral/claim", strings.NewReader(`{"token_ids":["1"],"recipient":"0xzz"}`))

		var b body
		assert.Error(t, Binding(r, &b))
	})

	t.Run("missing tokens", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/collateral/claim", strings.NewReader(`{}`))

		var b body
		assert.Error(t, Binding(r, &b))
	})
}
