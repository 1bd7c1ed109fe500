package rest

import (
	"net/http"

	"nftpool/handler/param"
	"nftpool/handler/render"
	"nftpool/handler/views"
	"nftpool/service/pool"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type tokensParams struct {
	TokenIDs []string `json:"token_ids"`
}

func initializeHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			TokenIDs     []string        `json:"token_ids"`
			InterestRate decimal.Decimal `json:"interest_rate"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		ids, err := parseTokenIDs(params.TokenIDs)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := p.InitializeSubset(r.Context(), account(r), ids, params.InterestRate); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func addCollateralHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params tokensParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		ids, err := parseTokenIDs(params.TokenIDs)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := p.AddCollateral(r.Context(), account(r), ids); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func removeCollateralHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params tokensParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		ids, err := parseTokenIDs(params.TokenIDs)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := p.RemoveCollateral(r.Context(), account(r), ids); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func claimCollateralHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			tokensParams
			Recipient string          `json:"recipient" valid:"address,optional"`
			Price     decimal.Decimal `json:"price"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		ids, err := parseTokenIDs(params.TokenIDs)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		var recipient common.Address
		if params.Recipient != "" {
			recipient = common.HexToAddress(params.Recipient)
		}

		burned, err := p.ClaimCollateral(r.Context(), account(r), recipient, ids, params.Price)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"lp_burned": burned})
	}
}

func purchaseHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			tokensParams
			Amount decimal.Decimal `json:"amount"`
			Price  decimal.Decimal `json:"price"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		ids, err := parseTokenIDs(params.TokenIDs)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		bid, err := p.PurchaseBid(r.Context(), account(r), params.Amount, params.Price, ids)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"price":     bid.Price,
			"amount":    bid.Amount,
			"token_ids": views.TokenIDs(bid.Consumed),
		})
	}
}
