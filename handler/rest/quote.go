package rest

import (
	"net/http"

	"nftpool/handler/param"
	"nftpool/handler/render"
	"nftpool/handler/views"
	"nftpool/service/pool"

	"github.com/shopspring/decimal"
)

type amountParams struct {
	Amount decimal.Decimal `json:"amount"`
	Price  decimal.Decimal `json:"price"`
}

func addQuoteHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		lp, err := p.AddQuoteToken(r.Context(), account(r), params.Amount, params.Price)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"lp": lp})
	}
}

func removeQuoteHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, lp, err := p.RemoveQuoteToken(r.Context(), account(r), params.Amount, params.Price)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"amount": amount, "lp": lp})
	}
}

func borrowHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount     decimal.Decimal `json:"amount"`
			LimitPrice decimal.Decimal `json:"limit_price"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := p.Borrow(r.Context(), account(r), params.Amount, params.LimitPrice); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func repayHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		repaid, err := p.Repay(r.Context(), account(r), params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"amount": repaid})
	}
}
