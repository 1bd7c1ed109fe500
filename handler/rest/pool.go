package rest

import (
	"errors"
	"net/http"

	"nftpool/handler/param"
	"nftpool/handler/render"
	"nftpool/handler/views"
	"nftpool/service/pool"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

func poolHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.Pool{
			PoolInfo: p.Info(),
			Prices:   p.Prices(),
		})
	}
}

func bucketsHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets := p.Buckets()

		list := make([]views.Bucket, len(buckets))
		for i, b := range buckets {
			list[i] = views.BucketView(b)
		}

		render.JSON(w, list)
	}
}

func bucketHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		price, err := param.Decimal(r, "price")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		info, err := p.Bucket(price)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.BucketView(info))
	}
}

func borrowerHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := param.String(r, "address")
		if !common.IsHexAddress(address) {
			render.BadRequest(w, errors.New("invalid address"))
			return
		}

		addr := common.HexToAddress(address)
		render.JSON(w, views.BorrowerView(addr.Hex(), p.BorrowerInfo(addr)))
	}
}

func lenderHandler(p *pool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Price decimal.Decimal `json:"price"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		address := param.String(r, "address")
		if !common.IsHexAddress(address) {
			render.BadRequest(w, errors.New("invalid address"))
			return
		}

		addr := common.HexToAddress(address)
		render.JSON(w, views.Lender{
			Address: addr.Hex(),
			Price:   params.Price,
			LP:      p.LenderLP(params.Price, addr),
		})
	}
}
