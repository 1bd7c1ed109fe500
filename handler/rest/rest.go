package rest

import (
	"errors"
	"net/http"

	"nftpool/core"
	"nftpool/handler/auth"
	"nftpool/handler/render"
	"nftpool/handler/request"
	"nftpool/service/pool"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(p *pool.Pool, events core.EventStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pool", poolHandler(p))
	router.Get("/buckets", bucketsHandler(p))
	router.Get("/buckets/{price}", bucketHandler(p))
	router.Get("/borrowers/{address}", borrowerHandler(p))
	router.Get("/lenders/{address}", lenderHandler(p))
	router.Get("/events", eventsHandler(p, events))
	router.Get("/events/{trace}", eventHandler(events))

	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired())

		r.Post("/initialize", initializeHandler(p))
		r.Post("/collateral/add", addCollateralHandler(p))
		r.Post("/collateral/remove", removeCollateralHandler(p))
		r.Post("/collateral/claim", claimCollateralHandler(p))
		r.Post("/purchase", purchaseHandler(p))
		r.Post("/quote/add", addQuoteHandler(p))
		r.Post("/quote/remove", removeQuoteHandler(p))
		r.Post("/borrow", borrowHandler(p))
		r.Post("/repay", repayHandler(p))
	})

	return router
}

func account(r *http.Request) common.Address {
	addr, _ := request.NewContext(r.Context()).GetAccount()
	return addr
}

func parseTokenIDs(values []string) ([]core.TokenID, error) {
	ids := make([]core.TokenID, 0, len(values))
	for _, v := range values {
		id, err := core.ParseTokenID(v)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}
