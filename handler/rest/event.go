package rest

import (
	"net/http"

	"nftpool/core"
	"nftpool/handler/param"
	"nftpool/handler/render"
	"nftpool/handler/views"
	"nftpool/service/pool"

	"github.com/fox-one/pkg/store"
	"github.com/gofrs/uuid"
)

func eventsHandler(p *pool.Pool, events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			From  int64 `json:"from"`
			Limit int   `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		list, err := events.List(r.Context(), p.Address().Hex(), params.From, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.EventsView(list))
	}
}

func eventHandler(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trace := param.String(r, "trace")
		if _, err := uuid.FromString(trace); err != nil {
			render.BadRequest(w, err)
			return
		}

		event, err := events.FindByTrace(r.Context(), trace)
		if err != nil {
			if store.IsErrNotFound(err) {
				render.NotFoundRequest(w, err)
				return
			}

			render.Error(w, err)
			return
		}

		render.JSON(w, views.EventView(event))
	}
}
