package handler

import (
	"net/http"

	"nftpool/core"
	"nftpool/handler/auth"
	"nftpool/handler/render"
	"nftpool/handler/rest"
	"nftpool/service/pool"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	pool    *pool.Pool
	events  core.EventStore
	session core.Session
}

// New new server function
func New(
	p *pool.Pool,
	events core.EventStore,
	session core.Session,
) Server {
	return Server{
		pool:    p,
		events:  events,
		session: session,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.Use(auth.HandleAuthentication(s.session))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.pool, s.events))

	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
