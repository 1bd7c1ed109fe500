package hc

import (
	"context"
	"net/http"
	"time"

	"nftpool/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/twitchtv/twirp"
)

// Check a named readiness probe
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Handle handle hc request, / reports uptime and /ready runs the checks
func Handle(ver string, checks ...Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver))
	r.Handle("/ready", handleReady(checks))
	return r
}

func handle(version string) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
		})
	}
}

func handleReady(checks []Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := render.H{}
		for _, c := range checks {
			if err := c.Fn(r.Context()); err != nil {
				render.Error(w, twirp.NewError(twirp.Unavailable, c.Name+": "+err.Error()))
				return
			}

			results[c.Name] = "ok"
		}

		render.JSON(w, results)
	}
}
