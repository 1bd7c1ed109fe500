package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nftpool/handler"
	"nftpool/handler/hc"
	"nftpool/worker"
	"nftpool/worker/reporter"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run nftpool api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		database := provideDatabase()
		defer database.Close()

		properties := providePropertyStore(database)
		snapshots := provideSnapshotStore(database)
		events := provideEventStore(database)

		p, err := providePool(provideJournal(database, snapshots, events, properties))
		if err != nil {
			log.WithError(err).Fatalln("providePool")
		}

		snap, err := snapshots.Find(ctx, p.Address())
		if err != nil {
			log.WithError(err).Fatalln("snapshots.Find")
		}

		if snap != nil {
			if err := p.Restore(snap); err != nil {
				log.WithError(err).Fatalln("pool.Restore")
			}

			log.Infoln("pool restored at version", snap.Version)
		}

		interval, _ := cmd.Flags().GetDuration("report")
		rep, err := reporter.New(p, properties, fmt.Sprintf("@every %s", interval))
		if err != nil {
			log.WithError(err).Fatalln("reporter.New")
		}

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, hc.Check{
				Name: "pool",
				Fn: func(ctx context.Context) error {
					return p.CheckInvariants()
				},
			}))
		}

		{
			// metrics
			mux.Handle("/metrics", promhttp.Handler())
		}

		{
			//restful api
			mux.Mount("/api", handler.New(p, events, provideSession()).HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		shutdown := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}
		}

		ctx, quit := context.WithCancel(ctx)
		signal.WithContextFunc(ctx, quit)

		serve := func() error {
			logrus.Infoln("serve at", addr)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}

			return nil
		}

		if err := runServices(ctx, rep, serve, shutdown); err != nil {
			logrus.WithError(err).Fatal("server aborted")
		}
	},
}

// runServices runs serve next to the worker until ctx is done or either of
// them fails, shutdown must make serve return
func runServices(ctx context.Context, w worker.Worker, serve func() error, shutdown func()) error {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := w.Start(); err != nil {
			log.WithError(err).Errorln("worker.Start")
			return err
		}

		<-ctx.Done()
		return w.Stop()
	})

	g.Go(func() error {
		defer cancel()
		return serve()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdown()
		return nil
	})

	return g.Wait()
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Duration("report", 30*time.Second, "pool report interval")
}
