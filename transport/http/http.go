package http

import (
	"context"
	"errors"
	"larisa/config"
	"larisa/infras/kafka"
	"larisa/infras/otel"
	"larisa/infras/postgres"
	"larisa/infras/prometheus"
	"larisa/transport/http/router"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const readHeaderTimeout = 10 * time.Second

type HTTP struct {
	Config    *config.Config
	Router    router.Router
	Metrics   *prometheus.Metrics
	DB        *postgres.Connection
	Publisher kafka.Publisher
	Otel      otel.Otel
	state     atomic.Int32
}

func New(
	cfg *config.Config,
	r router.Router,
	metrics *prometheus.Metrics,
	db *postgres.Connection,
	publisher kafka.Publisher,
	otel otel.Otel,
) *HTTP {
	return &HTTP{
		Config:    cfg,
		Router:    r,
		Metrics:   metrics,
		DB:        db,
		Publisher: publisher,
		Otel:      otel,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Handler builds the routed handler and marks the server ready.
func (h *HTTP) Handler() http.Handler {
	mux := chi.NewRouter()

	h.Router.SetupRoutes(mux, func() bool { return h.State() == ServerStateReady })
	h.state.Store(int32(ServerStateReady))

	return mux
}

// Serve runs the API server, and the metrics server when an address is
// configured, until SIGINT or SIGTERM.
func (h *HTTP) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}}

	if h.Config.Metrics.Enable && h.Config.Metrics.Addr != "" {
		servers = append(servers, &http.Server{
			Addr:              h.Config.Metrics.Addr,
			Handler:           h.Metrics.Handler(),
			ReadHeaderTimeout: readHeaderTimeout,
		})
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for _, server := range servers {
		group.Go(func() error {
			log.Info().Str("addr", server.Addr).Msg("Starting up HTTP server.")

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err //nolint:wrapcheck
			}

			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()

		h.shutdown(servers)

		return nil
	})

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server stopped unexpectedly")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// shutdown keeps serving while the health check reports unavailable so load
// balancers can drain, then stops the servers and closes the backends.
func (h *HTTP) shutdown(servers []*http.Server) {
	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env != "development" {
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")
		h.state.Store(int32(ServerStateInGracePeriod))

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")
	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second+time.Second)
	defer cancel()

	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Str("addr", server.Addr).Msg("failed to shut down server")
		}
	}

	if err := h.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka publisher")
	}

	if err := h.DB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}

	if err := h.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shut down tracer")
	}
}
