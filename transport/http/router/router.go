package router

import (
	"larisa/config"
	"larisa/infras/prometheus"
	"larisa/internal/handlers/auth"
	"larisa/internal/handlers/booking"
	"larisa/internal/handlers/contact"
	"larisa/internal/handlers/payment"
	"larisa/internal/handlers/review"
	"larisa/internal/handlers/room"
	"larisa/internal/handlers/user"
	"larisa/shared/constant"
	"larisa/transport/http/middleware"
	"larisa/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Review  review.Handler
	Contact contact.Handler
	User    user.Handler
	Payment payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	metrics        *prometheus.Metrics
	config         *config.Config
}

// Health reports whether the server still accepts traffic.
type Health func() bool

func (r *Router) SetupRoutes(router chi.Router, healthy Health) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.app.Tracing)
	router.Use(r.app.RequestLogger)
	router.Use(r.app.Metrics)

	if r.config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.config.App.CORS.AllowedHeaders,
			AllowCredentials: r.config.App.CORS.AllowCredentials,
			MaxAge:           r.config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		response.WithText(w, http.StatusOK, constant.ResponseBanner)
	})

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !healthy() {
			response.WithPreparingShutdown(w)

			return
		}

		response.WithMessage(w, http.StatusOK, constant.ResponseHealthy)
	})

	router.Handle("/metrics", r.metrics.Handler())

	router.Route("/v1", func(routerGroup chi.Router) {
		if seconds := r.config.Server.RequestTimeoutSeconds; seconds > 0 {
			routerGroup.Use(chiMiddleware.Timeout(time.Duration(seconds) * time.Second))
		}

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, metrics *prometheus.Metrics, config *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		metrics:        metrics,
		config:         config,
	}
}
