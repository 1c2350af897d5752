//go:build wireinject
// +build wireinject

package di

import (
	"larisa/config"
	"larisa/infras/jwt"
	"larisa/infras/kafka"
	"larisa/infras/otel"
	"larisa/infras/postgres"
	"larisa/infras/prometheus"
	"larisa/infras/redis"
	"larisa/infras/s3"
	"larisa/infras/stripe"
	"larisa/shared/cache"
	"larisa/transport/http"
	"larisa/transport/http/middleware"
	"larisa/transport/http/router"

	"github.com/google/wire"

	authService "larisa/internal/domains/auth/service"
	availabilityService "larisa/internal/domains/availability/service"
	bookingRepository "larisa/internal/domains/booking/repository"
	bookingService "larisa/internal/domains/booking/service"
	contactRepository "larisa/internal/domains/contact/repository"
	contactService "larisa/internal/domains/contact/service"
	paymentService "larisa/internal/domains/payment/service"
	reviewRepository "larisa/internal/domains/review/repository"
	reviewService "larisa/internal/domains/review/service"
	roomRepository "larisa/internal/domains/room/repository"
	roomService "larisa/internal/domains/room/service"
	userRepository "larisa/internal/domains/user/repository"
	userService "larisa/internal/domains/user/service"
	authHandler "larisa/internal/handlers/auth"
	bookingHandler "larisa/internal/handlers/booking"
	contactHandler "larisa/internal/handlers/contact"
	paymentHandler "larisa/internal/handlers/payment"
	reviewHandler "larisa/internal/handlers/review"
	roomHandler "larisa/internal/handlers/room"
	userHandler "larisa/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	stripe.New,
	prometheus.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSession,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	availabilityService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	userDomain,
	reviewRepository.New,
	reviewService.New,
	contactRepository.New,
	contactService.New,
	paymentService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	contactHandler.New,
	userHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
