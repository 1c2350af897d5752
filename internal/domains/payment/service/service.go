package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"time"

	"larisa/config"
	"larisa/infras/otel"
	"larisa/infras/prometheus"
	"larisa/infras/stripe"
	"larisa/internal/domains/payment/model/dto"
	"larisa/shared/constant"
	"larisa/shared/failure"

	"github.com/rs/zerolog/log"
)

const externalStripe = "stripe"

type Payment interface {
	CreateIntent(ctx context.Context, req dto.IntentRequest) (dto.IntentResponse, error)
}

type serviceImpl struct {
	stripe  stripe.Stripe
	cfg     *config.Config
	otel    otel.Otel
	metrics *prometheus.Metrics
}

func New(stripe stripe.Stripe, cfg *config.Config, otel otel.Otel, metrics *prometheus.Metrics) Payment {
	return &serviceImpl{
		stripe:  stripe,
		cfg:     cfg,
		otel:    otel,
		metrics: metrics,
	}
}

// CreateIntent asks the processor for an intent of round(price*100) minor
// units. Any processor failure surfaces as a PaymentProvider failure.
func (s *serviceImpl) CreateIntent(ctx context.Context, req dto.IntentRequest) (res dto.IntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.CreateIntent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	amount := req.MinorUnits()
	if amount <= 0 {
		return res, failure.BadRequestFromString("price must be greater than 0") // nolint:wrapcheck
	}

	start := time.Now()
	clientSecret, err := s.stripe.CreatePaymentIntent(ctx, amount, s.cfg.External.Stripe.Currency)
	s.metrics.ObserveExternal(externalStripe, err, time.Since(start))

	if err != nil {
		log.Error().Err(err).Int64("amount", amount).Msg("failed to create payment intent")

		return res, failure.PaymentProvider(err) // nolint:wrapcheck
	}

	return dto.IntentResponse{ClientSecret: clientSecret}, nil
}
