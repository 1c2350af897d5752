package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"larisa/config"
	"larisa/infras/otel"
	"larisa/shared/constant"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrNotConfigured = errors.New("payment provider is not configured")

// Stripe creates payment intents with the processor.
type Stripe interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type intentAPI interface {
	New(params *stripeGo.PaymentIntentParams) (*stripeGo.PaymentIntent, error)
}

type stripeImpl struct {
	intents intentAPI
	otel    otel.Otel
}

func New(config *config.Config, otel otel.Otel) Stripe {
	var intents intentAPI

	if key := config.External.Stripe.SecretKey; key != "" {
		intents = client.New(key, nil).PaymentIntents
	} else {
		log.Warn().Msg("No Stripe secret key configured, payment intents will fail")
	}

	return newWithAPI(intents, otel)
}

func newWithAPI(intents intentAPI, otel otel.Otel) Stripe {
	return &stripeImpl{
		intents: intents,
		otel:    otel,
	}
}

// CreatePaymentIntent requests an intent for amount minor units with automatic
// payment methods enabled.
func (s *stripeImpl) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreatePaymentIntent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"amount":   amount,
		"currency": currency,
	})

	if s.intents == nil {
		return constant.Empty, ErrNotConfigured
	}

	params := &stripeGo.PaymentIntentParams{
		Amount:   stripeGo.Int64(amount),
		Currency: stripeGo.String(currency),
		AutomaticPaymentMethods: &stripeGo.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeGo.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := s.intents.New(params)
	if err != nil {
		var stripeErr *stripeGo.Error
		if errors.As(err, &stripeErr) {
			log.Error().Str("code", string(stripeErr.Code)).Str("type", string(stripeErr.Type)).Msg("stripe rejected payment intent")

			return constant.Empty, errors.New(stripeErr.Msg) //nolint:err113
		}

		return constant.Empty, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}
