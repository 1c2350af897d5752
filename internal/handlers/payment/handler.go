package payment

import (
	"larisa/infras/otel"
	"larisa/internal/domains/payment/model/dto"
	"larisa/internal/domains/payment/service"
	"larisa/shared/constant"
	"larisa/shared/validator"
	"larisa/transport/http/middleware"
	"larisa/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	session middleware.Session
	otel    otel.Otel
}

func New(service service.Payment, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.With(handler.session.Authenticate).Post("/intent", handler.CreateIntent)
	})
}

// CreateIntent opens a payment intent for the price in major units.
// @Summary Create a payment intent
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.IntentRequest true "Intent Request"
// @Success 200 {object} dto.IntentResponse
// @Failure 400 {object} response.Message
// @Failure 502 {object} response.Message
// @Router /v1/payments/intent [post]
func (handler *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateIntent")
	defer scope.End()

	req := dto.IntentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateIntent(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment intent")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
