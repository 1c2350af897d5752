package auth

import (
	"encoding/json"
	"larisa/infras/otel"
	"larisa/internal/domains/auth/model/dto"
	"larisa/internal/domains/auth/service"
	"larisa/shared/constant"
	"larisa/shared/failure"
	"larisa/shared/validator"
	"larisa/transport/http/middleware"
	"larisa/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	session middleware.Session
	otel    otel.Otel
}

func New(service service.Auth, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/jwt", handler.Issue)
		r.Post("/logout", handler.Logout)
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.With(handler.session.Authenticate).Get("/me", handler.Me)
	})
}

// Issue signs the identity claims in the body and sets the session cookie.
// @Summary Issue a session
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} response.Message
// @Router /v1/auth/jwt [post]
func (handler *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Issue")
	defer scope.End()

	claims := map[string]any{}

	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		err = failure.BadRequestFromString("failed to decode request body")

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	session, err := handler.service.Issue(ctx, claims)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue session")

		response.WithError(w, err)

		return
	}

	handler.session.SetCookie(w, session.Token, session.ExpiresAt)

	response.WithJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// Logout clears the session cookie. It always succeeds.
// @Summary Revoke the session
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /v1/auth/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	handler.session.ClearCookie(w)

	response.WithJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// Register handles user registration
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	handler.session.SetCookie(w, session.Token, session.ExpiresAt)

	response.WithJSON(w, http.StatusCreated, dto.SuccessResponse{Success: true})
}

// Login handles user login
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} response.Message
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login")

		response.WithError(w, err)

		return
	}

	handler.session.SetCookie(w, session.Token, session.ExpiresAt)

	response.WithJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// Me returns the principal of the current session.
// @Summary Current principal
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.PrincipalResponse
// @Failure 401 {object} response.Message
// @Router /v1/auth/me [get]
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		response.WithError(w, failure.Unauthorized("Unauthorized"))

		return
	}

	res := dto.PrincipalResponse{}
	res.FromPrincipal(principal)

	response.WithJSON(w, http.StatusOK, res)
}
