package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"larisa/config"
	"larisa/infras/jwt"
	otelMocks "larisa/infras/otel/mocks"
	authMocks "larisa/internal/domains/auth/mocks"
	"larisa/internal/domains/auth/model/dto"
	"larisa/internal/handlers/auth"
	"larisa/shared/failure"
	"larisa/transport/http/middleware"
)

func setup(t *testing.T) (chi.Router, *authMocks.MockAuth, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "larisa"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireDays = 1
	cfg.JWT.CookieName = "token"

	signer := jwt.New(cfg)
	service := authMocks.NewMockAuth(gomock.NewController(t))

	handler := auth.New(service, middleware.NewSession(signer, otelMocks.NewOtel(), cfg), otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, service, signer
}

func TestIssueSetsCookie(t *testing.T) {
	router, service, _ := setup(t)

	service.EXPECT().
		Issue(gomock.Any(), map[string]any{"email": "guest@larisa.test"}).
		Return(dto.Session{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/jwt", strings.NewReader(`{"email":"guest@larisa.test"}`)))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestIssueRejectsMissingEmail(t *testing.T) {
	router, service, _ := setup(t)

	service.EXPECT().
		Issue(gomock.Any(), gomock.Any()).
		Return(dto.Session{}, failure.BadRequestFromString("email is required"))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/jwt", strings.NewReader(`{"name":"guest"}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	router, _, _ := setup(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
	assert.Contains(t, recorder.Header().Get("Set-Cookie"), "token=;")
	assert.Contains(t, recorder.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestMe(t *testing.T) {
	router, _, signer := setup(t)

	token, _, err := signer.Sign(map[string]any{jwt.ClaimEmail: "guest@larisa.test", "name": "Guest"})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.AddCookie(&http.Cookie{Name: "token", Value: token})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email":"guest@larisa.test"`)
	assert.Contains(t, recorder.Body.String(), `"name":"Guest"`)

	unauthenticated := httptest.NewRecorder()
	router.ServeHTTP(unauthenticated, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, unauthenticated.Code)
}
