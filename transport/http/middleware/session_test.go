package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larisa/config"
	"larisa/infras/jwt"
	"larisa/infras/otel/mocks"
	"larisa/shared/constant"
	"larisa/transport/http/middleware"
)

func newConfig(env string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = env
	cfg.App.Name = "larisa"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireDays = 356
	cfg.JWT.CookieName = "token"

	return cfg
}

func protected(t *testing.T, called *bool) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true

		principal, ok := middleware.PrincipalFrom(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "guest@larisa.test", principal.Email)
		assert.Equal(t, "guest@larisa.test", r.Context().Value(constant.ContextKeyUserEmail))

		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	cfg := newConfig(constant.ServerEnvDevelopment)
	signer := jwt.New(cfg)
	session := middleware.NewSession(signer, mocks.NewOtel(), cfg)

	token, _, err := signer.Sign(map[string]any{jwt.ClaimEmail: "guest@larisa.test"})
	require.NoError(t, err)

	otherCfg := newConfig(constant.ServerEnvDevelopment)
	otherCfg.JWT.Secret = "another-secret"
	forged, _, err := jwt.New(otherCfg).Sign(map[string]any{jwt.ClaimEmail: "guest@larisa.test"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		cookie      *http.Cookie
		wantCode    int
		wantMessage string
		wantCalled  bool
	}{
		{
			name:        "missing cookie",
			wantCode:    http.StatusUnauthorized,
			wantMessage: `{"message":"Not Authorized"}`,
		},
		{
			name:        "empty cookie",
			cookie:      &http.Cookie{Name: "token", Value: ""},
			wantCode:    http.StatusUnauthorized,
			wantMessage: `{"message":"Not Authorized"}`,
		},
		{
			name:        "foreign signature",
			cookie:      &http.Cookie{Name: "token", Value: forged},
			wantCode:    http.StatusUnauthorized,
			wantMessage: `{"message":"Unauthorized"}`,
		},
		{
			name:        "garbage token",
			cookie:      &http.Cookie{Name: "token", Value: "not-a-jwt"},
			wantCode:    http.StatusUnauthorized,
			wantMessage: `{"message":"Unauthorized"}`,
		},
		{
			name:       "valid session",
			cookie:     &http.Cookie{Name: "token", Value: token},
			wantCode:   http.StatusNoContent,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			request := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)

			if tt.cookie != nil {
				request.AddCookie(tt.cookie)
			}

			recorder := httptest.NewRecorder()
			session.Authenticate(protected(t, &called)).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantCalled, called)

			if tt.wantMessage != "" {
				assert.JSONEq(t, tt.wantMessage, recorder.Body.String())
			}
		})
	}
}

func TestCookieAttributes(t *testing.T) {
	tests := []struct {
		name         string
		env          string
		wantSecure   bool
		wantSameSite http.SameSite
	}{
		{
			name:         "development",
			env:          constant.ServerEnvDevelopment,
			wantSameSite: http.SameSiteLaxMode,
		},
		{
			name:         "production",
			env:          constant.ServerEnvProduction,
			wantSecure:   true,
			wantSameSite: http.SameSiteNoneMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(tt.env)
			session := middleware.NewSession(jwt.New(cfg), mocks.NewOtel(), cfg)

			issued := httptest.NewRecorder()
			session.SetCookie(issued, "signed", time.Now().Add(time.Hour))

			revoked := httptest.NewRecorder()
			session.ClearCookie(revoked)

			issuedCookies := issued.Result().Cookies()
			revokedCookies := revoked.Result().Cookies()

			require.Len(t, issuedCookies, 1)
			require.Len(t, revokedCookies, 1)

			set, cleared := issuedCookies[0], revokedCookies[0]

			assert.Equal(t, "token", set.Name)
			assert.Equal(t, "signed", set.Value)
			assert.True(t, set.HttpOnly)
			assert.Equal(t, tt.wantSecure, set.Secure)
			assert.Equal(t, tt.wantSameSite, set.SameSite)
			assert.Positive(t, set.MaxAge)

			assert.Equal(t, set.Name, cleared.Name)
			assert.Empty(t, cleared.Value)
			assert.Equal(t, set.Path, cleared.Path)
			assert.Equal(t, set.HttpOnly, cleared.HttpOnly)
			assert.Equal(t, set.Secure, cleared.Secure)
			assert.Equal(t, set.SameSite, cleared.SameSite)
			assert.Contains(t, revoked.Header().Get("Set-Cookie"), "Max-Age=0")
		})
	}
}
