package middleware

import (
	"context"
	"errors"
	"larisa/config"
	"larisa/infras/jwt"
	"larisa/infras/otel"
	"larisa/shared/constant"
	"larisa/shared/failure"
	"larisa/transport/http/response"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	messageMissingSession = "Not Authorized"
	messageInvalidSession = "Unauthorized"
)

// Session reads, writes and clears the session cookie.
type Session interface {
	Authenticate(next http.Handler) http.Handler
	SetCookie(w http.ResponseWriter, token string, expiresAt time.Time)
	ClearCookie(w http.ResponseWriter)
}

type sessionImpl struct {
	jwt  jwt.JWT
	otel otel.Otel
	cfg  *config.Config
}

func NewSession(jwt jwt.JWT, otel otel.Otel, cfg *config.Config) Session {
	return &sessionImpl{
		jwt:  jwt,
		otel: otel,
		cfg:  cfg,
	}
}

// cookie is the single builder for both issue and revoke so that the browser
// matches the two and actually drops the session.
func (m *sessionImpl) cookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     m.cfg.JWT.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if m.cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}

	return cookie
}

func (m *sessionImpl) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	cookie := m.cookie(token)
	cookie.Expires = expiresAt
	cookie.MaxAge = int(time.Until(expiresAt).Seconds())

	http.SetCookie(w, cookie)
}

func (m *sessionImpl) ClearCookie(w http.ResponseWriter) {
	cookie := m.cookie("")
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

// Authenticate rejects the request before the wrapped handler runs unless it
// carries a valid session cookie. The verified principal is put in the context.
func (m *sessionImpl) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "session.middleware")

		cookie, err := r.Cookie(m.cfg.JWT.CookieName)
		if err != nil || cookie.Value == "" {
			err = failure.Unauthorized(messageMissingSession)

			scope.TraceError(err)
			scope.End()
			response.WithError(w, err)

			return
		}

		principal, err := m.jwt.Verify(cookie.Value)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				log.Debug().Msg("session token has expired")
			}

			err = failure.Unauthorized(messageInvalidSession)

			scope.TraceError(err)
			scope.End()
			response.WithError(w, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyPrincipal, principal)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, principal.Email)

		scope.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFrom returns the principal attached by Authenticate.
func PrincipalFrom(ctx context.Context) (jwt.Principal, bool) {
	principal, ok := ctx.Value(constant.ContextKeyPrincipal).(jwt.Principal)

	return principal, ok
}
