package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"larisa/config"
	"larisa/shared/timezone"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

const (
	ClaimEmail     = "email"
	claimExpiresAt = "exp"
	claimIssuedAt  = "iat"
	claimIssuer    = "iss"
	claimTokenID   = "jti"
)

// Principal is the identity decoded from a verified session token.
type Principal struct {
	Email     string         `json:"email"`
	Claims    map[string]any `json:"claims"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// JWT signs and verifies session tokens.
type JWT interface {
	Sign(claims map[string]any) (token string, expiresAt time.Time, err error)
	Verify(token string) (Principal, error)
}

type Service struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

func New(cfg *config.Config) JWT {
	return &Service{
		secret:   []byte(cfg.JWT.Secret),
		issuer:   cfg.App.Name,
		lifetime: time.Duration(cfg.JWT.ExpireDays) * 24 * time.Hour,
	}
}

// Sign issues an HS256 token carrying every supplied claim plus expiry and
// issuer. The email claim is mandatory; registered claims in the input are overwritten.
func (s *Service) Sign(claims map[string]any) (string, time.Time, error) {
	email, _ := claims[ClaimEmail].(string)
	if email == "" {
		return "", time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidClaim, ClaimEmail)
	}

	now := timezone.Now()
	expiresAt := now.Add(s.lifetime)

	mapClaims := jwt.MapClaims{}
	maps.Copy(mapClaims, claims)

	mapClaims[claimIssuedAt] = jwt.NewNumericDate(now)
	mapClaims[claimExpiresAt] = jwt.NewNumericDate(expiresAt)
	mapClaims[claimIssuer] = s.issuer
	mapClaims[claimTokenID] = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)

	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

func (s *Service) Verify(tokenString string) (Principal, error) {
	mapClaims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, mapClaims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpiredToken
		}

		return Principal{}, ErrInvalidToken
	}

	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	email, _ := mapClaims[ClaimEmail].(string)
	if email == "" {
		return Principal{}, ErrInvalidClaim
	}

	principal := Principal{
		Email:  email,
		Claims: map[string]any{},
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		principal.ExpiresAt = exp.Time
	}

	for key, value := range mapClaims {
		switch key {
		case claimExpiresAt, claimIssuedAt, claimIssuer, claimTokenID:
			continue
		default:
			principal.Claims[key] = value
		}
	}

	return principal, nil
}
