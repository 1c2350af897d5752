package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"larisa/config"
	"larisa/infras/jwt"
	"larisa/infras/otel"
	"larisa/internal/domains/auth/model/dto"
	userModel "larisa/internal/domains/user/model"
	userRepo "larisa/internal/domains/user/repository"
	"larisa/shared"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"
	"larisa/shared/password"
	"larisa/shared/validator"

	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "invalid email or password"

type Auth interface {
	Issue(ctx context.Context, claims map[string]any) (dto.Session, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.Session, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.Session, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// Issue signs whatever identity claims the client presents. Only the email
// claim is checked.
func (s *serviceImpl) Issue(ctx context.Context, claims map[string]any) (res dto.Session, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Issue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	email, _ := claims[jwt.ClaimEmail].(string)
	if email == constant.Empty {
		return res, failure.BadRequestFromString("email is required") // nolint:wrapcheck
	}

	if err = validator.ValidateVar(email, "email"); err != nil {
		return res, err
	}

	return s.sign(claims)
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	return s.sign(dto.UserClaims(user))
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || user.Password == nil {
		log.Warn().Str("email", req.Email).Msg("login attempt for unknown account")

		return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, *user.Password); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

			return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.sign(dto.UserClaims(user))
}

func (s *serviceImpl) sign(claims map[string]any) (dto.Session, error) {
	token, expiresAt, err := s.jwtService.Sign(claims)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign session token")

		if errors.Is(err, jwt.ErrInvalidClaim) {
			return dto.Session{}, failure.BadRequest(err) // nolint:wrapcheck
		}

		return dto.Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return dto.Session{Token: token, ExpiresAt: expiresAt}, nil
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{
		Field:    userModel.FieldEmail,
		Operator: gDto.FilterOperatorEq,
		Value:    email,
		Table:    userModel.TableName,
	})
}
