package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Contact=MockContactService

import (
	"context"
	"fmt"
	"larisa/config"
	"larisa/infras/otel"
	"larisa/internal/domains/contact/model"
	"larisa/internal/domains/contact/model/dto"
	"larisa/internal/domains/contact/repository"
	"larisa/shared"
	"larisa/shared/cache"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"

	"github.com/rs/zerolog/log"
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.InsertResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetContactsResponse, error)
}

type serviceImpl struct {
	repo  repository.Contact
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Contact, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.InsertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contact := req.ToModel()

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to create contact")

		return res, fmt.Errorf("failed to create contact: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheGetAll)

	return dto.InsertResponse{InsertedID: contact.ID}, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetContactsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, gDto.FilterGroup{})

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count contacts")

		return res, fmt.Errorf("failed to count contacts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get contacts")

		return res, fmt.Errorf("failed to get contacts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contacts to cache")
		}
	}()

	return res, nil
}
