package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"larisa/config"
	"larisa/infras/otel"
	"larisa/infras/prometheus"
	"larisa/infras/s3"
	"larisa/internal/domains/room/model"
	"larisa/internal/domains/room/model/dto"
	"larisa/internal/domains/room/repository"
	"larisa/shared"
	"larisa/shared/cache"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.InsertResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string, upsert bool) (dto.UpdateResponse, error)
	UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (dto.ImageResponse, error)
	Delete(ctx context.Context, id string) (dto.DeleteResponse, error)
}

type serviceImpl struct {
	repo    repository.Room
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	s3      s3.S3
	metrics *prometheus.Metrics
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3, metrics *prometheus.Metrics) Room {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		s3:      s3,
		metrics: metrics,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.InsertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx, room.ID)

	return dto.InsertResponse{InsertedID: room.ID}, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")
		s.metrics.ObserveCache(model.CacheGetAll, "hit")

		return res, nil
	}

	s.metrics.ObserveCache(model.CacheGetAll, "miss")

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		s.metrics.ObserveCache(model.CacheGet, "hit")

		return res, nil
	}

	s.metrics.ObserveCache(model.CacheGet, "miss")

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// Update overwrites the editable fields of a room. A missing room is NotFound
// unless upsert is set, in which case an available room is created under id.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string, upsert bool) (res dto.UpdateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if upsert {
		if _, err = uuid.Parse(id); err != nil {
			return res, failure.BadRequestFromString("id must be a valid uuid") // nolint:wrapcheck
		}

		inserted, err := s.repo.Upsert(ctx, req.ToModel(id, user), model.EditableColumns...)
		if err != nil {
			log.Error().Err(err).Msg("failed to upsert room")

			return res, fmt.Errorf("failed to upsert room: %w", err)
		}

		if inserted {
			res.UpsertedID = &id
		} else {
			res.MatchedCount, res.ModifiedCount = 1, 1
		}
	} else {
		affected, err := s.repo.Update(ctx, req.ToFields(user), shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to update room")

			return res, fmt.Errorf("failed to update room: %w", err)
		}

		if affected == 0 {
			return res, failure.NotFound("room not found") // nolint:wrapcheck
		}

		res.MatchedCount, res.ModifiedCount = affected, affected
	}

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	objectName := uuid.NewString() + filepath.Ext(header.Filename)
	contentType := header.Header.Get(constant.RequestHeaderContentType)

	url, err := s.s3.Upload(ctx, model.EntityName, objectName, contentType, file, header.Size)
	if err != nil {
		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	fields := shared.TransformFields(dto.ImageResponse{Image: url}, user)

	if _, err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to save room image")

		if delErr := s.s3.Delete(ctx, model.EntityName, objectName); delErr != nil {
			log.Error().Err(delErr).Str("object", objectName).Msg("failed to remove orphaned image")
		}

		return res, fmt.Errorf("failed to save room image: %w", err)
	}

	if old := s.s3.ObjectNameFromURL(current.Image); old != constant.Empty {
		if err := s.s3.Delete(ctx, model.EntityName, old); err != nil {
			log.Error().Err(err).Str("object", old).Msg("failed to delete previous room image")
		}
	}

	s.invalidate(ctx, id)

	return dto.ImageResponse{Image: url}, nil
}

// Delete refuses to remove a room that is linked to a live booking.
func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.DeleteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !current.IsAvailable() {
		return res, failure.Conflict("room is booked and cannot be deleted") // nolint:wrapcheck
	}

	deleted, err := s.repo.Delete(ctx, gDto.And(
		gDto.Eq(model.FieldID, id),
		gDto.Eq(model.FieldAvailability, constant.AvailabilityAvailable),
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return res, fmt.Errorf("failed to delete room: %w", err)
	}

	// booked between the read and the delete
	if deleted == 0 {
		return res, failure.Conflict("room is booked and cannot be deleted") // nolint:wrapcheck
	}

	if objectName := s.s3.ObjectNameFromURL(current.Image); objectName != constant.Empty {
		if err := s.s3.Delete(ctx, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete room image")
		}
	}

	s.invalidate(ctx, id)

	return dto.DeleteResponse{DeletedCount: deleted}, nil
}

// invalidate drops the room's cached views before the write returns, so the
// next read goes to postgres.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete room cache")
	}

	shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, model.CacheCount)
}
