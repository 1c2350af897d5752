package room

import (
	"bytes"
	"context"
	"io"
	"larisa/infras/otel"
	availabilityDto "larisa/internal/domains/availability/model/dto"
	availabilityService "larisa/internal/domains/availability/service"
	"larisa/internal/domains/room/model"
	"larisa/internal/domains/room/model/dto"
	"larisa/internal/domains/room/service"
	"larisa/shared"
	"larisa/shared/constant"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"
	"larisa/shared/validator"
	"larisa/transport/http/middleware"
	"larisa/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxImageSizeMB = 5

var imageTypes = []string{"image/jpeg", "image/png", "image/webp"}

type Handler struct {
	service      service.Room
	availability availabilityService.Availability
	session      middleware.Session
	otel         otel.Otel
}

func New(service service.Room, availability availabilityService.Availability, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		session:      session,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/filter", handler.FilterRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.session.Authenticate)

			protected.Post("/", handler.CreateRoom)
			protected.Get("/mine", handler.GetMyRooms)
			protected.Put("/{id}", handler.UpdateRoom)
			protected.Delete("/{id}", handler.DeleteRoom)
			protected.Put("/{id}/availability", handler.MarkUnavailable)
			protected.Post("/{id}/image", handler.UploadImage)
		})
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} dto.InsertResponse
// @Failure 400 {object} response.Message
// @Failure 401 {object} response.Message
// @Router /v1/rooms [post]
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRooms retrieves rooms with pagination and optional email filter.
// @Summary Get all rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by owner email"
// @Success 200 {object} dto.GetRoomsResponse
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldPrice, constant.FieldCreatedAt)

	filterGroup := gDto.And()

	if email := r.URL.Query().Get(constant.RequestParamEmail); email != "" {
		filterGroup = gDto.And(gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    email,
			Table:    model.TableName,
		})
	}

	handler.writeRooms(ctx, w, scope, queryParams, filterGroup)
}

// GetMyRooms lists the rooms owned by the email query parameter, defaulting
// to the session's email.
// @Summary Get rooms of an owner
// @Tags Room
// @Produce json
// @Param email query string false "Owner email"
// @Success 200 {object} dto.GetRoomsResponse
// @Failure 401 {object} response.Message
// @Router /v1/rooms/mine [get]
func (handler *Handler) GetMyRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldPrice, constant.FieldCreatedAt)

	email := r.URL.Query().Get(constant.RequestParamEmail)
	if email == "" {
		email, _ = ctx.Value(constant.ContextKeyUserEmail).(string)
	}

	filterGroup := gDto.And(gDto.Filter{
		Field:    model.FieldEmail,
		Operator: gDto.FilterOperatorEq,
		Value:    email,
		Table:    model.TableName,
	})

	handler.writeRooms(ctx, w, scope, queryParams, filterGroup)
}

func (handler *Handler) writeRooms(ctx context.Context, w http.ResponseWriter, scope otel.Scope, params gDto.QueryParams, filter gDto.FilterGroup) {
	rooms, err := handler.service.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// FilterRooms lists available rooms priced within [minPrice, maxPrice].
// @Summary Filter available rooms by price
// @Tags Room
// @Produce json
// @Param minPrice query number true "Lower bound, inclusive"
// @Param maxPrice query number true "Upper bound, inclusive"
// @Success 200 {array} dto.RoomResponse
// @Failure 400 {object} response.Message
// @Router /v1/rooms/filter [get]
func (handler *Handler) FilterRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FilterRooms")
	defer scope.End()

	query := r.URL.Query()

	priceRange, err := availabilityDto.ParsePriceRange(query.Get(constant.RequestParamMin), query.Get(constant.RequestParamMax))
	if err != nil {
		err = failure.BadRequest(err)

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	rooms, err := handler.availability.Filter(ctx, priceRange)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to filter rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 404 {object} response.Message
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom replaces the editable fields of a room. A missing room is only
// created when the caller passes upsert=true.
// @Summary Update a room
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param upsert query boolean false "Create the room when it does not exist"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/rooms/{id} [put]
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	upsert, err := shared.ParseUpsert(r.URL.Query().Get(constant.RequestParamUpsert))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id, upsert)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteRoom deletes a room that is not held by a booking.
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 409 {object} response.Message
// @Router /v1/rooms/{id} [delete]
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// MarkUnavailable links the room to a booking. The body is optional.
// @Summary Mark a room unavailable
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body availabilityDto.MarkUnavailableRequest false "Booking reference"
// @Success 200 {object} availabilityDto.MarkUnavailableResponse
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/rooms/{id}/availability [put]
func (handler *Handler) MarkUnavailable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkUnavailable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		err = failure.BadRequest(err)

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req *availabilityDto.MarkUnavailableRequest

	if len(bytes.TrimSpace(raw)) > 0 {
		req = &availabilityDto.MarkUnavailableRequest{}

		if err = validator.Validate(bytes.NewReader(raw), req); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}
	}

	res, err := handler.availability.MarkUnavailable(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark room unavailable")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UploadImage stores a room picture in object storage and points the room at it.
// @Summary Upload a room image
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param image formData file true "Room image"
// @Success 200 {object} dto.ImageResponse
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/rooms/{id}/image [post]
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(constant.RequestParamID, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		err = failure.BadRequest(err)

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		err = failure.BadRequestFromString(constant.FormFile + " is required")

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}
	defer file.Close()

	if err = validator.ValidateFile(header, maxImageSizeMB, imageTypes...); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadImage(ctx, id, file, header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload room image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
