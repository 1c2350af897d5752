package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"larisa/infras/otel/mocks"
	bookingMocks "larisa/internal/domains/booking/mocks"
	"larisa/internal/domains/booking/model"
	"larisa/internal/domains/booking/model/dto"
	"larisa/internal/domains/booking/service"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"
)

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	filter := gDto.And(gDto.Eq(model.FieldEmail, "guest@larisa.test"))
	stay := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), filter).
		Return([]model.Booking{{ID: "b1", RoomID: "r1", Email: "guest@larisa.test", StayDate: stay}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, filter)
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "2026-12-24", res.Bookings[0].Date)
	assert.Equal(t, "b1", res.Bookings[0].NewID)
}

func TestBookingService_GetAllCountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("count error"))

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})
	assert.Error(t, err)
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, failure.Is(err, http.StatusNotFound))
}

func TestBookingService_UpdateDate(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.UpdateBookingRequest
		affected int64
		callRepo bool
		wantCode int
	}{
		{name: "changes date", req: dto.UpdateBookingRequest{Date: "2026-11-02"}, affected: 1, callRepo: true},
		{name: "unknown booking", req: dto.UpdateBookingRequest{Date: "2026-11-02"}, callRepo: true, wantCode: http.StatusNotFound},
		{name: "malformed date", req: dto.UpdateBookingRequest{Date: "02/11/2026"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := bookingMocks.NewMockBooking(ctrl)
			svc := service.New(mockRepo, mocks.NewOtel())

			if tt.callRepo {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Contains(t, fields, model.FieldStayDate)
						assert.NotContains(t, fields, model.FieldRoomID)
						assert.NotContains(t, fields, model.FieldAvailability)

						return tt.affected, nil
					})
			}

			res, err := svc.UpdateDate(context.Background(), tt.req, "b1")
			if tt.wantCode != 0 {
				assert.True(t, failure.Is(err, tt.wantCode))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), res.ModifiedCount)
		})
	}
}
