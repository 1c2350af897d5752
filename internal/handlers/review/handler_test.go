package review_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"larisa/config"
	"larisa/infras/jwt"
	otelMocks "larisa/infras/otel/mocks"
	reviewMocks "larisa/internal/domains/review/mocks"
	"larisa/internal/domains/review/model/dto"
	"larisa/internal/handlers/review"
	gDto "larisa/shared/dto"
	"larisa/shared/failure"
	"larisa/transport/http/middleware"
)

const (
	roomID        = "7d3c2c6e-1f4a-4f7e-9a52-0c9f3e2d8b11"
	missingRoomID = "3f9e2a61-7c4b-4d0e-8b1a-5e6d7c8f9a02"
)

func setup(t *testing.T) (chi.Router, *reviewMocks.MockReviewService, *http.Cookie) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "larisa"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireDays = 1
	cfg.JWT.CookieName = "token"

	signer := jwt.New(cfg)
	token, _, err := signer.Sign(map[string]any{jwt.ClaimEmail: "guest@larisa.test"})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := reviewMocks.NewMockReviewService(ctrl)

	handler := review.New(svc, middleware.NewSession(signer, otelMocks.NewOtel(), cfg), otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc, &http.Cookie{Name: "token", Value: token}
}

func TestCreateReview(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		signedIn  bool
		setupMock func(svc *reviewMocks.MockReviewService)
		wantCode  int
		wantBody  string
	}{
		{
			name:     "review stored",
			body:     `{"roomId":"` + roomID + `","rating":5,"comment":"quiet and clean"}`,
			signedIn: true,
			setupMock: func(svc *reviewMocks.MockReviewService) {
				svc.EXPECT().
					Create(gomock.Any(), dto.CreateReviewRequest{RoomID: roomID, Rating: 5, Comment: "quiet and clean"}).
					Return(dto.InsertResponse{InsertedID: "v1"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `{"insertedId":"v1"}`,
		},
		{
			name:     "unknown room",
			body:     `{"roomId":"` + missingRoomID + `","rating":4,"comment":"ok"}`,
			signedIn: true,
			setupMock: func(svc *reviewMocks.MockReviewService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.InsertResponse{}, failure.NotFound("room not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: `{"message":"room not found"}`,
		},
		{
			name:      "malformed room id",
			body:      `{"roomId":"r1","rating":5,"comment":"great"}`,
			signedIn:  true,
			setupMock: func(*reviewMocks.MockReviewService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"message":"roomId must be a valid id"}`,
		},
		{
			name:      "rating out of range",
			body:      `{"roomId":"` + roomID + `","rating":9,"comment":"great"}`,
			signedIn:  true,
			setupMock: func(*reviewMocks.MockReviewService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "no session",
			body:      `{"roomId":"` + roomID + `","rating":5,"comment":"great"}`,
			setupMock: func(*reviewMocks.MockReviewService) {},
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc, cookie := setup(t)
			tt.setupMock(svc)

			request := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(tt.body))
			if tt.signedIn {
				request.AddCookie(cookie)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestGetReviewsFiltersByRoom(t *testing.T) {
	router, svc, _ := setup(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, roomID, args["room_id"])

			return dto.GetReviewsResponse{Reviews: []dto.ReviewResponse{{ID: "v1", RoomID: roomID, Rating: 5}}, TotalPage: 1, TotalData: 1}, nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/reviews?roomId="+roomID, nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"roomId":"` + roomID + `"`)
}
