package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"larisa/config"
	"larisa/infras/jwt"
	jwtMocks "larisa/infras/jwt/mocks"
	"larisa/infras/otel/mocks"
	"larisa/internal/domains/auth/model/dto"
	"larisa/internal/domains/auth/service"
	userMocks "larisa/internal/domains/user/mocks"
	userModel "larisa/internal/domains/user/model"
	"larisa/shared/constant"
	"larisa/shared/failure"
	"larisa/shared/password"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "larisa"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireDays = 356

	return cfg
}

func TestAuthService_IssueRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig()
	tokens := jwt.New(cfg)

	svc := service.New(userMocks.NewMockUser(ctrl), cfg, mocks.NewOtel(), tokens)

	session, err := svc.Issue(context.Background(), map[string]any{"email": "guest@larisa.test", "name": "Guest"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(356*24*time.Hour), session.ExpiresAt, time.Minute)

	principal, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "guest@larisa.test", principal.Email)
	assert.Equal(t, "Guest", principal.Claims["name"])
}

func TestAuthService_IssueRejectsMissingEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.New(userMocks.NewMockUser(ctrl), testConfig(), mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	tests := []struct {
		name   string
		claims map[string]any
	}{
		{name: "no email", claims: map[string]any{"name": "Guest"}},
		{name: "email not a string", claims: map[string]any{"email": 42}},
		{name: "malformed email", claims: map[string]any{"email": "guest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Issue(context.Background(), tt.claims)
			assert.True(t, failure.Is(err, http.StatusBadRequest))
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "host@larisa.test", Password: "long-enough", Name: "Host"}

	t.Run("creates user and signs session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUserRepo := userMocks.NewMockUser(ctrl)
		mockJWT := jwtMocks.NewMockJWT(ctrl)
		svc := service.New(mockUserRepo, testConfig(), mocks.NewOtel(), mockJWT)

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				require.NotNil(t, user.Password)
				assert.NotEqual(t, req.Password, *user.Password)
				assert.NoError(t, password.Verify(req.Password, *user.Password))

				return nil
			})
		mockJWT.EXPECT().
			Sign(gomock.Any()).
			DoAndReturn(func(claims map[string]any) (string, time.Time, error) {
				assert.Equal(t, req.Email, claims[jwt.ClaimEmail])

				return "signed", time.Now().Add(time.Hour), nil
			})

		session, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "signed", session.Token)
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUserRepo := userMocks.NewMockUser(ctrl)
		svc := service.New(mockUserRepo, testConfig(), mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Register(context.Background(), req)
		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("email taken between check and insert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUserRepo := userMocks.NewMockUser(ctrl)
		svc := service.New(mockUserRepo, testConfig(), mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := svc.Register(context.Background(), req)
		assert.True(t, failure.Is(err, http.StatusConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	stored := userModel.User{ID: "u1", Email: "host@larisa.test", Password: &hash, Role: constant.RoleUser}

	tests := []struct {
		name     string
		password string
		user     userModel.User
		repoErr  error
		sign     bool
		wantCode int
	}{
		{name: "valid credentials", password: "correct-horse", user: stored, sign: true},
		{name: "wrong password", password: "wrong-horse", user: stored, wantCode: http.StatusUnauthorized},
		{name: "unknown email", password: "correct-horse", wantCode: http.StatusUnauthorized},
		{name: "account without password", password: "correct-horse", user: userModel.User{ID: "u2", Email: "social@larisa.test"}, wantCode: http.StatusUnauthorized},
		{name: "repository failure", password: "correct-horse", repoErr: errors.New("connection refused"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUserRepo := userMocks.NewMockUser(ctrl)
			mockJWT := jwtMocks.NewMockJWT(ctrl)
			svc := service.New(mockUserRepo, testConfig(), mocks.NewOtel(), mockJWT)

			mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.user, tt.repoErr)

			if tt.sign {
				mockJWT.EXPECT().Sign(gomock.Any()).Return("signed", time.Now().Add(time.Hour), nil)
			}

			session, err := svc.Login(context.Background(), dto.LoginRequest{Email: "host@larisa.test", Password: tt.password})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed", session.Token)
		})
	}
}
