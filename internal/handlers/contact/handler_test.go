package contact_test

import (
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
	contactMocks "larisa/internal/domains/contact/mocks"
	"larisa/internal/domains/contact/model/dto"
	"larisa/internal/handlers/contact"
	"larisa/transport/http/middleware"
)

func setup(t *testing.T) (chi.Router, *contactMocks.MockContactService, *http.Cookie) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireDays = 1
	cfg.JWT.CookieName = "token"

	signer := jwt.New(cfg)
	token, _, err := signer.Sign(map[string]any{jwt.ClaimEmail: "host@larisa.test"})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	svc := contactMocks.NewMockContactService(ctrl)

	handler := contact.New(svc, middleware.NewSession(signer, otelMocks.NewOtel(), cfg), otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc, &http.Cookie{Name: "token", Value: token}
}

func TestCreateContactIsPublic(t *testing.T) {
	router, svc, _ := setup(t)

	svc.EXPECT().
		Create(gomock.Any(), dto.CreateContactRequest{Name: "Ana", Email: "ana@larisa.test", Message: "Is parking included?"}).
		Return(dto.InsertResponse{InsertedID: "c1"}, nil)

	body := `{"name":"Ana","email":"ana@larisa.test","message":"Is parking included?"}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"insertedId":"c1"}`, recorder.Body.String())
}

func TestCreateContactRejectsBadEmail(t *testing.T) {
	router, _, _ := setup(t)

	body := `{"name":"Ana","email":"not-an-email","message":"hi"}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetContactsNeedsSession(t *testing.T) {
	router, svc, cookie := setup(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contacts", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any()).
		Return(dto.GetContactsResponse{Contacts: []dto.ContactResponse{{ID: "c1", Name: "Ana"}}, TotalPage: 1, TotalData: 1}, nil)

	request := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	request.AddCookie(cookie)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_data":1`)
}
