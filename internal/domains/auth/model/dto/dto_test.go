package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"larisa/infras/jwt"
	"larisa/internal/domains/auth/model/dto"
	userModel "larisa/internal/domains/user/model"
	"larisa/shared/constant"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{Email: "host@larisa.test", Password: "secret-pass", Name: "Host"}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "host@larisa.test", user.Email)
	if assert.NotNil(t, user.Password) {
		assert.Equal(t, "hashed", *user.Password)
	}
	assert.Equal(t, constant.RoleUser, user.Role)
	assert.Equal(t, "host@larisa.test", user.CreatedBy)
}

func TestUserClaims(t *testing.T) {
	claims := dto.UserClaims(userModel.User{Email: "host@larisa.test", Name: "Host", Role: constant.RoleUser})

	assert.Equal(t, "host@larisa.test", claims[jwt.ClaimEmail])
	assert.Equal(t, "Host", claims["name"])
	assert.NotContains(t, claims, "password")
}

func TestPrincipalResponse_FromPrincipal(t *testing.T) {
	expires := time.Date(2027, 1, 2, 3, 4, 5, 0, time.UTC)

	var res dto.PrincipalResponse
	res.FromPrincipal(jwt.Principal{Email: "guest@larisa.test", Claims: map[string]any{"name": "Guest"}, ExpiresAt: expires})

	assert.Equal(t, "guest@larisa.test", res.Email)
	assert.Equal(t, "Guest", res.Claims["name"])
	assert.Contains(t, res.ExpiresAt, "2027-01-02")
}
