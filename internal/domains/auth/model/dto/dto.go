package dto

import (
	"time"

	"larisa/infras/jwt"
	userModel "larisa/internal/domains/user/model"
	"larisa/shared/constant"
	gModel "larisa/shared/model"
	"larisa/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"omitempty,max=100"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: &hashedPassword,
		Name:     r.Name,
		PhotoURL: r.PhotoURL,
		Role:     constant.RoleUser,
		Metadata: gModel.NewMetadata(timezone.Now(), r.Email),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is a signed token and the moment it stops being accepted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type PrincipalResponse struct {
	Email     string         `json:"email"`
	Claims    map[string]any `json:"claims"`
	ExpiresAt string         `json:"expiresAt"`
}

func (p *PrincipalResponse) FromPrincipal(principal jwt.Principal) {
	p.Email = principal.Email
	p.Claims = principal.Claims
	p.ExpiresAt = timezone.Format(principal.ExpiresAt, constant.DateFormat)
}

// UserClaims are the identity claims carried by a session of a stored user.
func UserClaims(user userModel.User) map[string]any {
	return map[string]any{
		jwt.ClaimEmail: user.Email,
		"name":         user.Name,
		"role":         user.Role,
	}
}
