package model

import "larisa/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	CacheGet    = "user:get"
	CacheGetAll = "user:gets"
	CacheCount  = "user:count"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldPhotoURL = "photo_url"
	FieldRole     = "role"
)

// User is an account. Password is nil for accounts that only ever sign in
// through a third-party identity provider and receive a session via claims.
type User struct {
	ID       string  `db:"id"`
	Email    string  `db:"email"`
	Password *string `db:"password"`
	Name     string  `db:"name"`
	PhotoURL string  `db:"photo_url"`
	Role     string  `db:"role"`
	model.Metadata
}
