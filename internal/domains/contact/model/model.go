package model

import "larisa/shared/model"

const (
	TableName  = "contacts"
	EntityName = "contact"

	CacheGetAll = "contact:gets"

	FieldID = "id"
)

type Contact struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Subject string `db:"subject"`
	Message string `db:"message"`
	model.Metadata
}
