package dto

import (
	"larisa/internal/domains/contact/model"
	"larisa/shared"
	gDto "larisa/shared/dto"
	gModel "larisa/shared/model"
	"larisa/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ToModel records the sender's email as creator; contact messages are
// accepted from anonymous visitors.
func (c *CreateContactRequest) ToModel() model.Contact {
	return model.Contact{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Email:    c.Email,
		Subject:  c.Subject,
		Message:  c.Message,
		Metadata: gModel.NewMetadata(timezone.Now(), c.Email),
	}
}

type ContactResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	gDto.Metadata
}

func (c *ContactResponse) FromModel(model model.Contact) {
	c.ID = model.ID
	c.Name = model.Name
	c.Email = model.Email
	c.Subject = model.Subject
	c.Message = model.Message
	c.Metadata.FromModel(model.Metadata)
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (c *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	c.TotalData = totalData
	c.TotalPage = shared.CalculateTotalPage(totalData, limit)

	c.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		c.Contacts[i].FromModel(mod)
	}
}

type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}
