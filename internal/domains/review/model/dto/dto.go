package dto

import (
	"larisa/internal/domains/review/model"
	"larisa/shared"
	gDto "larisa/shared/dto"
	gModel "larisa/shared/model"
	"larisa/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	RoomID  string `json:"roomId"  validate:"required,uuid"`
	Name    string `json:"name"    validate:"omitempty,max=100"`
	Rating  int    `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

func (c *CreateReviewRequest) ToModel(user string) model.Review {
	return model.Review{
		ID:       uuid.NewString(),
		RoomID:   c.RoomID,
		Email:    user,
		Name:     c.Name,
		Rating:   c.Rating,
		Comment:  c.Comment,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type ReviewResponse struct {
	ID      string `json:"_id"`
	RoomID  string `json:"roomId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Email = model.Email
	r.Name = model.Name
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}

type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}
