package dto

import (
	"sage/internal/domains/review/model"
	"sage/shared"
	gDto "sage/shared/dto"
)

type SubmitReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	ListingID string `json:"listing_id"`
	MentorID  string `json:"mentor_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.ListingID = model.ListingID
	r.MentorID = model.MentorID
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
