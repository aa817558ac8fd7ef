package dto

import (
	"sage/internal/domains/complaint/model"
	"sage/shared"
	gDto "sage/shared/dto"
)

type ResolveComplaintRequest struct {
	Resolution string `json:"resolution" validate:"required,max=2000"`
}

type ComplaintResponse struct {
	ID         string  `json:"id"`
	BookingID  string  `json:"booking_id"`
	OpenedBy   string  `json:"opened_by"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	Resolution *string `json:"resolution,omitempty"`
	gDto.Metadata
}

func (r *ComplaintResponse) FromModel(model model.Complaint) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.OpenedBy = model.OpenedBy
	r.Reason = model.Reason
	r.Status = model.Status
	r.Resolution = model.Resolution
	r.Metadata.FromModel(model.Metadata)
}

type GetComplaintsResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetComplaintsResponse) FromModels(models []model.Complaint, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Complaints = make([]ComplaintResponse, len(models))
	for i, mod := range models {
		r.Complaints[i].FromModel(mod)
	}
}
