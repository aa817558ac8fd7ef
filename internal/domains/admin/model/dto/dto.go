package dto

import (
	"sage/internal/domains/admin/model"
	"sage/shared"
	gDto "sage/shared/dto"
)

type AddAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ReleasePartialRequest struct {
	PayeePercent int `json:"payee_percent" validate:"gte=0,lte=100"`
}

type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	gDto.Metadata
}

func (r *AdminResponse) FromModel(model model.Admin) {
	r.ID = model.ID
	r.Email = model.Email
	r.Metadata.FromModel(model.Metadata)
}

type GetAdminsResponse struct {
	Admins    []AdminResponse `json:"admins"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAdminsResponse) FromModels(models []model.Admin, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Admins = make([]AdminResponse, len(models))
	for i, mod := range models {
		r.Admins[i].FromModel(mod)
	}
}

type RevenueResponse struct {
	TotalPlatformFees int64  `json:"total_platform_fees"`
	Currency          string `json:"currency"`
}
