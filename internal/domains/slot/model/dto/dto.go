package dto

import (
	"time"

	"sage/internal/domains/slot/model"
	"sage/shared"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	gModel "sage/shared/model"
	"sage/shared/timezone"

	"github.com/google/uuid"
)

type CreateSlotsRequest struct {
	ListingID string   `json:"listing_id" validate:"required,uuid"`
	SlotsAt   []string `json:"slots_at"   validate:"required,min=1,dive,required"`
}

// ToModels parses the requested timestamps into slot rows. Parsing failures
// and past timestamps are reported per entry by the caller.
func (c *CreateSlotsRequest) ToModels(user string) ([]model.Slot, error) {
	now := timezone.Now()
	slots := make([]model.Slot, 0, len(c.SlotsAt))

	for _, raw := range c.SlotsAt {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}

		slots = append(slots, model.Slot{
			ID:        uuid.NewString(),
			ListingID: c.ListingID,
			SlotAt:    at,
			IsBooked:  false,
			Metadata:  gModel.NewMetadata(now, user),
		})
	}

	return slots, nil
}

type SlotResponse struct {
	ID        string `json:"id"`
	ListingID string `json:"listing_id"`
	SlotAt    string `json:"slot_at"`
	IsBooked  bool   `json:"is_booked"`
	gDto.Metadata
}

func (r *SlotResponse) FromModel(model model.Slot) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.SlotAt = timezone.Format(model.SlotAt, constant.DateFormat)
	r.IsBooked = model.IsBooked
	r.Metadata.FromModel(model.Metadata)
}

type GetSlotsResponse struct {
	Slots     []SlotResponse `json:"slots"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetSlotsResponse) FromModels(models []model.Slot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Slots = make([]SlotResponse, len(models))
	for i, mod := range models {
		r.Slots[i].FromModel(mod)
	}
}
