package dto

import (
	"sage/internal/domains/booking/model"
	"sage/shared"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/timezone"
)

type CreateBookingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	SlotID    string `json:"slot_id"    validate:"required,uuid"`
}

type ConfirmPaymentRequest struct {
	HoldRef string `json:"hold_ref" validate:"required"`
}

type CheckoutResponse struct {
	BookingID string `json:"booking_id"`
	HoldRef   string `json:"hold_ref"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	ListingID      string  `json:"listing_id"`
	PayerID        string  `json:"payer_id"`
	PayeeID        string  `json:"payee_id"`
	SlotID         string  `json:"slot_id"`
	SessionAt      string  `json:"session_at"`
	TotalAmount    int64   `json:"total_amount"`
	PayeeAmount    int64   `json:"payee_amount"`
	PlatformFee    int64   `json:"platform_fee"`
	HoldRef        *string `json:"hold_ref,omitempty"`
	TransferRef    *string `json:"transfer_ref,omitempty"`
	ReviewDeadline string  `json:"review_deadline"`
	AcceptedAt     *string `json:"accepted_at,omitempty"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.PayerID = model.PayerID
	r.PayeeID = model.PayeeID
	r.SlotID = model.SlotID
	r.SessionAt = timezone.Format(model.SessionAt, constant.DateFormat)
	r.TotalAmount = model.TotalAmount
	r.PayeeAmount = model.PayeeAmount
	r.PlatformFee = model.PlatformFee
	r.HoldRef = model.HoldRef
	r.TransferRef = model.TransferRef
	r.ReviewDeadline = timezone.Format(model.ReviewDeadline, constant.DateFormat)
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus

	if model.AcceptedAt != nil {
		accepted := timezone.Format(*model.AcceptedAt, constant.DateFormat)
		r.AcceptedAt = &accepted
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type FlagResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason"`
	Resolved  bool   `json:"resolved"`
	gDto.Metadata
}

func (r *FlagResponse) FromModel(model model.Flag) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Reason = model.Reason
	r.Resolved = model.Resolved
	r.Metadata.FromModel(model.Metadata)
}

type GetFlagsResponse struct {
	Flags     []FlagResponse `json:"flags"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetFlagsResponse) FromModels(models []model.Flag, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Flags = make([]FlagResponse, len(models))
	for i, mod := range models {
		r.Flags[i].FromModel(mod)
	}
}
