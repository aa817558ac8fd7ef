package model

import (
	"time"

	"sage/shared/model"
)

const (
	TableName  = "listing_slots"
	EntityName = "slot"

	FieldID        = "id"
	FieldListingID = "listing_id"
	FieldSlotAt    = "slot_at"
	FieldIsBooked  = "is_booked"
	FieldBookedBy  = "booked_by"
)

// Slot is one bookable time instant for a listing. A slot is either free or
// claimed by exactly one booking. BookedBy records the most recent claim
// owner and survives a release; IsBooked says whether that claim is live.
type Slot struct {
	ID        string    `db:"id"`
	ListingID string    `db:"listing_id"`
	SlotAt    time.Time `db:"slot_at"`
	IsBooked  bool      `db:"is_booked"`
	BookedBy  *string   `db:"booked_by"`
	model.Metadata
}

// OwnedBy reports whether the slot is currently claimed by the given booking.
func (s *Slot) OwnedBy(bookingID string) bool {
	return s.IsBooked && s.BookedBy != nil && *s.BookedBy == bookingID
}
