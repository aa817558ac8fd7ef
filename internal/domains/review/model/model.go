package model

import (
	"sage/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldListingID = "listing_id"
	FieldMentorID  = "mentor_id"
	FieldRating    = "rating"
	FieldComment   = "comment"
)

// Review is immutable once written; the unique constraint on booking_id is
// what makes a duplicate submission lose.
type Review struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	ListingID string `db:"listing_id"`
	MentorID  string `db:"mentor_id"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	model.Metadata
}
