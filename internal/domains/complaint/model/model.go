package model

import (
	"sage/shared/model"
)

const (
	TableName  = "complaints"
	EntityName = "complaint"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldOpenedBy   = "opened_by"
	FieldReason     = "reason"
	FieldStatus     = "status"
	FieldResolution = "resolution"
)

const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Complaint tracks a dispute opened against a booking, either by a low
// rating or by hand. Resolving the complaint is an operator action and is
// separate from resolving the escrow.
type Complaint struct {
	ID         string  `db:"id"`
	BookingID  string  `db:"booking_id"`
	OpenedBy   string  `db:"opened_by"`
	Reason     string  `db:"reason"`
	Status     string  `db:"status"`
	Resolution *string `db:"resolution"`
	model.Metadata
}
