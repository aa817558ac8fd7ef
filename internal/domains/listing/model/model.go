package model

import (
	"sage/shared/model"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID          = "id"
	FieldMentorID    = "mentor_id"
	FieldTitle       = "title"
	FieldCategory    = "category"
	FieldPriceAmount = "price_amount"
	FieldActive      = "active"
)

// Listing is the mentor offering a booking is made against. The core only
// reads listings; their CRUD lives outside this subsystem.
type Listing struct {
	ID          string `db:"id"`
	MentorID    string `db:"mentor_id"`
	Title       string `db:"title"`
	Category    string `db:"category"`
	PriceAmount int64  `db:"price_amount"`
	Active      bool   `db:"active"`
	model.Metadata
}
