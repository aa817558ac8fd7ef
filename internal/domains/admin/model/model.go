package model

import (
	"sage/shared/model"
)

const (
	TableName  = "admin_emails"
	EntityName = "admin_email"

	FieldID    = "id"
	FieldEmail = "email"
)

// Admin is an allowlist entry. Holding the admin role is not enough to use
// the override surface; the caller's email must also be on this list.
type Admin struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	model.Metadata
}
