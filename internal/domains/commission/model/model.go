package model

import (
	"sage/shared/model"
)

const (
	TableName  = "commission_rules"
	EntityName = "commission_rule"

	FieldID       = "id"
	FieldPayeeID  = "payee_id"
	FieldCategory = "category"
	FieldPercent  = "percent"
)

// Rule is one commission entry. Scope is encoded by which keys are set:
// payee-specific (payee_id), category-wide (category), or global (neither).
type Rule struct {
	ID       string  `db:"id"`
	PayeeID  *string `db:"payee_id"`
	Category *string `db:"category"`
	Percent  int     `db:"percent"`
	model.Metadata
}
