package dto

import (
	"sage/internal/domains/commission/model"
	"sage/shared"
	gDto "sage/shared/dto"
	gModel "sage/shared/model"
	"sage/shared/timezone"

	"github.com/google/uuid"
)

type CreateRuleRequest struct {
	PayeeID  string `json:"payee_id" validate:"omitempty,uuid"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Percent  int    `json:"percent"  validate:"gte=0,lte=100"`
}

func (c *CreateRuleRequest) ToModel(user string) model.Rule {
	rule := model.Rule{
		ID:       uuid.NewString(),
		Percent:  c.Percent,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}

	if c.PayeeID != "" {
		rule.PayeeID = &c.PayeeID
	}

	if c.Category != "" {
		rule.Category = &c.Category
	}

	return rule
}

type UpdateRuleRequest struct {
	Percent int `db:"percent" json:"percent" validate:"gte=0,lte=100"`
}

type RuleResponse struct {
	ID       string `json:"id"`
	PayeeID  string `json:"payee_id,omitempty"`
	Category string `json:"category,omitempty"`
	Percent  int    `json:"percent"`
	gDto.Metadata
}

func (r *RuleResponse) FromModel(model model.Rule) {
	r.ID = model.ID
	r.Percent = model.Percent

	if model.PayeeID != nil {
		r.PayeeID = *model.PayeeID
	}

	if model.Category != nil {
		r.Category = *model.Category
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRulesResponse struct {
	Rules     []RuleResponse `json:"rules"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRulesResponse) FromModels(models []model.Rule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rules = make([]RuleResponse, len(models))
	for i, mod := range models {
		r.Rules[i].FromModel(mod)
	}
}
