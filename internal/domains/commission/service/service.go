package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Commission=MockCommissionService

import (
	"context"
	"fmt"
	"sage/config"
	"sage/infras/otel"
	"sage/internal/domains/commission/model"
	"sage/internal/domains/commission/model/dto"
	"sage/internal/domains/commission/repository"
	"sage/shared"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"

	"github.com/rs/zerolog/log"
)

type Commission interface {
	// Rate resolves the commission percentage for a booking. Precedence:
	// payee-specific rule, then category rule, then global rule, then the
	// configured default.
	Rate(ctx context.Context, payeeID, category string) (int, error)
	Create(ctx context.Context, req dto.CreateRuleRequest) error
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetRulesResponse, error)
	Update(ctx context.Context, req dto.UpdateRuleRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Commission
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Commission, cfg *config.Config, otel otel.Otel) Commission {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Rate(ctx context.Context, payeeID, category string) (percent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".commission.Rate")
	defer scope.End()
	defer scope.TraceIfError(err)

	lookups := []gDto.FilterGroup{
		{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldPayeeID, Value: payeeID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		},
		{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldCategory, Value: category, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldPayeeID, Operator: gDto.FilterIsNull, Table: model.TableName},
			},
		},
		{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldPayeeID, Operator: gDto.FilterIsNull, Table: model.TableName},
				gDto.Filter{Field: model.FieldCategory, Operator: gDto.FilterIsNull, Table: model.TableName},
			},
		},
	}

	for _, filter := range lookups {
		rule, err := s.repo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to look up commission rule")

			return 0, fmt.Errorf("failed to look up commission rule: %w", err)
		}

		if rule.ID != constant.Empty {
			return rule.Percent, nil
		}
	}

	return s.cfg.Policy.DefaultCommissionPercent, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRuleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".commission.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.PayeeID != "" && req.Category != "" {
		return failure.BadRequestFromString("a rule is payee-specific or category-wide, not both") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create commission rule")

		return fmt.Errorf("failed to create commission rule: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetRulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".commission.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count commission rules")

		return res, fmt.Errorf("failed to count commission rules: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list commission rules")

		return res, fmt.Errorf("failed to list commission rules: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRuleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".commission.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check commission rule")

		return fmt.Errorf("failed to check commission rule: %w", err)
	}

	if !exist {
		return failure.NotFound("commission rule") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	updatedFields[model.FieldPercent] = req.Percent

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update commission rule")

		return fmt.Errorf("failed to update commission rule: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".commission.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check commission rule")

		return fmt.Errorf("failed to check commission rule: %w", err)
	}

	if !exist {
		return failure.NotFound("commission rule") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete commission rule")

		return fmt.Errorf("failed to delete commission rule: %w", err)
	}

	return nil
}
