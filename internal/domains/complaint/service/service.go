package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Complaint=MockComplaintService

import (
	"context"
	"fmt"
	"sage/infras/otel"
	"sage/internal/domains/complaint/model"
	"sage/internal/domains/complaint/model/dto"
	"sage/internal/domains/complaint/repository"
	"sage/shared"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
	gModel "sage/shared/model"
	"sage/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Complaint interface {
	Open(ctx context.Context, bookingID, openedBy, reason string) error
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetComplaintsResponse, error)
	Resolve(ctx context.Context, id string, req dto.ResolveComplaintRequest) error
}

type serviceImpl struct {
	repo repository.Complaint
	otel otel.Otel
}

func New(repo repository.Complaint, otel otel.Otel) Complaint {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Open files a complaint against a booking. A booking with an open complaint
// does not get a second one; the existing record is kept.
func (s *serviceImpl) Open(ctx context.Context, bookingID, openedBy, reason string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".complaint.Open")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusOpen, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to check open complaints")

		return fmt.Errorf("failed to check open complaints: %w", err)
	}

	if exists {
		return nil
	}

	complaint := model.Complaint{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		OpenedBy:  openedBy,
		Reason:    reason,
		Status:    model.StatusOpen,
		Metadata:  gModel.NewMetadata(timezone.Now(), openedBy),
	}

	if err = s.repo.Insert(ctx, complaint); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to open complaint")

		return fmt.Errorf("failed to open complaint: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetComplaintsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".complaint.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count complaints")

		return res, fmt.Errorf("failed to count complaints: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list complaints")

		return res, fmt.Errorf("failed to list complaints: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// Resolve closes a complaint with an operator's resolution note.
func (s *serviceImpl) Resolve(ctx context.Context, id string, req dto.ResolveComplaintRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".complaint.Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	complaint, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load complaint")

		return fmt.Errorf("failed to load complaint: %w", err)
	}

	if complaint.ID == constant.Empty {
		return failure.NotFound("complaint") //nolint:wrapcheck
	}

	if complaint.Status == model.StatusResolved {
		return failure.Conflict("complaint is already resolved") //nolint:wrapcheck
	}

	mod := map[string]any{
		model.FieldStatus:        model.StatusResolved,
		model.FieldResolution:    req.Resolution,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to resolve complaint")

		return fmt.Errorf("failed to resolve complaint: %w", err)
	}

	return nil
}
