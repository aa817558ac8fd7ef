package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sage/infras/otel"
	"sage/infras/postgres"
	"sage/internal/domains/booking/model"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/logger"
	gRepo "sage/shared/repository"
	"time"
)

const (
	dueForAutoReleaseQuery = `SELECT b.* FROM bookings b
		WHERE b.status = 'completed'
		  AND b.payment_status = 'held'
		  AND b.review_deadline < $1
		  AND NOT EXISTS (SELECT 1 FROM reviews r WHERE r.booking_id = b.id)
		ORDER BY b.review_deadline ASC
		LIMIT $2`

	reviewedStillHeldQuery = `SELECT b.* FROM bookings b
		JOIN reviews r ON r.booking_id = b.id
		WHERE b.status = 'completed'
		  AND b.payment_status = 'held'
		  AND r.rating >= $1
		ORDER BY b.review_deadline ASC
		LIMIT $2`

	sumReleasedFeesQuery = `SELECT COALESCE(SUM(platform_fee), 0) FROM bookings
		WHERE payment_status = 'released'`
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error

	// TransitionStatus moves a booking between statuses only while the
	// current status is one of from. False means the guard no longer held.
	TransitionStatus(ctx context.Context, id string, from []string, to string, set map[string]any) (bool, error)

	// TransitionPayment is the payment-status counterpart; every escrow
	// resolution funnels through this guard.
	TransitionPayment(ctx context.Context, id, from, to string, set map[string]any) (bool, error)

	// DueForAutoRelease lists completed, still-held bookings whose review
	// deadline elapsed with no review submitted.
	DueForAutoRelease(ctx context.Context, now time.Time, limit int) ([]model.Booking, error)

	// ReviewedStillHeld lists completed, still-held bookings carrying a
	// review at or above the release threshold.
	ReviewedStillHeld(ctx context.Context, threshold, limit int) ([]model.Booking, error)

	SumReleasedFees(ctx context.Context) (int64, error)

	InsertFlag(ctx context.Context, flag model.Flag) error
	GetAllFlags(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Flag, error)
	CountFlags(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateFlags(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	flags gRepo.Repository[model.Flag]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		flags:      gRepo.NewRepository[model.Flag](model.FlagEntityName, model.FlagTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) TransitionStatus(ctx context.Context, id string, from []string, to string, set map[string]any) (ok bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.TransitionStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, id)

	mod := map[string]any{model.FieldStatus: to}
	for key, value := range set {
		mod[key] = value
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: from, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	affected, err := repo.UpdateGuarded(ctx, mod, filter)
	if err != nil {
		return false, fmt.Errorf("failed to transition booking status: %w", err)
	}

	return affected == 1, nil
}

func (repo *repositoryImpl) TransitionPayment(ctx context.Context, id, from, to string, set map[string]any) (ok bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.TransitionPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, id)

	mod := map[string]any{model.FieldPaymentStatus: to}
	for key, value := range set {
		mod[key] = value
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "payment_from", Field: model.FieldPaymentStatus, Value: from, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	affected, err := repo.UpdateGuarded(ctx, mod, filter)
	if err != nil {
		return false, fmt.Errorf("failed to transition payment status: %w", err)
	}

	return affected == 1, nil
}

func (repo *repositoryImpl) DueForAutoRelease(ctx context.Context, now time.Time, limit int) (models []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.DueForAutoRelease")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.SelectContext(ctx, &models, dueForAutoReleaseQuery, now, limit)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list bookings due for auto release: %w", err)
	}

	return models, nil
}

func (repo *repositoryImpl) ReviewedStillHeld(ctx context.Context, threshold, limit int) (models []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ReviewedStillHeld")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.SelectContext(ctx, &models, reviewedStillHeldQuery, threshold, limit)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list reviewed held bookings: %w", err)
	}

	return models, nil
}

func (repo *repositoryImpl) SumReleasedFees(ctx context.Context) (total int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SumReleasedFees")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.GetContext(ctx, &total, sumReleasedFeesQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to sum released platform fees: %w", err)
	}

	return total, nil
}

func (repo *repositoryImpl) InsertFlag(ctx context.Context, flag model.Flag) error {
	return repo.flags.Insert(ctx, flag) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetAllFlags(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Flag, error) {
	return repo.flags.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) CountFlags(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.flags.Count(ctx, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) UpdateFlags(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return repo.flags.Update(ctx, req, filter) //nolint:wrapcheck
}
