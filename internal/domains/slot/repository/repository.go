package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sage/infras/otel"
	"sage/infras/postgres"
	"sage/internal/domains/slot/model"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/logger"
	gRepo "sage/shared/repository"
	"sage/shared/timezone"
)

const (
	claimQuery = `UPDATE listing_slots
		SET is_booked = TRUE, booked_by = :booking_id, modified_at = :now, modified_by = :booking_id
		WHERE id = :id AND is_booked = FALSE`

	releaseQuery = `UPDATE listing_slots
		SET is_booked = FALSE, modified_at = :now, modified_by = :booking_id
		WHERE id = :id AND is_booked = TRUE AND booked_by = :booking_id`

	deleteUnclaimedQuery = `DELETE FROM listing_slots WHERE id = :id AND is_booked = FALSE`
)

type Slot interface {
	Insert(ctx context.Context, model model.Slot) error
	InsertBulk(ctx context.Context, models []model.Slot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Slot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Slot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Claim(ctx context.Context, slotID, bookingID string) (bool, error)
	Release(ctx context.Context, slotID, bookingID string) (bool, error)
	DeleteUnclaimed(ctx context.Context, slotID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Claim atomically flips a free slot to claimed by the given booking. The
// guard on is_booked makes concurrent claims race-safe: exactly one caller
// sees a row change, every other caller sees zero rows.
func (repo *repositoryImpl) Claim(ctx context.Context, slotID, bookingID string) (claimed bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Claim")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelSlotAttributeKey, slotID)
	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	result, err := repo.db.Write.NamedExecContext(ctx, claimQuery, map[string]any{
		"id":         slotID,
		"booking_id": bookingID,
		"now":        timezone.Now(),
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to claim slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read claim result: %w", err)
	}

	return affected == 1, nil
}

// Release frees a slot only when the given booking is the current owner.
// booked_by is kept on the row so the last owner stays knowable after the
// slot goes free.
func (repo *repositoryImpl) Release(ctx context.Context, slotID, bookingID string) (released bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelSlotAttributeKey, slotID)
	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	result, err := repo.db.Write.NamedExecContext(ctx, releaseQuery, map[string]any{
		"id":         slotID,
		"booking_id": bookingID,
		"now":        timezone.Now(),
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to release slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read release result: %w", err)
	}

	return affected == 1, nil
}

// DeleteUnclaimed removes a slot only while it is free.
func (repo *repositoryImpl) DeleteUnclaimed(ctx context.Context, slotID string) (deleted bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.DeleteUnclaimed")
	defer scope.End()
	defer scope.TraceIfError(err)

	result, err := repo.db.Write.NamedExecContext(ctx, deleteUnclaimedQuery, map[string]any{
		"id": slotID,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to delete slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected == 1, nil
}
