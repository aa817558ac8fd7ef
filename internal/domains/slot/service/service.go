package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Slot=MockSlotService

import (
	"context"
	"errors"
	"fmt"
	"sage/config"
	"sage/infras/otel"
	listingModel "sage/internal/domains/listing/model"
	listingRepo "sage/internal/domains/listing/repository"
	"sage/internal/domains/slot/model"
	"sage/internal/domains/slot/model/dto"
	"sage/internal/domains/slot/repository"
	"sage/shared"
	"sage/shared/cache"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
	"sage/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllSlot = "slot:gets"
)

type Slot interface {
	Claim(ctx context.Context, slotID, bookingID string) error
	Release(ctx context.Context, slotID, bookingID string) error
	Create(ctx context.Context, req dto.CreateSlotsRequest) error
	ListAvailable(ctx context.Context, listingID string, params gDto.QueryParams) (dto.GetSlotsResponse, error)
	Delete(ctx context.Context, slotID string) error
}

type serviceImpl struct {
	repo        repository.Slot
	listingRepo listingRepo.Listing
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Slot, listingRepo listingRepo.Listing, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Slot {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Claim reserves the slot for a booking. Exactly one booking can win a slot;
// a lost race surfaces as Conflict so the caller can pick another slot.
// Claiming a slot the booking already owns is a no-op success, which makes
// payment-confirmation retries safe.
func (s *serviceImpl) Claim(ctx context.Context, slotID, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Claim")
	defer scope.End()
	defer scope.TraceIfError(err)

	claimed, err := s.repo.Claim(ctx, slotID, bookingID)
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("failed to claim slot")

		return fmt.Errorf("failed to claim slot: %w", err)
	}

	if claimed {
		s.invalidate(ctx)

		return nil
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(slotID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("failed to inspect slot after lost claim")

		return fmt.Errorf("failed to inspect slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return failure.NotFound("slot") //nolint:wrapcheck
	}

	if slot.OwnedBy(bookingID) {
		return nil
	}

	return failure.Conflict("slot no longer available") //nolint:wrapcheck
}

// Release frees the slot if the booking owns it. The last owner is kept on
// the row, so only the prior owner gets an idempotent no-op on a slot that
// is already free; any other caller is rejected, and a slot owned by a
// different booking is never freed on behalf of a stale caller.
func (s *serviceImpl) Release(ctx context.Context, slotID, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	released, err := s.repo.Release(ctx, slotID, bookingID)
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("failed to release slot")

		return fmt.Errorf("failed to release slot: %w", err)
	}

	if released {
		s.invalidate(ctx)

		return nil
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(slotID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("slot_id", slotID).Msg("failed to inspect slot after release")

		return fmt.Errorf("failed to inspect slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return failure.NotFound("slot") //nolint:wrapcheck
	}

	if !slot.IsBooked {
		if slot.BookedBy != nil && *slot.BookedBy == bookingID {
			return nil
		}

		return failure.Conflict("slot was never claimed by this booking") //nolint:wrapcheck
	}

	return failure.Conflict("slot is held by another booking") //nolint:wrapcheck
}

// Create adds future availability slots for a listing owned by the caller.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSlotsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up listing")

		return fmt.Errorf("failed to look up listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return failure.NotFound("listing") //nolint:wrapcheck
	}

	if listing.MentorID != user {
		return failure.Forbidden("only the listing owner can manage availability") //nolint:wrapcheck
	}

	slots, err := req.ToModels(user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid slot timestamp: %v", err)) //nolint:wrapcheck
	}

	now := timezone.Now()
	for _, slot := range slots {
		if !slot.SlotAt.After(now) {
			return failure.BadRequestFromString("slots must be in the future") //nolint:wrapcheck
		}
	}

	if err = s.repo.InsertBulk(ctx, slots); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("slot already exists for this listing and time") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create slots")

		return fmt.Errorf("failed to create slots: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) ListAvailable(ctx context.Context, listingID string, params gDto.QueryParams) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.ListAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldListingID, Value: listingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsBooked, Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldSlotAt, Value: timezone.Now(), Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSlot, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slots")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count slots")

		return res, fmt.Errorf("failed to count slots: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list slots")

		return res, fmt.Errorf("failed to list slots: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slots to cache")
		}
	}()

	return res, nil
}

// Delete removes an unclaimed slot owned by the caller's listing.
func (s *serviceImpl) Delete(ctx context.Context, slotID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slot, err := s.repo.Get(ctx, shared.FilterByID(slotID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return failure.NotFound("slot") //nolint:wrapcheck
	}

	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(slot.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up listing")

		return fmt.Errorf("failed to look up listing: %w", err)
	}

	if listing.MentorID != user {
		return failure.Forbidden("only the listing owner can manage availability") //nolint:wrapcheck
	}

	deleted, err := s.repo.DeleteUnclaimed(ctx, slotID)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete slot")

		return fmt.Errorf("failed to delete slot: %w", err)
	}

	if !deleted {
		return failure.Conflict("slot is claimed by a booking") //nolint:wrapcheck
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSlot)
	}()
}
