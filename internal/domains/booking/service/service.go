package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"time"

	"sage/config"
	"sage/infras/otel"
	"sage/infras/payments"
	"sage/internal/domains/booking/model"
	"sage/internal/domains/booking/model/dto"
	"sage/internal/domains/booking/repository"
	commissionService "sage/internal/domains/commission/service"
	escrowService "sage/internal/domains/escrow/service"
	listingModel "sage/internal/domains/listing/model"
	listingRepo "sage/internal/domains/listing/repository"
	slotModel "sage/internal/domains/slot/model"
	slotRepo "sage/internal/domains/slot/repository"
	slotService "sage/internal/domains/slot/service"
	"sage/internal/events"
	"sage/shared"
	"sage/shared/cache"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
	gModel "sage/shared/model"
	"sage/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBooking = "booking:gets"
)

// Booking drives the lifecycle state machine. Status edges are enforced with
// guarded updates so a retried or racing request can never skip a state; the
// loser of a race sees Conflict.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Checkout(ctx context.Context, bookingID string) (dto.CheckoutResponse, error)
	ConfirmPayment(ctx context.Context, bookingID string, req dto.ConfirmPaymentRequest) (dto.BookingResponse, error)
	Accept(ctx context.Context, bookingID string) error
	Reject(ctx context.Context, bookingID string) error
	Cancel(ctx context.Context, bookingID string) error
	Complete(ctx context.Context, bookingID string) error
	Get(ctx context.Context, bookingID string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	listingRepo listingRepo.Listing
	slotRepo    slotRepo.Slot
	slots       slotService.Slot
	commissions commissionService.Commission
	escrow      escrowService.Escrow
	gateway     payments.Gateway
	events      events.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	listingRepo listingRepo.Listing,
	slotRepo slotRepo.Slot,
	slots slotService.Slot,
	commissions commissionService.Commission,
	escrow escrowService.Escrow,
	gateway payments.Gateway,
	events events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		slotRepo:    slotRepo,
		slots:       slots,
		commissions: commissions,
		escrow:      escrow,
		gateway:     gateway,
		events:      events,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Create books a slot against an active listing. The commission split is
// resolved once here and frozen on the row; later rule changes never touch
// existing bookings. The slot is claimed under the new booking id before the
// row is written, and released again if the write fails.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	payer, _ := ctx.Value(constant.ContextKeyUserID).(string)

	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up listing")

		return res, fmt.Errorf("failed to look up listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return res, failure.NotFound("listing") //nolint:wrapcheck
	}

	if !listing.Active {
		return res, failure.PreconditionFailed("listing is not active") //nolint:wrapcheck
	}

	if listing.MentorID == payer {
		return res, failure.Forbidden("cannot book your own listing") //nolint:wrapcheck
	}

	slot, err := s.slotRepo.Get(ctx, shared.FilterByID(req.SlotID, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up slot")

		return res, fmt.Errorf("failed to look up slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.NotFound("slot") //nolint:wrapcheck
	}

	if slot.ListingID != req.ListingID {
		return res, failure.BadRequestFromString("slot does not belong to the listing") //nolint:wrapcheck
	}

	rate, err := s.commissions.Rate(ctx, listing.MentorID, listing.Category)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve commission rate")

		return res, fmt.Errorf("failed to resolve commission rate: %w", err)
	}

	now := timezone.Now()
	fee := listing.PriceAmount * int64(rate) / 100
	booking := model.Booking{
		ID:             uuid.NewString(),
		ListingID:      listing.ID,
		PayerID:        payer,
		PayeeID:        listing.MentorID,
		SlotID:         slot.ID,
		SessionAt:      slot.SlotAt,
		TotalAmount:    listing.PriceAmount,
		PayeeAmount:    listing.PriceAmount - fee,
		PlatformFee:    fee,
		ReviewDeadline: slot.SlotAt.Add(time.Duration(s.cfg.Policy.ReviewWindowHours) * time.Hour),
		Status:         model.StatusPending,
		PaymentStatus:  model.PaymentPending,
		Metadata:       gModel.NewMetadata(now, payer),
	}

	if err = s.slots.Claim(ctx, slot.ID, booking.ID); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		if releaseErr := s.slots.Release(ctx, slot.ID, booking.ID); releaseErr != nil {
			log.Error().Err(releaseErr).Str("slot_id", slot.ID).Msg("failed to release slot after booking insert failure")
		}

		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	s.invalidate(ctx)

	s.publish(ctx, events.Intent{
		Type:      events.IntentBookingCreated,
		BookingID: booking.ID,
		PayerID:   booking.PayerID,
		PayeeID:   booking.PayeeID,
		EmittedAt: now,
		Payload: map[string]any{
			"total_amount": booking.TotalAmount,
			"session_at":   booking.SessionAt,
		},
	})

	res.FromModel(booking)

	return res, nil
}

// Checkout authorizes a payment hold for the full booking amount. Nothing is
// captured yet; the hold reference goes back to the client and returns on
// confirm-payment. Checking out again simply authorizes a fresh hold, the
// provider expires the abandoned one.
func (s *serviceImpl) Checkout(ctx context.Context, bookingID string) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.PayerID != user {
		return res, failure.Forbidden("only the payer can check out") //nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return res, failure.Conflict("booking is not awaiting payment") //nolint:wrapcheck
	}

	hold, err := s.gateway.AuthorizeHold(ctx, payments.AuthorizeRequest{
		Amount:      booking.TotalAmount,
		Source:      booking.PayerID,
		Reference:   booking.ID,
		Description: "mentorship session booking",
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to authorize payment hold")

		return res, fmt.Errorf("failed to authorize payment hold: %w", err)
	}

	res.BookingID = booking.ID
	res.HoldRef = hold.ID
	res.Amount = hold.Amount
	res.Currency = hold.Currency

	return res, nil
}

// ConfirmPayment captures the payer's hold and confirms the booking in one
// guarded step. A retry on an already-confirmed booking returns the current
// state without touching the gateway again. A capture that cannot be recorded
// is refunded immediately and the booking flagged.
func (s *serviceImpl) ConfirmPayment(ctx context.Context, bookingID string, req dto.ConfirmPaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ConfirmPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.PayerID != user {
		return res, failure.Forbidden("only the payer can confirm payment") //nolint:wrapcheck
	}

	if booking.Status == model.StatusConfirmed && booking.PaymentStatus == model.PaymentHeld {
		res.FromModel(booking)

		return res, nil
	}

	if booking.Status != model.StatusPending {
		return res, failure.Conflict("booking is not awaiting payment") //nolint:wrapcheck
	}

	// Re-assert the claim so a slot freed by an earlier failure path cannot
	// be confirmed out from under another booking.
	if err = s.slots.Claim(ctx, booking.SlotID, booking.ID); err != nil {
		return res, err
	}

	hold, err := s.gateway.Capture(ctx, req.HoldRef, booking.TotalAmount)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to capture payment hold")

		return res, fmt.Errorf("failed to capture payment hold: %w", err)
	}

	now := timezone.Now()
	ok, err := s.repo.TransitionStatus(ctx, bookingID, []string{model.StatusPending}, model.StatusConfirmed, map[string]any{
		model.FieldPaymentStatus: model.PaymentHeld,
		model.FieldHoldRef:       hold.ID,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	})
	if err != nil || !ok {
		if refundErr := s.gateway.Refund(ctx, hold.ID, booking.TotalAmount); refundErr != nil {
			log.Error().Err(refundErr).Str("booking_id", bookingID).Msg("failed to refund unrecorded capture")

			if flagErr := s.escrow.Flag(ctx, bookingID, fmt.Sprintf("captured hold %s could not be recorded or refunded", hold.ID)); flagErr != nil {
				log.Error().Err(flagErr).Str("booking_id", bookingID).Msg("failed to flag booking")
			}
		}

		if err != nil {
			return res, fmt.Errorf("failed to confirm booking: %w", err)
		}

		return res, failure.Conflict("booking is not awaiting payment") //nolint:wrapcheck
	}

	s.invalidate(ctx)

	booking.Status = model.StatusConfirmed
	booking.PaymentStatus = model.PaymentHeld
	booking.HoldRef = &hold.ID
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	res.FromModel(booking)

	return res, nil
}

// Accept records the payee's acceptance and requests meeting and conversation
// provisioning. Accepting twice is a no-op.
func (s *serviceImpl) Accept(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.PayeeID != user {
		return failure.Forbidden("only the payee can accept a booking") //nolint:wrapcheck
	}

	if booking.Accepted() {
		return nil
	}

	if booking.Status != model.StatusConfirmed || booking.PaymentStatus != model.PaymentHeld {
		return failure.Conflict("booking is not confirmed with payment held") //nolint:wrapcheck
	}

	now := timezone.Now()
	ok, err := s.repo.TransitionStatus(ctx, bookingID, []string{model.StatusConfirmed}, model.StatusConfirmed, map[string]any{
		model.FieldAcceptedAt:    now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	})
	if err != nil {
		return fmt.Errorf("failed to accept booking: %w", err)
	}

	if !ok {
		return failure.Conflict("booking is not confirmed with payment held") //nolint:wrapcheck
	}

	s.invalidate(ctx)

	s.publish(ctx,
		events.Intent{Type: events.IntentBookingAccepted, BookingID: bookingID, PayerID: booking.PayerID, PayeeID: booking.PayeeID, EmittedAt: now},
		events.Intent{Type: events.IntentMeetingCreate, BookingID: bookingID, PayerID: booking.PayerID, PayeeID: booking.PayeeID, EmittedAt: now, Payload: map[string]any{"session_at": booking.SessionAt}},
		events.Intent{Type: events.IntentConversationOpen, BookingID: bookingID, PayerID: booking.PayerID, PayeeID: booking.PayeeID, EmittedAt: now},
	)

	return nil
}

// Reject lets the payee decline a booking that has not been accepted yet. The
// slot is freed and any held payment is refunded in full.
func (s *serviceImpl) Reject(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.PayeeID != user {
		return failure.Forbidden("only the payee can reject a booking") //nolint:wrapcheck
	}

	if booking.Accepted() {
		return failure.Conflict("an accepted booking can no longer be rejected") //nolint:wrapcheck
	}

	if err = s.cancel(ctx, booking, user, events.IntentBookingRejected); err != nil {
		return err
	}

	return nil
}

// Cancel tears a booking down on behalf of an operator. It shares the reject
// path but is allowed regardless of acceptance.
func (s *serviceImpl) Cancel(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return err
	}

	return s.cancel(ctx, booking, user, events.IntentBookingCancelled)
}

// cancel moves a non-terminal booking to cancelled, frees its slot, and
// refunds a held payment. A refund failure leaves the booking cancelled and
// flagged rather than resurrecting it.
func (s *serviceImpl) cancel(ctx context.Context, booking model.Booking, actor, intentType string) error {
	now := timezone.Now()
	ok, err := s.repo.TransitionStatus(ctx, booking.ID,
		[]string{model.StatusPending, model.StatusConfirmed, model.StatusUnderReview},
		model.StatusCancelled,
		map[string]any{
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: actor,
		})
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if !ok {
		return failure.Conflict("booking can no longer be cancelled") //nolint:wrapcheck
	}

	if err = s.slots.Release(ctx, booking.SlotID, booking.ID); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to release slot of cancelled booking")
	}

	if booking.PaymentStatus == model.PaymentHeld {
		if err = s.escrow.RefundToPayer(ctx, booking.ID, nil); err != nil && !failure.IsConflict(err) {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to refund cancelled booking")

			if flagErr := s.escrow.Flag(ctx, booking.ID, "cancelled booking still holds payment"); flagErr != nil {
				log.Error().Err(flagErr).Str("booking_id", booking.ID).Msg("failed to flag booking")
			}
		}
	}

	s.invalidate(ctx)

	s.publish(ctx, events.Intent{
		Type:      intentType,
		BookingID: booking.ID,
		PayerID:   booking.PayerID,
		PayeeID:   booking.PayeeID,
		EmittedAt: now,
	})

	return nil
}

// Complete marks the session as delivered once its time has passed. Either
// participant may complete; completing twice is a no-op.
func (s *serviceImpl) Complete(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.PayerID != user && booking.PayeeID != user {
		return failure.Forbidden("only a participant can complete a booking") //nolint:wrapcheck
	}

	if booking.Status == model.StatusCompleted {
		return nil
	}

	if booking.Status != model.StatusConfirmed || !booking.Accepted() {
		return failure.Conflict("only an accepted booking can be completed") //nolint:wrapcheck
	}

	if timezone.Now().Before(booking.SessionAt) {
		return failure.PreconditionFailed("session has not occurred yet") //nolint:wrapcheck
	}

	ok, err := s.repo.TransitionStatus(ctx, bookingID, []string{model.StatusConfirmed}, model.StatusCompleted, map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	})
	if err != nil {
		return fmt.Errorf("failed to complete booking: %w", err)
	}

	if !ok {
		return failure.Conflict("only an accepted booking can be completed") //nolint:wrapcheck
	}

	s.invalidate(ctx)

	return nil
}

// Get returns a booking to one of its participants or an admin.
func (s *serviceImpl) Get(ctx context.Context, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.PayerID != user && booking.PayeeID != user && role != constant.RoleAdmin {
		return res, failure.Forbidden("not a participant of this booking") //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// GetAll lists the caller's bookings on either side of the marketplace.
// Admins see every booking.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	switch role {
	case constant.RoleAdmin:
	case constant.RoleMentor:
		filter.Filters = append(filter.Filters,
			gDto.Filter{Field: model.FieldPayeeID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	default:
		filter.Filters = append(filter.Filters,
			gDto.Filter{Field: model.FieldPayerID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, bookingID string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to load booking")

		return booking, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, intents ...events.Intent) {
	if err := s.events.Publish(ctx, intents...); err != nil {
		log.Error().Err(err).Msg("failed to publish booking intents")
	}
}
