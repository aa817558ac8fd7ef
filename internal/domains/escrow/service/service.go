package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Escrow=MockEscrowService

import (
	"context"
	"fmt"
	"sage/infras/otel"
	"sage/infras/payments"
	bookingModel "sage/internal/domains/booking/model"
	bookingRepo "sage/internal/domains/booking/repository"
	"sage/internal/events"
	"sage/shared"
	"sage/shared/constant"
	"sage/shared/failure"
	gModel "sage/shared/model"
	"sage/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Resolution triggers, recorded for audit so a deadline auto-release is
// distinguishable from a rating-triggered one.
const (
	TriggerReview   = "review"
	TriggerDeadline = "deadline"
	TriggerSweep    = "sweep"
	TriggerAdmin    = "admin"
)

const actorSystem = "system"

// Escrow resolves held payments. Every operation re-reads the payment status
// and transitions it through a guarded update, so concurrent resolvers (the
// sweep, an admin, a retried request) settle each booking at most once; the
// loser of the race gets Conflict and must treat it as already resolved.
type Escrow interface {
	ReleaseToPayee(ctx context.Context, bookingID, trigger string) error
	RefundToPayer(ctx context.Context, bookingID string, amount *int64) error
	SplitResolve(ctx context.Context, bookingID string, payeePercent int) error
	Flag(ctx context.Context, bookingID, reason string) error
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	gateway  payments.Gateway
	events   events.Publisher
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, gateway payments.Gateway, events events.Publisher, otel otel.Otel) Escrow {
	return &serviceImpl{
		bookings: bookings,
		gateway:  gateway,
		events:   events,
		otel:     otel,
	}
}

// ReleaseToPayee transfers the payee amount fixed at booking creation and
// moves the payment to released. A missing payout destination leaves the
// payment held and flags the booking for manual follow-up.
func (s *serviceImpl) ReleaseToPayee(ctx context.Context, bookingID, trigger string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".escrow.ReleaseToPayee")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	booking, err := s.heldBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	destination, err := s.gateway.PayeeDestination(ctx, booking.PayeeID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to resolve payee destination")

		return fmt.Errorf("failed to resolve payee destination: %w", err)
	}

	if destination == constant.Empty {
		s.flag(ctx, bookingID, "release blocked: payee has no payout destination")

		return failure.PreconditionFailed("payee has no payout destination") //nolint:wrapcheck
	}

	transfer, err := s.gateway.Transfer(ctx, destination, booking.PayeeAmount, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("transfer to payee failed")

		return fmt.Errorf("transfer to payee failed: %w", err)
	}

	ok, err := s.bookings.TransitionPayment(ctx, bookingID, bookingModel.PaymentHeld, bookingModel.PaymentReleased, map[string]any{
		bookingModel.FieldTransferRef: transfer.ID,
		constant.FieldModifiedAt:      timezone.Now(),
		constant.FieldModifiedBy:      actorSystem,
	})
	if err != nil {
		s.flag(ctx, bookingID, fmt.Sprintf("transfer %s executed but ledger update failed", transfer.ID))

		return fmt.Errorf("failed to record release: %w", err)
	}

	if !ok {
		s.flag(ctx, bookingID, fmt.Sprintf("transfer %s executed but payment was concurrently resolved", transfer.ID))

		return failure.Conflict("booking already resolved") //nolint:wrapcheck
	}

	log.Info().
		Str("booking_id", bookingID).
		Str("transfer_ref", transfer.ID).
		Str("trigger", trigger).
		Int64("amount", booking.PayeeAmount).
		Msg("escrow released to payee")

	s.publish(ctx, events.Intent{
		Type:      events.IntentEscrowReleased,
		BookingID: bookingID,
		PayerID:   booking.PayerID,
		PayeeID:   booking.PayeeID,
		EmittedAt: timezone.Now(),
		Payload: map[string]any{
			"amount":  booking.PayeeAmount,
			"trigger": trigger,
		},
	})

	return nil
}

// RefundToPayer refunds the payer against the original hold. A nil amount
// refunds the full total.
func (s *serviceImpl) RefundToPayer(ctx context.Context, bookingID string, amount *int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".escrow.RefundToPayer")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	booking, err := s.heldBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	refund := booking.TotalAmount
	if amount != nil {
		refund = *amount
	}

	if refund <= 0 || refund > booking.TotalAmount {
		return failure.BadRequestFromString("refund amount must be positive and within the booking total") //nolint:wrapcheck
	}

	if booking.HoldRef == nil {
		s.flag(ctx, bookingID, "refund blocked: booking is held without a hold reference")

		return failure.PreconditionFailed("booking has no payment hold reference") //nolint:wrapcheck
	}

	if err = s.gateway.Refund(ctx, *booking.HoldRef, refund); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("refund to payer failed")

		return fmt.Errorf("refund to payer failed: %w", err)
	}

	ok, err := s.bookings.TransitionPayment(ctx, bookingID, bookingModel.PaymentHeld, bookingModel.PaymentRefunded, map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actorSystem,
	})
	if err != nil {
		s.flag(ctx, bookingID, "refund executed but ledger update failed")

		return fmt.Errorf("failed to record refund: %w", err)
	}

	if !ok {
		s.flag(ctx, bookingID, "refund executed but payment was concurrently resolved")

		return failure.Conflict("booking already resolved") //nolint:wrapcheck
	}

	log.Info().
		Str("booking_id", bookingID).
		Int64("amount", refund).
		Msg("escrow refunded to payer")

	s.publish(ctx, events.Intent{
		Type:      events.IntentEscrowRefunded,
		BookingID: bookingID,
		PayerID:   booking.PayerID,
		PayeeID:   booking.PayeeID,
		EmittedAt: timezone.Now(),
		Payload: map[string]any{
			"amount": refund,
		},
	})

	return nil
}

// SplitResolve pays the payee a percentage of the total and refunds the
// remainder to the payer. The two legs must both complete; if the refund leg
// fails after the transfer the payment stays held and the booking is flagged
// so an operator can finish the job.
func (s *serviceImpl) SplitResolve(ctx context.Context, bookingID string, payeePercent int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".escrow.SplitResolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	if payeePercent < 0 || payeePercent > 100 {
		return failure.BadRequestFromString("payee percentage must be between 0 and 100") //nolint:wrapcheck
	}

	if payeePercent == 0 {
		return s.RefundToPayer(ctx, bookingID, nil)
	}

	booking, err := s.heldBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	payeeShare := booking.TotalAmount * int64(payeePercent) / 100
	refundShare := booking.TotalAmount - payeeShare

	destination, err := s.gateway.PayeeDestination(ctx, booking.PayeeID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to resolve payee destination")

		return fmt.Errorf("failed to resolve payee destination: %w", err)
	}

	if destination == constant.Empty {
		s.flag(ctx, bookingID, "split blocked: payee has no payout destination")

		return failure.PreconditionFailed("payee has no payout destination") //nolint:wrapcheck
	}

	if refundShare > 0 && booking.HoldRef == nil {
		s.flag(ctx, bookingID, "split blocked: booking is held without a hold reference")

		return failure.PreconditionFailed("booking has no payment hold reference") //nolint:wrapcheck
	}

	transfer, err := s.gateway.Transfer(ctx, destination, payeeShare, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("split transfer failed")

		return fmt.Errorf("split transfer failed: %w", err)
	}

	if refundShare > 0 {
		if err = s.gateway.Refund(ctx, *booking.HoldRef, refundShare); err != nil {
			s.flag(ctx, bookingID, fmt.Sprintf("split incomplete: transfer %s executed, refund of %d failed", transfer.ID, refundShare))

			return fmt.Errorf("split refund failed after transfer: %w", err)
		}
	}

	ok, err := s.bookings.TransitionPayment(ctx, bookingID, bookingModel.PaymentHeld, bookingModel.PaymentReleased, map[string]any{
		bookingModel.FieldTransferRef: transfer.ID,
		constant.FieldModifiedAt:      timezone.Now(),
		constant.FieldModifiedBy:      actorSystem,
	})
	if err != nil {
		s.flag(ctx, bookingID, fmt.Sprintf("split executed (transfer %s) but ledger update failed", transfer.ID))

		return fmt.Errorf("failed to record split: %w", err)
	}

	if !ok {
		s.flag(ctx, bookingID, fmt.Sprintf("split executed (transfer %s) but payment was concurrently resolved", transfer.ID))

		return failure.Conflict("booking already resolved") //nolint:wrapcheck
	}

	log.Info().
		Str("booking_id", bookingID).
		Str("transfer_ref", transfer.ID).
		Int("payee_percent", payeePercent).
		Int64("payee_share", payeeShare).
		Int64("refund_share", refundShare).
		Msg("escrow split resolved")

	s.publish(ctx, events.Intent{
		Type:      events.IntentEscrowReleased,
		BookingID: bookingID,
		PayerID:   booking.PayerID,
		PayeeID:   booking.PayeeID,
		EmittedAt: timezone.Now(),
		Payload: map[string]any{
			"payee_share":  payeeShare,
			"refund_share": refundShare,
			"trigger":      TriggerAdmin,
		},
	})

	return nil
}

// Flag records a manual-review marker against a booking.
func (s *serviceImpl) Flag(ctx context.Context, bookingID, reason string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".escrow.Flag")
	defer scope.End()
	defer scope.TraceIfError(err)

	flag := bookingModel.Flag{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Reason:    reason,
		Resolved:  false,
		Metadata:  gModel.NewMetadata(timezone.Now(), actorSystem),
	}

	if err = s.bookings.InsertFlag(ctx, flag); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Str("reason", reason).Msg("failed to flag booking")

		return fmt.Errorf("failed to flag booking: %w", err)
	}

	return nil
}

// heldBooking loads the booking and checks that the payment is still held.
func (s *serviceImpl) heldBooking(ctx context.Context, bookingID string) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to load booking")

		return booking, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking") //nolint:wrapcheck
	}

	if booking.PaymentStatus != bookingModel.PaymentHeld {
		return booking, failure.Conflict("booking already resolved") //nolint:wrapcheck
	}

	return booking, nil
}

// flag is best effort; a flagging failure is logged, never propagated over
// the original error.
func (s *serviceImpl) flag(ctx context.Context, bookingID, reason string) {
	if err := s.Flag(ctx, bookingID, reason); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to record booking flag")
	}
}

// publish is fire-and-forget relative to the persisted transition.
func (s *serviceImpl) publish(ctx context.Context, intent events.Intent) {
	if err := s.events.Publish(ctx, intent); err != nil {
		log.Error().Err(err).Str("booking_id", intent.BookingID).Str("type", intent.Type).Msg("failed to publish intent")
	}
}
