package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Review=MockReviewService

import (
	"context"
	"errors"
	"fmt"
	"sage/config"
	"sage/infras/otel"
	bookingModel "sage/internal/domains/booking/model"
	bookingRepo "sage/internal/domains/booking/repository"
	complaintService "sage/internal/domains/complaint/service"
	escrowService "sage/internal/domains/escrow/service"
	"sage/internal/domains/review/model"
	"sage/internal/domains/review/model/dto"
	"sage/internal/domains/review/policy"
	"sage/internal/domains/review/repository"
	"sage/shared"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
	gModel "sage/shared/model"
	"sage/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Review interface {
	Submit(ctx context.Context, bookingID string, req dto.SubmitReviewRequest) (dto.ReviewResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.ReviewResponse, error)
	GetAllByListing(ctx context.Context, listingID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
	GetAllByMentor(ctx context.Context, mentorID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
}

type serviceImpl struct {
	repo       repository.Review
	bookings   bookingRepo.Booking
	escrow     escrowService.Escrow
	complaints complaintService.Complaint
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Review,
	bookings bookingRepo.Booking,
	escrow escrowService.Escrow,
	complaints complaintService.Complaint,
	cfg *config.Config,
	otel otel.Otel,
) Review {
	return &serviceImpl{
		repo:       repo,
		bookings:   bookings,
		escrow:     escrow,
		complaints: complaints,
		cfg:        cfg,
		otel:       otel,
	}
}

// Submit records the payer's one review of a completed booking and resolves
// its escrow consequence. The review itself is the durable fact: once it is
// written it stands, even if the follow-up release attempt fails and has to
// be healed later by the reconciliation sweep.
func (s *serviceImpl) Submit(ctx context.Context, bookingID string, req dto.SubmitReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBookingAttributeKey, bookingID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to load booking")

		return res, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") //nolint:wrapcheck
	}

	if booking.PayerID != user {
		return res, failure.Forbidden("only the payer can review a booking") //nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusCompleted {
		return res, failure.Conflict("only a completed booking can be reviewed") //nolint:wrapcheck
	}

	now := timezone.Now()
	if now.After(booking.ReviewDeadline) {
		return res, failure.PreconditionFailed("review window has closed") //nolint:wrapcheck
	}

	review := model.Review{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		ListingID: booking.ListingID,
		MentorID:  booking.PayeeID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Metadata:  gModel.NewMetadata(now, user),
	}

	if err = s.repo.Insert(ctx, review); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("booking has already been reviewed") //nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to insert review")

		return res, fmt.Errorf("failed to insert review: %w", err)
	}

	s.resolve(ctx, booking, review, user)

	res.FromModel(review)

	return res, nil
}

// resolve applies the rating outcome. Failures here never surface to the
// submitter; the review is already durable and the sweep retries releases.
func (s *serviceImpl) resolve(ctx context.Context, booking bookingModel.Booking, review model.Review, user string) {
	outcome := policy.Resolve(review.Rating, s.cfg.Policy.ReleaseThreshold)

	switch outcome {
	case policy.OutcomeRelease:
		err := s.escrow.ReleaseToPayee(ctx, booking.ID, escrowService.TriggerReview)
		if err != nil && !failure.IsConflict(err) {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("release after review failed")

			if flagErr := s.escrow.Flag(ctx, booking.ID, "release after review failed, pending sweep retry"); flagErr != nil {
				log.Error().Err(flagErr).Str("booking_id", booking.ID).Msg("failed to flag booking")
			}
		}
	case policy.OutcomeEscalate:
		reason := fmt.Sprintf("rating %d below release threshold %d", review.Rating, s.cfg.Policy.ReleaseThreshold)

		if err := s.complaints.Open(ctx, booking.ID, user, reason); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to open complaint for low rating")
		}

		ok, err := s.bookings.TransitionStatus(ctx, booking.ID,
			[]string{bookingModel.StatusCompleted}, bookingModel.StatusUnderReview,
			map[string]any{
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user,
			})
		if err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to park booking under review")
		} else if !ok {
			log.Warn().Str("booking_id", booking.ID).Msg("booking left completed status before escalation")
		}
	}
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	review, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to load review")

		return res, fmt.Errorf("failed to load review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound("review") //nolint:wrapcheck
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) GetAllByListing(ctx context.Context, listingID string, params gDto.QueryParams) (dto.GetReviewsResponse, error) {
	return s.getAll(ctx, model.FieldListingID, listingID, params)
}

func (s *serviceImpl) GetAllByMentor(ctx context.Context, mentorID string, params gDto.QueryParams) (dto.GetReviewsResponse, error) {
	return s.getAll(ctx, model.FieldMentorID, mentorID, params)
}

func (s *serviceImpl) getAll(ctx context.Context, field, value string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.getAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reviews")

		return res, fmt.Errorf("failed to list reviews: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}
