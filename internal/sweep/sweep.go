package sweep

import (
	"context"
	"sage/config"
	bookingRepo "sage/internal/domains/booking/repository"
	escrowService "sage/internal/domains/escrow/service"
	"sage/shared/constant"
	"sage/shared/failure"
	"sage/shared/timezone"
	"time"

	"sage/infras/otel"

	"github.com/rs/zerolog/log"
)

const batchSize = 100

// Sweeper is the reconciliation loop. It heals two gaps the synchronous
// paths can leave behind: review deadlines that elapsed with no review, and
// positive reviews whose immediate release attempt failed. Each run is
// idempotent; a booking resolved between the listing query and the release
// attempt is skipped, never double paid.
type Sweeper struct {
	bookings bookingRepo.Booking
	escrow   escrowService.Escrow
	cfg      *config.Config
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, escrow escrowService.Escrow, cfg *config.Config, otel otel.Otel) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		escrow:   escrow,
		cfg:      cfg,
		otel:     otel,
	}
}

// Start runs the sweep on its configured interval until the context is
// cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	if s.cfg.Sweep.RunOnStartup {
		s.RunOnce(ctx)
	}

	ticker := time.NewTicker(time.Duration(s.cfg.Sweep.IntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sweep stopped")

			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes both passes and reports how many bookings were released,
// skipped as already resolved, and failed.
func (s *Sweeper) RunOnce(ctx context.Context) (released, skipped, failed int) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSweepScopeName, constant.OtelSweepScopeName+".RunOnce")
	defer scope.End()

	r, sk, f := s.sweepDeadlines(ctx)
	released, skipped, failed = released+r, skipped+sk, failed+f

	r, sk, f = s.sweepReviewed(ctx)
	released, skipped, failed = released+r, skipped+sk, failed+f

	log.Info().
		Int("released", released).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("reconciliation sweep finished")

	return released, skipped, failed
}

// sweepDeadlines auto releases completed, held bookings whose review window
// closed without a review.
func (s *Sweeper) sweepDeadlines(ctx context.Context) (released, skipped, failed int) {
	models, err := s.bookings.DueForAutoRelease(ctx, timezone.Now(), batchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings past review deadline")

		return released, skipped, failed
	}

	for _, booking := range models {
		r, sk, f := s.release(ctx, booking.ID, escrowService.TriggerDeadline)
		released, skipped, failed = released+r, skipped+sk, failed+f
	}

	return released, skipped, failed
}

// sweepReviewed retries releases for bookings holding a review at or above
// the threshold whose synchronous release did not land.
func (s *Sweeper) sweepReviewed(ctx context.Context) (released, skipped, failed int) {
	models, err := s.bookings.ReviewedStillHeld(ctx, s.cfg.Policy.ReleaseThreshold, batchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reviewed bookings still held")

		return released, skipped, failed
	}

	for _, booking := range models {
		r, sk, f := s.release(ctx, booking.ID, escrowService.TriggerSweep)
		released, skipped, failed = released+r, skipped+sk, failed+f
	}

	return released, skipped, failed
}

// release resolves one booking; a failure never stops the run.
func (s *Sweeper) release(ctx context.Context, bookingID, trigger string) (released, skipped, failed int) {
	err := s.escrow.ReleaseToPayee(ctx, bookingID, trigger)
	switch {
	case err == nil:
		return 1, 0, 0
	case failure.IsConflict(err):
		return 0, 1, 0
	case failure.IsPreconditionFailed(err):
		// Already flagged with its blocker; nothing more to do here.
		log.Warn().Err(err).Str("booking_id", bookingID).Msg("sweep release blocked")

		return 0, 0, 1
	default:
		log.Error().Err(err).Str("booking_id", bookingID).Str("trigger", trigger).Msg("sweep release failed")

		return 0, 0, 1
	}
}
