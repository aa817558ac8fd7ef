package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/config"
	"sage/infras/otel/mocks"
	"sage/infras/payments"
	paymentsMocks "sage/infras/payments/mocks"
	bookingMocks "sage/internal/domains/booking/mocks"
	"sage/internal/domains/booking/model"
	"sage/internal/domains/booking/model/dto"
	"sage/internal/domains/booking/service"
	commissionMocks "sage/internal/domains/commission/mocks"
	escrowMocks "sage/internal/domains/escrow/mocks"
	listingMocks "sage/internal/domains/listing/mocks"
	listingModel "sage/internal/domains/listing/model"
	slotMocks "sage/internal/domains/slot/mocks"
	slotModel "sage/internal/domains/slot/model"
	eventsMocks "sage/internal/events/mocks"
	cacheMocks "sage/shared/cache/mocks"
	"sage/shared/constant"
	"sage/shared/failure"
	"sage/shared/timezone"
)

type bookingFixture struct {
	repo        *bookingMocks.MockBooking
	listingRepo *listingMocks.MockListing
	slotRepo    *slotMocks.MockSlot
	slots       *slotMocks.MockSlotService
	commissions *commissionMocks.MockCommissionService
	escrow      *escrowMocks.MockEscrowService
	gateway     *paymentsMocks.MockGateway
	events      *eventsMocks.MockPublisher
	cache       *cacheMocks.MockRedisCache
	svc         service.Booking
}

func newBookingFixture(ctrl *gomock.Controller) *bookingFixture {
	f := &bookingFixture{
		repo:        bookingMocks.NewMockBooking(ctrl),
		listingRepo: listingMocks.NewMockListing(ctrl),
		slotRepo:    slotMocks.NewMockSlot(ctrl),
		slots:       slotMocks.NewMockSlotService(ctrl),
		commissions: commissionMocks.NewMockCommissionService(ctrl),
		escrow:      escrowMocks.NewMockEscrowService(ctrl),
		gateway:     paymentsMocks.NewMockGateway(ctrl),
		events:      eventsMocks.NewMockPublisher(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Policy.ReviewWindowHours = 24
	cfg.Cache.TTL = 3600

	// Cache invalidation runs on a detached goroutine.
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.repo, f.listingRepo, f.slotRepo, f.slots, f.commissions,
		f.escrow, f.gateway, f.events, cfg, f.cache, mocks.NewOtel(),
	)

	return f
}

func activeListing() listingModel.Listing {
	return listingModel.Listing{
		ID:          "listing-id",
		MentorID:    "mentor-id",
		Title:       "Systems Design Coaching",
		Category:    "engineering",
		PriceAmount: 1000,
		Active:      true,
	}
}

func openSlot() slotModel.Slot {
	return slotModel.Slot{
		ID:        "slot-id",
		ListingID: "listing-id",
		SlotAt:    timezone.Now().Add(72 * time.Hour),
	}
}

func pendingBooking() model.Booking {
	return model.Booking{
		ID:             "booking-id",
		ListingID:      "listing-id",
		PayerID:        "payer-id",
		PayeeID:        "mentor-id",
		SlotID:         "slot-id",
		SessionAt:      timezone.Now().Add(72 * time.Hour),
		TotalAmount:    1000,
		PayeeAmount:    850,
		PlatformFee:    150,
		ReviewDeadline: timezone.Now().Add(96 * time.Hour),
		Status:         model.StatusPending,
		PaymentStatus:  model.PaymentPending,
	}
}

func confirmedBooking() model.Booking {
	holdRef := "hold-ref"
	booking := pendingBooking()
	booking.Status = model.StatusConfirmed
	booking.PaymentStatus = model.PaymentHeld
	booking.HoldRef = &holdRef

	return booking
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation freezes the commission split",
			user: "payer-id",
			setupMock: func() {
				f.listingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeListing(), nil)

				f.slotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openSlot(), nil)

				f.commissions.EXPECT().
					Rate(gomock.Any(), "mentor-id", "engineering").
					Return(15, nil)

				f.slots.EXPECT().
					Claim(gomock.Any(), "slot-id", gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, int64(1000), booking.TotalAmount)
						assert.Equal(t, int64(850), booking.PayeeAmount)
						assert.Equal(t, int64(150), booking.PlatformFee)
						assert.Equal(t, booking.TotalAmount, booking.PayeeAmount+booking.PlatformFee)

						return nil
					})

				f.events.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "inactive listing",
			user: "payer-id",
			setupMock: func() {
				inactive := activeListing()
				inactive.Active = false

				f.listingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactive, nil)
			},
			wantErr: true,
		},
		{
			name: "mentor cannot book their own listing",
			user: "mentor-id",
			setupMock: func() {
				f.listingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeListing(), nil)
			},
			wantErr: true,
		},
		{
			name: "slot belongs to another listing",
			user: "payer-id",
			setupMock: func() {
				f.listingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeListing(), nil)

				foreign := openSlot()
				foreign.ListingID = "other-listing-id"

				f.slotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(foreign, nil)
			},
			wantErr: true,
		},
		{
			name: "lost slot race",
			user: "payer-id",
			setupMock: func() {
				f.listingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeListing(), nil)

				f.slotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openSlot(), nil)

				f.commissions.EXPECT().
					Rate(gomock.Any(), "mentor-id", "engineering").
					Return(15, nil)

				f.slots.EXPECT().
					Claim(gomock.Any(), "slot-id", gomock.Any()).
					Return(failure.Conflict("slot is already booked"))
			},
			wantErr: true,
		},
		{
			name: "insert failure releases the claimed slot",
			user: "payer-id",
			setupMock: func() {
				f.listingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeListing(), nil)

				f.slotRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openSlot(), nil)

				f.commissions.EXPECT().
					Rate(gomock.Any(), "mentor-id", "engineering").
					Return(15, nil)

				f.slots.EXPECT().
					Claim(gomock.Any(), "slot-id", gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				f.slots.EXPECT().
					Release(gomock.Any(), "slot-id", gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			result, err := f.svc.Create(ctx, dto.CreateBookingRequest{ListingID: "listing-id", SlotID: "slot-id"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "listing-id", result.ListingID)
				assert.Equal(t, model.StatusPending, result.Status)
			}
		})
	}
}

func TestBookingService_ConfirmPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "successful capture and confirmation",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.slots.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(nil)

				f.gateway.EXPECT().
					Capture(gomock.Any(), "hold-ref", int64(1000)).
					Return(payments.Hold{ID: "hold-ref", Amount: 1000}, nil)

				f.repo.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id", []string{model.StatusPending}, model.StatusConfirmed, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "retry on a confirmed booking is idempotent",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr: false,
		},
		{
			name: "only the payer can confirm",
			user: "mentor-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr: true,
		},
		{
			name: "cancelled booking is no longer payable",
			user: "payer-id",
			setupMock: func() {
				cancelled := pendingBooking()
				cancelled.Status = model.StatusCancelled

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "lost confirmation race refunds the capture",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.slots.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(nil)

				f.gateway.EXPECT().
					Capture(gomock.Any(), "hold-ref", int64(1000)).
					Return(payments.Hold{ID: "hold-ref", Amount: 1000}, nil)

				f.repo.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id", []string{model.StatusPending}, model.StatusConfirmed, gomock.Any()).
					Return(false, nil)

				f.gateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(1000)).
					Return(nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "unrefundable capture flags the booking",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.slots.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(nil)

				f.gateway.EXPECT().
					Capture(gomock.Any(), "hold-ref", int64(1000)).
					Return(payments.Hold{ID: "hold-ref", Amount: 1000}, nil)

				f.repo.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id", []string{model.StatusPending}, model.StatusConfirmed, gomock.Any()).
					Return(false, errors.New("database error"))

				f.gateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(1000)).
					Return(errors.New("provider error"))

				f.escrow.EXPECT().
					Flag(gomock.Any(), "booking-id", gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			result, err := f.svc.ConfirmPayment(ctx, "booking-id", dto.ConfirmPaymentRequest{HoldRef: "hold-ref"})

			if tt.wantErr {
				assert.Error(t, err)

				if tt.errCheck != nil {
					assert.True(t, tt.errCheck(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusConfirmed, result.Status)
				assert.Equal(t, model.PaymentHeld, result.PaymentStatus)
			}
		})
	}
}

func TestBookingService_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "authorizes a hold for the full booking amount",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.gateway.EXPECT().
					AuthorizeHold(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req payments.AuthorizeRequest) (payments.Hold, error) {
						assert.Equal(t, int64(1000), req.Amount)
						assert.Equal(t, "booking-id", req.Reference)

						return payments.Hold{ID: "hold-ref", Amount: 1000, Currency: "USD"}, nil
					})
			},
			wantErr: false,
		},
		{
			name: "only the payer can check out",
			user: "mentor-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr: true,
		},
		{
			name: "confirmed booking is past checkout",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "gateway authorization failure",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.gateway.EXPECT().
					AuthorizeHold(gomock.Any(), gomock.Any()).
					Return(payments.Hold{}, errors.New("provider down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			result, err := f.svc.Checkout(ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.errCheck != nil {
					assert.True(t, tt.errCheck(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id", result.BookingID)
				assert.Equal(t, "hold-ref", result.HoldRef)
				assert.Equal(t, int64(1000), result.Amount)
			}
		})
	}
}

func TestBookingService_Accept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful acceptance provisions meeting and conversation",
			user: "mentor-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				f.repo.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id", []string{model.StatusConfirmed}, model.StatusConfirmed, gomock.Any()).
					Return(true, nil)

				f.events.EXPECT().
					Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "accepting twice is a no-op",
			user: "mentor-id",
			setupMock: func() {
				accepted := confirmedBooking()
				now := timezone.Now()
				accepted.AcceptedAt = &now

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(accepted, nil)
			},
			wantErr: false,
		},
		{
			name: "only the payee can accept",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr: true,
		},
		{
			name: "unpaid booking cannot be accepted",
			user: "mentor-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			err := f.svc.Accept(ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "rejecting a held booking refunds the payer",
			user: "mentor-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				f.repo.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{model.StatusPending, model.StatusConfirmed, model.StatusUnderReview},
						model.StatusCancelled, gomock.Any()).
					Return(true, nil)

				f.slots.EXPECT().
					Release(gomock.Any(), "slot-id", "booking-id").
					Return(nil)

				f.escrow.EXPECT().
					RefundToPayer(gomock.Any(), "booking-id", nil).
					Return(nil)

				f.events.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "accepted booking can no longer be rejected",
			user: "mentor-id",
			setupMock: func() {
				accepted := confirmedBooking()
				now := timezone.Now()
				accepted.AcceptedAt = &now

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(accepted, nil)
			},
			wantErr: true,
		},
		{
			name: "refund failure flags the booking but keeps it cancelled",
			user: "mentor-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				f.repo.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{model.StatusPending, model.StatusConfirmed, model.StatusUnderReview},
						model.StatusCancelled, gomock.Any()).
					Return(true, nil)

				f.slots.EXPECT().
					Release(gomock.Any(), "slot-id", "booking-id").
					Return(nil)

				f.escrow.EXPECT().
					RefundToPayer(gomock.Any(), "booking-id", nil).
					Return(errors.New("provider error"))

				f.escrow.EXPECT().
					Flag(gomock.Any(), "booking-id", gomock.Any()).
					Return(nil)

				f.events.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			err := f.svc.Reject(ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	acceptedPastSession := func() model.Booking {
		booking := confirmedBooking()
		accepted := timezone.Now().Add(-48 * time.Hour)
		booking.AcceptedAt = &accepted
		booking.SessionAt = timezone.Now().Add(-time.Hour)

		return booking
	}

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "participant completes after the session",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(acceptedPastSession(), nil)

				f.repo.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id", []string{model.StatusConfirmed}, model.StatusCompleted, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "completing twice is a no-op",
			user: "mentor-id",
			setupMock: func() {
				done := acceptedPastSession()
				done.Status = model.StatusCompleted

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(done, nil)
			},
			wantErr: false,
		},
		{
			name: "outsider cannot complete",
			user: "someone-else",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(acceptedPastSession(), nil)
			},
			wantErr: true,
		},
		{
			name: "session has not occurred yet",
			user: "payer-id",
			setupMock: func() {
				future := acceptedPastSession()
				future.SessionAt = timezone.Now().Add(time.Hour)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(future, nil)
			},
			wantErr:  true,
			errCheck: failure.IsPreconditionFailed,
		},
		{
			name: "unaccepted booking cannot be completed",
			user: "payer-id",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			err := f.svc.Complete(ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.errCheck != nil {
					assert.True(t, tt.errCheck(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		user      string
		role      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "participant can read their booking",
			user: "payer-id",
			role: constant.RoleLearner,
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr: false,
		},
		{
			name: "admin can read any booking",
			user: "admin-user",
			role: constant.RoleAdmin,
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr: false,
		},
		{
			name: "outsider is forbidden",
			user: "someone-else",
			role: constant.RoleLearner,
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)

			result, err := f.svc.Get(ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id", result.ID)
			}
		})
	}
}
