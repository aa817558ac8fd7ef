package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/infras/otel/mocks"
	"sage/infras/payments"
	paymentsMocks "sage/infras/payments/mocks"
	bookingMocks "sage/internal/domains/booking/mocks"
	bookingModel "sage/internal/domains/booking/model"
	"sage/internal/domains/escrow/service"
	eventsMocks "sage/internal/events/mocks"
	"sage/shared/failure"
)

func heldBooking() bookingModel.Booking {
	holdRef := "hold-ref"

	return bookingModel.Booking{
		ID:            "booking-id",
		ListingID:     "listing-id",
		PayerID:       "payer-id",
		PayeeID:       "payee-id",
		TotalAmount:   1000,
		PayeeAmount:   850,
		PlatformFee:   150,
		HoldRef:       &holdRef,
		Status:        bookingModel.StatusCompleted,
		PaymentStatus: bookingModel.PaymentHeld,
	}
}

func TestEscrowService_ReleaseToPayee(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockGateway := paymentsMocks.NewMockGateway(ctrl)
	mockEvents := eventsMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookings, mockGateway, mockEvents, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "successful release",
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					PayeeDestination(gomock.Any(), "payee-id").
					Return("acct-dest", nil)

				mockGateway.EXPECT().
					Transfer(gomock.Any(), "acct-dest", int64(850), "booking-id").
					Return(payments.Transfer{ID: "tr-1", Amount: 850}, nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentReleased, gomock.Any()).
					Return(true, nil)

				mockEvents.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "payment already resolved",
			setupMock: func() {
				resolved := heldBooking()
				resolved.PaymentStatus = bookingModel.PaymentReleased

				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resolved, nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "missing payout destination flags the booking",
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					PayeeDestination(gomock.Any(), "payee-id").
					Return("", nil)

				mockBookings.EXPECT().
					InsertFlag(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:  true,
			errCheck: failure.IsPreconditionFailed,
		},
		{
			name: "transfer failure",
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					PayeeDestination(gomock.Any(), "payee-id").
					Return("acct-dest", nil)

				mockGateway.EXPECT().
					Transfer(gomock.Any(), "acct-dest", int64(850), "booking-id").
					Return(payments.Transfer{}, errors.New("provider error"))
			},
			wantErr: true,
		},
		{
			name: "transfer landed but payment concurrently resolved",
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					PayeeDestination(gomock.Any(), "payee-id").
					Return("acct-dest", nil)

				mockGateway.EXPECT().
					Transfer(gomock.Any(), "acct-dest", int64(850), "booking-id").
					Return(payments.Transfer{ID: "tr-1"}, nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentReleased, gomock.Any()).
					Return(false, nil)

				mockBookings.EXPECT().
					InsertFlag(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ReleaseToPayee(context.Background(), "booking-id", service.TriggerReview)

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

func TestEscrowService_RefundToPayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockGateway := paymentsMocks.NewMockGateway(ctrl)
	mockEvents := eventsMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookings, mockGateway, mockEvents, mockOtel)

	partial := int64(400)
	tooLarge := int64(5000)

	tests := []struct {
		name      string
		amount    *int64
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name:   "full refund",
			amount: nil,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(1000)).
					Return(nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentRefunded, gomock.Any()).
					Return(true, nil)

				mockEvents.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "partial refund",
			amount: &partial,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(400)).
					Return(nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentRefunded, gomock.Any()).
					Return(true, nil)

				mockEvents.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "refund exceeding the booking total",
			amount: &tooLarge,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)
			},
			wantErr: true,
		},
		{
			name:   "held booking without a hold reference",
			amount: nil,
			setupMock: func() {
				broken := heldBooking()
				broken.HoldRef = nil

				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(broken, nil)

				mockBookings.EXPECT().
					InsertFlag(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:  true,
			errCheck: failure.IsPreconditionFailed,
		},
		{
			name:   "refund executed but payment concurrently resolved",
			amount: nil,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(1000)).
					Return(nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentRefunded, gomock.Any()).
					Return(false, nil)

				mockBookings.EXPECT().
					InsertFlag(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.RefundToPayer(context.Background(), "booking-id", tt.amount)

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

func TestEscrowService_SplitResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockGateway := paymentsMocks.NewMockGateway(ctrl)
	mockEvents := eventsMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookings, mockGateway, mockEvents, mockOtel)

	tests := []struct {
		name      string
		percent   int
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "percentage above 100",
			percent:   101,
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "negative percentage",
			percent:   -1,
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:    "zero percent delegates to a full refund",
			percent: 0,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(1000)).
					Return(nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentRefunded, gomock.Any()).
					Return(true, nil)

				mockEvents.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "sixty percent split conserves the total",
			percent: 60,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					PayeeDestination(gomock.Any(), "payee-id").
					Return("acct-dest", nil)

				mockGateway.EXPECT().
					Transfer(gomock.Any(), "acct-dest", int64(600), "booking-id").
					Return(payments.Transfer{ID: "tr-1"}, nil)

				mockGateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(400)).
					Return(nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentReleased, gomock.Any()).
					Return(true, nil)

				mockEvents.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "hundred percent skips the refund leg",
			percent: 100,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					PayeeDestination(gomock.Any(), "payee-id").
					Return("acct-dest", nil)

				mockGateway.EXPECT().
					Transfer(gomock.Any(), "acct-dest", int64(1000), "booking-id").
					Return(payments.Transfer{ID: "tr-1"}, nil)

				mockBookings.EXPECT().
					TransitionPayment(gomock.Any(), "booking-id", bookingModel.PaymentHeld, bookingModel.PaymentReleased, gomock.Any()).
					Return(true, nil)

				mockEvents.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "refund leg failure after transfer flags the booking",
			percent: 60,
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(heldBooking(), nil)

				mockGateway.EXPECT().
					PayeeDestination(gomock.Any(), "payee-id").
					Return("acct-dest", nil)

				mockGateway.EXPECT().
					Transfer(gomock.Any(), "acct-dest", int64(600), "booking-id").
					Return(payments.Transfer{ID: "tr-1"}, nil)

				mockGateway.EXPECT().
					Refund(gomock.Any(), "hold-ref", int64(400)).
					Return(errors.New("provider error"))

				mockBookings.EXPECT().
					InsertFlag(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.SplitResolve(context.Background(), "booking-id", tt.percent)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEscrowService_Flag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockGateway := paymentsMocks.NewMockGateway(ctrl)
	mockEvents := eventsMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookings, mockGateway, mockEvents, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful flag",
			setupMock: func() {
				mockBookings.EXPECT().
					InsertFlag(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "insert error",
			setupMock: func() {
				mockBookings.EXPECT().
					InsertFlag(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Flag(context.Background(), "booking-id", "manual follow-up")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
