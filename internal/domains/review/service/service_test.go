package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/config"
	"sage/infras/otel/mocks"
	bookingMocks "sage/internal/domains/booking/mocks"
	bookingModel "sage/internal/domains/booking/model"
	complaintMocks "sage/internal/domains/complaint/mocks"
	escrowMocks "sage/internal/domains/escrow/mocks"
	escrowService "sage/internal/domains/escrow/service"
	reviewMocks "sage/internal/domains/review/mocks"
	"sage/internal/domains/review/model"
	"sage/internal/domains/review/model/dto"
	"sage/internal/domains/review/service"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
	"sage/shared/timezone"
)

func completedBooking() bookingModel.Booking {
	accepted := timezone.Now().Add(-48 * time.Hour)

	return bookingModel.Booking{
		ID:             "booking-id",
		ListingID:      "listing-id",
		PayerID:        "payer-id",
		PayeeID:        "payee-id",
		TotalAmount:    1000,
		PayeeAmount:    850,
		PlatformFee:    150,
		ReviewDeadline: timezone.Now().Add(24 * time.Hour),
		AcceptedAt:     &accepted,
		Status:         bookingModel.StatusCompleted,
		PaymentStatus:  bookingModel.PaymentHeld,
	}
}

func TestReviewService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockEscrow := escrowMocks.NewMockEscrowService(ctrl)
	mockComplaints := complaintMocks.NewMockComplaintService(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Policy.ReleaseThreshold = 3

	svc := service.New(mockRepo, mockBookings, mockEscrow, mockComplaints, cfg, mockOtel)

	tests := []struct {
		name      string
		user      string
		req       dto.SubmitReviewRequest
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "high rating releases the escrow",
			user: "payer-id",
			req:  dto.SubmitReviewRequest{Rating: 5, Comment: "great session"},
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "booking-id", escrowService.TriggerReview).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "low rating escalates to a complaint",
			user: "payer-id",
			req:  dto.SubmitReviewRequest{Rating: 2, Comment: "mentor never showed"},
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockComplaints.EXPECT().
					Open(gomock.Any(), "booking-id", "payer-id", gomock.Any()).
					Return(nil)

				mockBookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id", []string{bookingModel.StatusCompleted}, bookingModel.StatusUnderReview, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "release failure does not fail the submit",
			user: "payer-id",
			req:  dto.SubmitReviewRequest{Rating: 4},
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "booking-id", escrowService.TriggerReview).
					Return(errors.New("provider error"))

				mockEscrow.EXPECT().
					Flag(gomock.Any(), "booking-id", gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "only the payer can review",
			user: "someone-else",
			req:  dto.SubmitReviewRequest{Rating: 5},
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking(), nil)
			},
			wantErr: true,
		},
		{
			name: "booking not completed",
			user: "payer-id",
			req:  dto.SubmitReviewRequest{Rating: 5},
			setupMock: func() {
				confirmed := completedBooking()
				confirmed.Status = bookingModel.StatusConfirmed

				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "review window closed",
			user: "payer-id",
			req:  dto.SubmitReviewRequest{Rating: 5},
			setupMock: func() {
				expired := completedBooking()
				expired.ReviewDeadline = timezone.Now().Add(-time.Second)

				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(expired, nil)
			},
			wantErr:  true,
			errCheck: failure.IsPreconditionFailed,
		},
		{
			name: "duplicate review",
			user: "payer-id",
			req:  dto.SubmitReviewRequest{Rating: 5},
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "booking not found",
			user: "payer-id",
			req:  dto.SubmitReviewRequest{Rating: 5},
			setupMock: func() {
				mockBookings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			result, err := svc.Submit(ctx, "booking-id", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.errCheck != nil {
					assert.True(t, tt.errCheck(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id", result.BookingID)
				assert.Equal(t, tt.req.Rating, result.Rating)
			}
		})
	}
}

func TestReviewService_GetByBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockEscrow := escrowMocks.NewMockEscrowService(ctrl)
	mockComplaints := complaintMocks.NewMockComplaintService(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Policy.ReleaseThreshold = 3

	svc := service.New(mockRepo, mockBookings, mockEscrow, mockComplaints, cfg, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful get",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{ID: "review-id", BookingID: "booking-id", Rating: 4}, nil)
			},
			wantErr: false,
		},
		{
			name: "review not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetByBooking(context.Background(), "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "review-id", result.ID)
			}
		})
	}
}

func TestReviewService_GetAllByListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockEscrow := escrowMocks.NewMockEscrowService(ctrl)
	mockComplaints := complaintMocks.NewMockComplaintService(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockBookings, mockEscrow, mockComplaints, cfg, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successful list",
			setupMock: func() {
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Review{{ID: "review-id", ListingID: "listing-id", Rating: 5}}, nil)
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func() {
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAllByListing(context.Background(), "listing-id", gDto.QueryParams{Limit: 10, Page: 1})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.TotalData)
			}
		})
	}
}
