package sweep_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/config"
	"sage/infras/otel/mocks"
	bookingMocks "sage/internal/domains/booking/mocks"
	bookingModel "sage/internal/domains/booking/model"
	escrowMocks "sage/internal/domains/escrow/mocks"
	"sage/internal/domains/escrow/service"
	"sage/internal/sweep"
	"sage/shared/failure"
)

func TestSweeper_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockEscrow := escrowMocks.NewMockEscrowService(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Policy.ReleaseThreshold = 3

	sweeper := sweep.New(mockBookings, mockEscrow, cfg, mockOtel)

	tests := []struct {
		name         string
		setupMock    func()
		wantReleased int
		wantSkipped  int
		wantFailed   int
	}{
		{
			name: "nothing due",
			setupMock: func() {
				mockBookings.EXPECT().
					DueForAutoRelease(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				mockBookings.EXPECT().
					ReviewedStillHeld(gomock.Any(), 3, gomock.Any()).
					Return(nil, nil)
			},
			wantReleased: 0,
			wantSkipped:  0,
			wantFailed:   0,
		},
		{
			name: "mixed outcomes across both passes",
			setupMock: func() {
				mockBookings.EXPECT().
					DueForAutoRelease(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]bookingModel.Booking{{ID: "b-1"}, {ID: "b-2"}}, nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-1", service.TriggerDeadline).
					Return(nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-2", service.TriggerDeadline).
					Return(failure.Conflict("booking already resolved"))

				mockBookings.EXPECT().
					ReviewedStillHeld(gomock.Any(), 3, gomock.Any()).
					Return([]bookingModel.Booking{{ID: "b-3"}}, nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-3", service.TriggerSweep).
					Return(failure.PreconditionFailed("payee has no payout destination"))
			},
			wantReleased: 1,
			wantSkipped:  1,
			wantFailed:   1,
		},
		{
			name: "one failure does not stop the run",
			setupMock: func() {
				mockBookings.EXPECT().
					DueForAutoRelease(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]bookingModel.Booking{{ID: "b-1"}, {ID: "b-2"}}, nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-1", service.TriggerDeadline).
					Return(errors.New("provider error"))

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-2", service.TriggerDeadline).
					Return(nil)

				mockBookings.EXPECT().
					ReviewedStillHeld(gomock.Any(), 3, gomock.Any()).
					Return(nil, nil)
			},
			wantReleased: 1,
			wantSkipped:  0,
			wantFailed:   1,
		},
		{
			name: "listing query failure skips the pass",
			setupMock: func() {
				mockBookings.EXPECT().
					DueForAutoRelease(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))

				mockBookings.EXPECT().
					ReviewedStillHeld(gomock.Any(), 3, gomock.Any()).
					Return([]bookingModel.Booking{{ID: "b-4"}}, nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-4", service.TriggerSweep).
					Return(nil)
			},
			wantReleased: 1,
			wantSkipped:  0,
			wantFailed:   0,
		},
		{
			name: "rerun over already resolved bookings is a no-op",
			setupMock: func() {
				mockBookings.EXPECT().
					DueForAutoRelease(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]bookingModel.Booking{{ID: "b-1"}}, nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-1", service.TriggerDeadline).
					Return(failure.Conflict("booking already resolved"))

				mockBookings.EXPECT().
					ReviewedStillHeld(gomock.Any(), 3, gomock.Any()).
					Return([]bookingModel.Booking{{ID: "b-3"}}, nil)

				mockEscrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "b-3", service.TriggerSweep).
					Return(failure.Conflict("booking already resolved"))
			},
			wantReleased: 0,
			wantSkipped:  2,
			wantFailed:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			released, skipped, failed := sweeper.RunOnce(context.Background())

			assert.Equal(t, tt.wantReleased, released)
			assert.Equal(t, tt.wantSkipped, skipped)
			assert.Equal(t, tt.wantFailed, failed)
		})
	}
}
