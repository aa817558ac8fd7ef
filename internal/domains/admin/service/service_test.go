package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/config"
	"sage/infras/otel/mocks"
	adminMocks "sage/internal/domains/admin/mocks"
	"sage/internal/domains/admin/model"
	"sage/internal/domains/admin/model/dto"
	"sage/internal/domains/admin/service"
	bookingMocks "sage/internal/domains/booking/mocks"
	bookingModel "sage/internal/domains/booking/model"
	escrowMocks "sage/internal/domains/escrow/mocks"
	escrowService "sage/internal/domains/escrow/service"
	"sage/shared/constant"
	"sage/shared/failure"
)

type adminFixture struct {
	repo     *adminMocks.MockAdmin
	bookings *bookingMocks.MockBooking
	booking  *bookingMocks.MockBookingService
	escrow   *escrowMocks.MockEscrowService
	svc      service.Admin
}

func newAdminFixture(ctrl *gomock.Controller) *adminFixture {
	f := &adminFixture{
		repo:     adminMocks.NewMockAdmin(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		booking:  bookingMocks.NewMockBookingService(ctrl),
		escrow:   escrowMocks.NewMockEscrowService(ctrl),
	}

	cfg := &config.Config{}
	cfg.Payments.Currency = "USD"

	f.svc = service.New(f.repo, f.bookings, f.booking, f.escrow, cfg, mocks.NewOtel())

	return f
}

func adminCtx(role, email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-user")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, email)
}

func (f *adminFixture) expectEnrolled() {
	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)
}

func TestAdminService_Gate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
	}{
		{
			name:      "non-admin role is rejected before the allowlist",
			ctx:       adminCtx(constant.RoleMentor, "ops@example.com"),
			setupMock: func() {},
		},
		{
			name:      "admin without an email claim is rejected",
			ctx:       adminCtx(constant.RoleAdmin, ""),
			setupMock: func() {},
		},
		{
			name: "admin role but not enrolled",
			ctx:  adminCtx(constant.RoleAdmin, "ops@example.com"),
			setupMock: func() {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.ReleaseFull(tt.ctx, "booking-id")

			assert.Error(t, err)
			assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		})
	}
}

func TestAdminService_Overrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)
	ctx := adminCtx(constant.RoleAdmin, "ops@example.com")

	tests := []struct {
		name      string
		setupMock func()
		call      func() error
		wantErr   bool
	}{
		{
			name: "full release settles the escrow and completes a suspended booking",
			setupMock: func() {
				f.expectEnrolled()

				f.escrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "booking-id", escrowService.TriggerAdmin).
					Return(nil)

				f.bookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{bookingModel.StatusUnderReview},
						bookingModel.StatusCompleted, gomock.Any()).
					Return(true, nil)
			},
			call: func() error { return f.svc.ReleaseFull(ctx, "booking-id") },
		},
		{
			name: "partial release splits the escrow and completes a suspended booking",
			setupMock: func() {
				f.expectEnrolled()

				f.escrow.EXPECT().
					SplitResolve(gomock.Any(), "booking-id", 60).
					Return(nil)

				f.bookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{bookingModel.StatusUnderReview},
						bookingModel.StatusCompleted, gomock.Any()).
					Return(true, nil)
			},
			call: func() error {
				return f.svc.ReleasePartial(ctx, "booking-id", dto.ReleasePartialRequest{PayeePercent: 60})
			},
		},
		{
			name: "release of a never-suspended booking leaves its status alone",
			setupMock: func() {
				f.expectEnrolled()

				f.escrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "booking-id", escrowService.TriggerAdmin).
					Return(nil)

				f.bookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{bookingModel.StatusUnderReview},
						bookingModel.StatusCompleted, gomock.Any()).
					Return(false, nil)
			},
			call: func() error { return f.svc.ReleaseFull(ctx, "booking-id") },
		},
		{
			name: "full refund delegates to the escrow",
			setupMock: func() {
				f.expectEnrolled()

				f.escrow.EXPECT().
					RefundToPayer(gomock.Any(), "booking-id", nil).
					Return(nil)
			},
			call: func() error { return f.svc.RefundFull(ctx, "booking-id") },
		},
		{
			name: "cancel delegates to the booking lifecycle",
			setupMock: func() {
				f.expectEnrolled()

				f.booking.EXPECT().
					Cancel(gomock.Any(), "booking-id").
					Return(nil)
			},
			call: func() error { return f.svc.CancelBooking(ctx, "booking-id") },
		},
		{
			name: "escrow failure is surfaced",
			setupMock: func() {
				f.expectEnrolled()

				f.escrow.EXPECT().
					ReleaseToPayee(gomock.Any(), "booking-id", escrowService.TriggerAdmin).
					Return(failure.Conflict("booking already resolved"))
			},
			call:    func() error { return f.svc.ReleaseFull(ctx, "booking-id") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := tt.call()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdminService_Suspend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)
	ctx := adminCtx(constant.RoleAdmin, "ops@example.com")

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "confirmed booking is parked under review",
			setupMock: func() {
				f.expectEnrolled()

				f.bookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{bookingModel.StatusPending, bookingModel.StatusConfirmed},
						bookingModel.StatusUnderReview, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "completed booking cannot be suspended",
			setupMock: func() {
				f.expectEnrolled()

				f.bookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{bookingModel.StatusPending, bookingModel.StatusConfirmed},
						bookingModel.StatusUnderReview, gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Suspend(ctx, "booking-id")

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

func TestAdminService_Unsuspend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)
	ctx := adminCtx(constant.RoleAdmin, "ops@example.com")

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "suspended booking returns to confirmed",
			setupMock: func() {
				f.expectEnrolled()

				f.bookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{bookingModel.StatusUnderReview},
						bookingModel.StatusConfirmed, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "booking not under review",
			setupMock: func() {
				f.expectEnrolled()

				f.bookings.EXPECT().
					TransitionStatus(gomock.Any(), "booking-id",
						[]string{bookingModel.StatusUnderReview},
						bookingModel.StatusConfirmed, gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Unsuspend(ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdminService_SuspendUnsuspendRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)
	ctx := adminCtx(constant.RoleAdmin, "ops@example.com")

	f.expectEnrolled()

	f.bookings.EXPECT().
		TransitionStatus(gomock.Any(), "booking-id",
			[]string{bookingModel.StatusPending, bookingModel.StatusConfirmed},
			bookingModel.StatusUnderReview, gomock.Any()).
		Return(true, nil)

	assert.NoError(t, f.svc.Suspend(ctx, "booking-id"))

	// Unsuspend hands the booking back to confirmed, never straight to
	// completed, so the session-time gate still applies.
	f.expectEnrolled()

	f.bookings.EXPECT().
		TransitionStatus(gomock.Any(), "booking-id",
			[]string{bookingModel.StatusUnderReview},
			bookingModel.StatusConfirmed, gomock.Any()).
		Return(true, nil)

	assert.NoError(t, f.svc.Unsuspend(ctx, "booking-id"))
}

func TestAdminService_AddAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)
	ctx := adminCtx(constant.RoleAdmin, "ops@example.com")

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "email is enrolled",
			setupMock: func() {
				f.expectEnrolled()

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			setupMock: func() {
				f.expectEnrolled()

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.AddAdmin(ctx, dto.AddAdminRequest{Email: "new-admin@example.com"})

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

func TestAdminService_RemoveAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)
	ctx := adminCtx(constant.RoleAdmin, "ops@example.com")

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "entry is removed",
			setupMock: func() {
				f.expectEnrolled()

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{ID: "entry-id", Email: "old-admin@example.com"}, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "entry not found",
			setupMock: func() {
				f.expectEnrolled()

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.RemoveAdmin(ctx, "entry-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdminService_Revenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)

	f.expectEnrolled()

	f.bookings.EXPECT().
		SumReleasedFees(gomock.Any()).
		Return(int64(4500), nil)

	res, err := f.svc.Revenue(adminCtx(constant.RoleAdmin, "ops@example.com"))

	assert.NoError(t, err)
	assert.Equal(t, int64(4500), res.TotalPlatformFees)
	assert.Equal(t, "USD", res.Currency)
}

func TestAdminService_ResolveFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAdminFixture(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "flag is resolved",
			setupMock: func() {
				f.expectEnrolled()

				f.bookings.EXPECT().
					UpdateFlags(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			setupMock: func() {
				f.expectEnrolled()

				f.bookings.EXPECT().
					UpdateFlags(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.ResolveFlag(adminCtx(constant.RoleAdmin, "ops@example.com"), "flag-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
