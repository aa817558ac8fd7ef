package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/infras/otel/mocks"
	complaintMocks "sage/internal/domains/complaint/mocks"
	"sage/internal/domains/complaint/model"
	"sage/internal/domains/complaint/model/dto"
	"sage/internal/domains/complaint/service"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
)

func TestComplaintService_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := complaintMocks.NewMockComplaint(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "first complaint is filed",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, complaint model.Complaint) error {
						assert.Equal(t, "booking-id", complaint.BookingID)
						assert.Equal(t, model.StatusOpen, complaint.Status)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "a booking with an open complaint does not get a second one",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Open(context.Background(), "booking-id", "payer-id", "mentor never showed")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComplaintService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := complaintMocks.NewMockComplaint(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "open complaint is resolved",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Complaint{ID: "complaint-id", Status: model.StatusOpen}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "already resolved",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Complaint{ID: "complaint-id", Status: model.StatusResolved}, nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "complaint not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Complaint{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-user")
			err := svc.Resolve(ctx, "complaint-id", dto.ResolveComplaintRequest{Resolution: "refunded the learner"})

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

func TestComplaintService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := complaintMocks.NewMockComplaint(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Complaint{{ID: "complaint-id", BookingID: "booking-id", Status: model.StatusOpen}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Complaints, 1)
}
