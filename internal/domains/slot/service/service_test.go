package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/config"
	"sage/infras/otel/mocks"
	listingMocks "sage/internal/domains/listing/mocks"
	listingModel "sage/internal/domains/listing/model"
	slotMocks "sage/internal/domains/slot/mocks"
	"sage/internal/domains/slot/model"
	"sage/internal/domains/slot/model/dto"
	"sage/internal/domains/slot/service"
	cacheMocks "sage/shared/cache/mocks"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
	"sage/shared/timezone"
)

func newSlotService(ctrl *gomock.Controller) (*slotMocks.MockSlot, *listingMocks.MockListing, service.Slot) {
	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockListings := listingMocks.NewMockListing(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache invalidation runs on a detached goroutine.
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return mockRepo, mockListings, service.New(mockRepo, mockListings, cfg, mockCache, mocks.NewOtel())
}

func TestSlotService_Claim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, _, svc := newSlotService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "free slot is claimed",
			setupMock: func() {
				mockRepo.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "re-claiming an owned slot is a no-op",
			setupMock: func() {
				mockRepo.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(false, nil)

				owner := "booking-id"

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", IsBooked: true, BookedBy: &owner}, nil)
			},
			wantErr: false,
		},
		{
			name: "slot held by another booking",
			setupMock: func() {
				mockRepo.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(false, nil)

				owner := "other-booking-id"

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", IsBooked: true, BookedBy: &owner}, nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "slot not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(false, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					Claim(gomock.Any(), "slot-id", "booking-id").
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Claim(context.Background(), "slot-id", "booking-id")

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

func TestSlotService_Release(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, _, svc := newSlotService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "owned slot is released",
			setupMock: func() {
				mockRepo.EXPECT().
					Release(gomock.Any(), "slot-id", "booking-id").
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "repeated release by the prior owner is a no-op",
			setupMock: func() {
				owner := "booking-id"

				mockRepo.EXPECT().
					Release(gomock.Any(), "slot-id", "booking-id").
					Return(false, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", IsBooked: false, BookedBy: &owner}, nil)
			},
			wantErr: false,
		},
		{
			name: "free slot last owned by another booking is rejected",
			setupMock: func() {
				owner := "other-booking-id"

				mockRepo.EXPECT().
					Release(gomock.Any(), "slot-id", "booking-id").
					Return(false, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", IsBooked: false, BookedBy: &owner}, nil)
			},
			wantErr: true,
		},
		{
			name: "never-claimed slot is rejected",
			setupMock: func() {
				mockRepo.EXPECT().
					Release(gomock.Any(), "slot-id", "booking-id").
					Return(false, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", IsBooked: false}, nil)
			},
			wantErr: true,
		},
		{
			name: "slot held by another booking is never freed",
			setupMock: func() {
				mockRepo.EXPECT().
					Release(gomock.Any(), "slot-id", "booking-id").
					Return(false, nil)

				owner := "other-booking-id"

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", IsBooked: true, BookedBy: &owner}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Release(context.Background(), "slot-id", "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlotService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, mockListings, svc := newSlotService(ctrl)

	ownedListing := listingModel.Listing{ID: "listing-id", MentorID: "mentor-id", Active: true}
	futureAt := timezone.Now().Add(72 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name      string
		user      string
		req       dto.CreateSlotsRequest
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "successful creation",
			user: "mentor-id",
			req:  dto.CreateSlotsRequest{ListingID: "listing-id", SlotsAt: []string{futureAt}},
			setupMock: func() {
				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedListing, nil)

				mockRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "only the listing owner can add slots",
			user: "someone-else",
			req:  dto.CreateSlotsRequest{ListingID: "listing-id", SlotsAt: []string{futureAt}},
			setupMock: func() {
				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedListing, nil)
			},
			wantErr: true,
		},
		{
			name: "past slots are rejected",
			user: "mentor-id",
			req: dto.CreateSlotsRequest{
				ListingID: "listing-id",
				SlotsAt:   []string{timezone.Now().Add(-time.Hour).Format(time.RFC3339)},
			},
			setupMock: func() {
				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedListing, nil)
			},
			wantErr: true,
		},
		{
			name: "unparseable timestamp",
			user: "mentor-id",
			req:  dto.CreateSlotsRequest{ListingID: "listing-id", SlotsAt: []string{"not-a-timestamp"}},
			setupMock: func() {
				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedListing, nil)
			},
			wantErr: true,
		},
		{
			name: "duplicate slot time",
			user: "mentor-id",
			req:  dto.CreateSlotsRequest{ListingID: "listing-id", SlotsAt: []string{futureAt}},
			setupMock: func() {
				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedListing, nil)

				mockRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			err := svc.Create(ctx, tt.req)

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

func TestSlotService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, mockListings, svc := newSlotService(ctrl)

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
		errCheck  func(error) bool
	}{
		{
			name: "unclaimed slot is deleted",
			user: "mentor-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", ListingID: "listing-id"}, nil)

				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(listingModel.Listing{ID: "listing-id", MentorID: "mentor-id"}, nil)

				mockRepo.EXPECT().
					DeleteUnclaimed(gomock.Any(), "slot-id").
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "claimed slot cannot be deleted",
			user: "mentor-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", ListingID: "listing-id"}, nil)

				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(listingModel.Listing{ID: "listing-id", MentorID: "mentor-id"}, nil)

				mockRepo.EXPECT().
					DeleteUnclaimed(gomock.Any(), "slot-id").
					Return(false, nil)
			},
			wantErr:  true,
			errCheck: failure.IsConflict,
		},
		{
			name: "only the listing owner can delete",
			user: "someone-else",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{ID: "slot-id", ListingID: "listing-id"}, nil)

				mockListings.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(listingModel.Listing{ID: "listing-id", MentorID: "mentor-id"}, nil)
			},
			wantErr: true,
		},
		{
			name: "slot not found",
			user: "mentor-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Slot{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			err := svc.Delete(ctx, "slot-id")

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

// claimFakeRepo is an in-memory compare-and-set stand-in for the slot table,
// used to exercise claim exclusivity under real goroutine contention.
type claimFakeRepo struct {
	mu    sync.Mutex
	owner map[string]string
	last  map[string]string
}

func newClaimFakeRepo() *claimFakeRepo {
	return &claimFakeRepo{owner: map[string]string{}, last: map[string]string{}}
}

func (f *claimFakeRepo) Claim(_ context.Context, slotID, bookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, taken := f.owner[slotID]; taken {
		return false, nil
	}

	f.owner[slotID] = bookingID

	return true, nil
}

func (f *claimFakeRepo) Release(_ context.Context, slotID, bookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.owner[slotID] != bookingID {
		return false, nil
	}

	f.last[slotID] = bookingID
	delete(f.owner, slotID)

	return true, nil
}

func (f *claimFakeRepo) Get(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot := model.Slot{ID: "slot-id"}
	if owner, taken := f.owner["slot-id"]; taken {
		slot.IsBooked = true
		slot.BookedBy = &owner
	} else if last, released := f.last["slot-id"]; released {
		slot.BookedBy = &last
	}

	return slot, nil
}

func (f *claimFakeRepo) Insert(context.Context, model.Slot) error        { return nil }
func (f *claimFakeRepo) InsertBulk(context.Context, []model.Slot) error  { return nil }
func (f *claimFakeRepo) Exist(context.Context, gDto.FilterGroup) (bool, error) {
	return false, nil
}
func (f *claimFakeRepo) Count(context.Context, gDto.FilterGroup) (int, error) { return 0, nil }
func (f *claimFakeRepo) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Slot, error) {
	return nil, nil
}
func (f *claimFakeRepo) DeleteUnclaimed(context.Context, string) (bool, error) { return false, nil }

func TestSlotService_ClaimExclusivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockListings := listingMocks.NewMockListing(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	repo := newClaimFakeRepo()
	svc := service.New(repo, mockListings, cfg, mockCache, mocks.NewOtel())

	const callers = 32

	var wg sync.WaitGroup

	results := make([]error, callers)

	for i := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = svc.Claim(context.Background(), "slot-id", fmt.Sprintf("booking-%d", i))
		}()
	}

	wg.Wait()

	won := 0
	for _, err := range results {
		if err == nil {
			won++
		} else {
			assert.True(t, failure.IsConflict(err))
		}
	}

	assert.Equal(t, 1, won)

	// The winner can re-claim idempotently; everyone else still loses.
	winner := *repoOwner(repo)
	assert.NoError(t, svc.Claim(context.Background(), "slot-id", winner))
	assert.Error(t, svc.Claim(context.Background(), "slot-id", "booking-late"))
}

func repoOwner(f *claimFakeRepo) *string {
	f.mu.Lock()
	defer f.mu.Unlock()

	owner := f.owner["slot-id"]

	return &owner
}
