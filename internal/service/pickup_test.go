package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
	"github.com/zoneboy/zilcycler/internal/service"
)

func TestComputePayout(t *testing.T) {
	t.Run("Known Materials", func(t *testing.T) {
		assert.Equal(t, int64(45), service.ComputePayout("plastic", 4.5))
		assert.Equal(t, int64(75), service.ComputePayout("metal", 5))
		assert.Equal(t, int64(25), service.ComputePayout("e-waste", 1))
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		assert.Equal(t, int64(45), service.ComputePayout("Plastic", 4.5))
	})

	t.Run("Unknown Material Uses Default Rate", func(t *testing.T) {
		assert.Equal(t, int64(10), service.ComputePayout("styrofoam", 2))
	})

	t.Run("Rounds To Nearest Zoint", func(t *testing.T) {
		// 10 * 0.44 = 4.4 rounds down, 10 * 0.46 = 4.6 rounds up.
		assert.Equal(t, int64(4), service.ComputePayout("plastic", 0.44))
		assert.Equal(t, int64(5), service.ComputePayout("plastic", 0.46))
	})
}

func TestPickupService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Household Sees Own", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		svc := service.NewPickupService(pickupRepo, new(MockLedgerRepo))
		pickupRepo.On("ListByAccount", ctx, "acct-1").Return([]domain.Pickup{{ID: 1, AccountID: "acct-1"}}, nil)

		pickups, err := svc.List(ctx, domain.RoleHousehold, "acct-1")
		assert.NoError(t, err)
		assert.Len(t, pickups, 1)
		pickupRepo.AssertCalled(t, "ListByAccount", ctx, "acct-1")
	})

	t.Run("Collector Sees Assigned", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		svc := service.NewPickupService(pickupRepo, new(MockLedgerRepo))
		pickupRepo.On("ListByCollector", ctx, "coll-1").Return([]domain.Pickup{}, nil)

		_, err := svc.List(ctx, domain.RoleCollector, "coll-1")
		assert.NoError(t, err)
		pickupRepo.AssertCalled(t, "ListByCollector", ctx, "coll-1")
	})

	t.Run("Staff Sees All", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		svc := service.NewPickupService(pickupRepo, new(MockLedgerRepo))
		pickupRepo.On("ListAll", ctx).Return([]domain.Pickup{}, nil)

		_, err := svc.List(ctx, domain.RoleStaff, "staff-1")
		assert.NoError(t, err)
		pickupRepo.AssertCalled(t, "ListAll", ctx)
	})
}

func TestPickupService_Update(t *testing.T) {
	ctx := context.Background()
	collID := "coll-1"
	weight := 4.5

	assigned := func(status domain.PickupStatus) *domain.Pickup {
		return &domain.Pickup{
			ID:          7,
			AccountID:   "acct-1",
			CollectorID: &collID,
			Material:    "plastic",
			WeightKg:    4.0,
			Status:      status,
		}
	}

	t.Run("Completion Goes Through Ledger", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewPickupService(pickupRepo, ledgerRepo)

		pickupRepo.On("GetByID", ctx, int64(7)).Return(assigned(domain.PickupStatusCollected), nil)
		ledgerRepo.On("CompletePickup", ctx, int64(7), 4.5, int64(45)).
			Return(&domain.Pickup{ID: 7, Status: domain.PickupStatusCompleted, Payout: 45}, nil)

		pickup, err := svc.Update(ctx, domain.RoleCollector, "coll-1", 7, service.UpdatePickupInput{
			Status:   domain.PickupStatusCompleted,
			WeightKg: &weight,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.PickupStatusCompleted, pickup.Status)
		assert.Equal(t, int64(45), pickup.Payout)
		pickupRepo.AssertNotCalled(t, "Update", ctx, assigned(domain.PickupStatusCollected))
	})

	t.Run("Second Completion Rejected", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewPickupService(pickupRepo, ledgerRepo)

		pickupRepo.On("GetByID", ctx, int64(7)).Return(assigned(domain.PickupStatusCompleted), nil)
		ledgerRepo.On("CompletePickup", ctx, int64(7), 4.5, int64(45)).
			Return(nil, repository.ErrAlreadyCompleted)

		_, err := svc.Update(ctx, domain.RoleStaff, "staff-1", 7, service.UpdatePickupInput{
			Status:   domain.PickupStatusCompleted,
			WeightKg: &weight,
		})
		assert.ErrorIs(t, err, repository.ErrAlreadyCompleted)
	})

	t.Run("Unassigned Collector Denied", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		svc := service.NewPickupService(pickupRepo, new(MockLedgerRepo))

		pickupRepo.On("GetByID", ctx, int64(7)).Return(assigned(domain.PickupStatusScheduled), nil)

		_, err := svc.Update(ctx, domain.RoleCollector, "coll-2", 7, service.UpdatePickupInput{
			Status: domain.PickupStatusCollected,
		})
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("Owner May Cancel Before Collection", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		svc := service.NewPickupService(pickupRepo, new(MockLedgerRepo))

		pickupRepo.On("GetByID", ctx, int64(7)).Return(assigned(domain.PickupStatusRequested), nil)
		pickupRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Pickup) bool {
			return p.Status == domain.PickupStatusCancelled
		})).Return(nil)

		pickup, err := svc.Update(ctx, domain.RoleHousehold, "acct-1", 7, service.UpdatePickupInput{
			Status: domain.PickupStatusCancelled,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.PickupStatusCancelled, pickup.Status)
	})

	t.Run("Owner Cannot Complete", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewPickupService(pickupRepo, ledgerRepo)

		pickupRepo.On("GetByID", ctx, int64(7)).Return(assigned(domain.PickupStatusCollected), nil)

		_, err := svc.Update(ctx, domain.RoleHousehold, "acct-1", 7, service.UpdatePickupInput{
			Status: domain.PickupStatusCompleted,
		})
		assert.ErrorIs(t, err, service.ErrForbidden)
		ledgerRepo.AssertNotCalled(t, "CompletePickup", ctx, int64(7), 4.0, int64(40))
	})
}

func TestPickupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Scheduled Date Sets Status", func(t *testing.T) {
		pickupRepo := new(MockPickupRepo)
		svc := service.NewPickupService(pickupRepo, new(MockLedgerRepo))

		pickupRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Pickup) bool {
			return p.Status == domain.PickupStatusScheduled && p.ScheduledOn != nil && p.Material == "plastic"
		})).Return(nil)

		pickup, err := svc.Create(ctx, "acct-1", service.CreatePickupInput{
			Material:    " Plastic ",
			WeightKg:    4.5,
			ScheduledOn: "2026-09-15",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.PickupStatusScheduled, pickup.Status)
	})

	t.Run("Bad Date Rejected", func(t *testing.T) {
		svc := service.NewPickupService(new(MockPickupRepo), new(MockLedgerRepo))

		_, err := svc.Create(ctx, "acct-1", service.CreatePickupInput{
			Material:    "plastic",
			ScheduledOn: "next tuesday",
		})
		assert.Error(t, err)
	})
}
