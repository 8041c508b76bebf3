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

func TestRedemptionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewRedemptionService(new(MockRedemptionRepo), ledgerRepo)

		ledgerRepo.On("CreateRedemption", ctx, mock.MatchedBy(func(r *domain.Redemption) bool {
			return r.AccountID == "acct-1" && r.Amount == 200
		})).Return(nil)

		redemption, err := svc.Create(ctx, "acct-1", 200, "bank_transfer", "")
		assert.NoError(t, err)
		assert.Equal(t, int64(200), redemption.Amount)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewRedemptionService(new(MockRedemptionRepo), ledgerRepo)

		ledgerRepo.On("CreateRedemption", ctx, mock.AnythingOfType("*domain.Redemption")).
			Return(repository.ErrInsufficientFunds)

		_, err := svc.Create(ctx, "acct-1", 5000, "bank_transfer", "")
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)
	})

	t.Run("Non-Positive Amount", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewRedemptionService(new(MockRedemptionRepo), ledgerRepo)

		_, err := svc.Create(ctx, "acct-1", 0, "bank_transfer", "")
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)
		ledgerRepo.AssertNotCalled(t, "CreateRedemption", mock.Anything, mock.Anything)
	})
}

func TestRedemptionService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Approve", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewRedemptionService(new(MockRedemptionRepo), ledgerRepo)

		ledgerRepo.On("ApproveRedemption", ctx, int64(31)).
			Return(&domain.Redemption{ID: 31, Status: domain.RedemptionStatusApproved}, nil)

		redemption, err := svc.UpdateStatus(ctx, domain.RoleStaff, 31, domain.RedemptionStatusApproved)
		assert.NoError(t, err)
		assert.Equal(t, domain.RedemptionStatusApproved, redemption.Status)
	})

	t.Run("Reject Triggers Refund Path", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewRedemptionService(new(MockRedemptionRepo), ledgerRepo)

		ledgerRepo.On("RejectRedemption", ctx, int64(31)).
			Return(&domain.Redemption{ID: 31, Status: domain.RedemptionStatusRejected}, nil)

		redemption, err := svc.UpdateStatus(ctx, domain.RoleAdmin, 31, domain.RedemptionStatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, domain.RedemptionStatusRejected, redemption.Status)
	})

	t.Run("Household Denied", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewRedemptionService(new(MockRedemptionRepo), ledgerRepo)

		_, err := svc.UpdateStatus(ctx, domain.RoleHousehold, 31, domain.RedemptionStatusApproved)
		assert.ErrorIs(t, err, service.ErrForbidden)
		ledgerRepo.AssertNotCalled(t, "ApproveRedemption", mock.Anything, mock.Anything)
	})

	t.Run("Back To Pending Denied", func(t *testing.T) {
		svc := service.NewRedemptionService(new(MockRedemptionRepo), new(MockLedgerRepo))

		_, err := svc.UpdateStatus(ctx, domain.RoleAdmin, 31, domain.RedemptionStatusPending)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}
