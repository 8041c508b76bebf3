package service

import (
	"context"
	"errors"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository"
)

type redemptionService struct {
	redemptionRepo repository.RedemptionRepository
	ledgerRepo     repository.LedgerRepository
}

func NewRedemptionService(redemptionRepo repository.RedemptionRepository, ledgerRepo repository.LedgerRepository) RedemptionService {
	return &redemptionService{redemptionRepo: redemptionRepo, ledgerRepo: ledgerRepo}
}

func (s *redemptionService) List(ctx context.Context, requesterRole domain.Role, requesterID string) ([]domain.Redemption, error) {
	if requesterRole.Privileged() {
		return s.redemptionRepo.ListAll(ctx)
	}
	return s.redemptionRepo.ListByAccount(ctx, requesterID)
}

func (s *redemptionService) Create(ctx context.Context, accountID string, amount int64, method, note string) (*domain.Redemption, error) {
	if amount <= 0 {
		return nil, ErrInsufficientFunds
	}

	redemption := &domain.Redemption{
		AccountID: accountID,
		Amount:    amount,
		Method:    method,
		Note:      note,
	}
	if err := s.ledgerRepo.CreateRedemption(ctx, redemption); err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	logger.Info("Redemption requested", "redemption_id", redemption.ID, "account_id", accountID, "amount", amount)
	return redemption, nil
}

func (s *redemptionService) UpdateStatus(ctx context.Context, requesterRole domain.Role, redemptionID int64, status domain.RedemptionStatus) (*domain.Redemption, error) {
	if !requesterRole.Privileged() {
		return nil, ErrForbidden
	}

	var (
		redemption *domain.Redemption
		err        error
	)
	switch status {
	case domain.RedemptionStatusApproved:
		redemption, err = s.ledgerRepo.ApproveRedemption(ctx, redemptionID)
	case domain.RedemptionStatusRejected:
		redemption, err = s.ledgerRepo.RejectRedemption(ctx, redemptionID)
	default:
		return nil, ErrForbidden
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	logger.Info("Redemption status updated", "redemption_id", redemptionID, "status", status)
	return redemption, nil
}
