package service

import (
	"context"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (int64, error) {
	return s.ledgerRepo.GetBalance(ctx, accountID)
}

func (s *ledgerService) GetEntries(ctx context.Context, accountID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.ledgerRepo.ListEntries(ctx, accountID, page, pageSize)
}
