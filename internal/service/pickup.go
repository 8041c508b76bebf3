package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository"
)

// Zoints paid per kilogram of collected material.
var payoutRates = map[string]float64{
	"plastic": 10,
	"paper":   5,
	"glass":   8,
	"metal":   15,
	"e-waste": 25,
	"organic": 3,
}

const defaultPayoutRate = 5

type pickupService struct {
	pickupRepo repository.PickupRepository
	ledgerRepo repository.LedgerRepository
}

func NewPickupService(pickupRepo repository.PickupRepository, ledgerRepo repository.LedgerRepository) PickupService {
	return &pickupService{pickupRepo: pickupRepo, ledgerRepo: ledgerRepo}
}

func (s *pickupService) List(ctx context.Context, requesterRole domain.Role, requesterID string) ([]domain.Pickup, error) {
	switch {
	case requesterRole.Privileged():
		return s.pickupRepo.ListAll(ctx)
	case requesterRole == domain.RoleCollector:
		return s.pickupRepo.ListByCollector(ctx, requesterID)
	default:
		return s.pickupRepo.ListByAccount(ctx, requesterID)
	}
}

func (s *pickupService) Create(ctx context.Context, accountID string, input CreatePickupInput) (*domain.Pickup, error) {
	pickup := &domain.Pickup{
		AccountID: accountID,
		Material:  strings.ToLower(strings.TrimSpace(input.Material)),
		WeightKg:  input.WeightKg,
		Address:   input.Address,
		Status:    domain.PickupStatusRequested,
	}
	if input.ScheduledOn != "" {
		scheduled, err := time.Parse("2006-01-02", input.ScheduledOn)
		if err != nil {
			return nil, errors.New("scheduled_on must be YYYY-MM-DD")
		}
		pickup.ScheduledOn = &scheduled
		pickup.Status = domain.PickupStatusScheduled
	}

	if err := s.pickupRepo.Create(ctx, pickup); err != nil {
		return nil, err
	}
	return pickup, nil
}

func (s *pickupService) Update(ctx context.Context, requesterRole domain.Role, requesterID string, pickupID int64, input UpdatePickupInput) (*domain.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(ctx, pickupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.authorize(requesterRole, requesterID, pickup, input); err != nil {
		return nil, err
	}

	if input.Status == domain.PickupStatusCompleted {
		weight := pickup.WeightKg
		if input.WeightKg != nil {
			weight = *input.WeightKg
		}
		payout := ComputePayout(pickup.Material, weight)

		// The ledger owns the completion transition; it is what makes the
		// credit single-shot per pickup.
		completed, err := s.ledgerRepo.CompletePickup(ctx, pickupID, weight, payout)
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyCompleted) {
				return nil, repository.ErrAlreadyCompleted
			}
			return nil, err
		}
		logger.Info("Pickup completed", "pickup_id", pickupID, "payout", payout, "weight_kg", weight)
		return completed, nil
	}

	if input.Status != "" {
		pickup.Status = input.Status
	}
	if input.WeightKg != nil {
		pickup.WeightKg = *input.WeightKg
	}
	if input.CollectorID != nil {
		pickup.CollectorID = input.CollectorID
	}

	if err := s.pickupRepo.Update(ctx, pickup); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The guard in the UPDATE also rejects completed pickups.
			return nil, repository.ErrAlreadyCompleted
		}
		return nil, err
	}
	return pickup, nil
}

func (s *pickupService) authorize(requesterRole domain.Role, requesterID string, pickup *domain.Pickup, input UpdatePickupInput) error {
	if requesterRole.Privileged() {
		return nil
	}
	if requesterRole == domain.RoleCollector {
		if pickup.CollectorID != nil && *pickup.CollectorID == requesterID {
			return nil
		}
		return ErrForbidden
	}
	// Owners may only cancel their own not-yet-collected pickup.
	if pickup.AccountID == requesterID &&
		input.Status == domain.PickupStatusCancelled &&
		input.WeightKg == nil && input.CollectorID == nil &&
		(pickup.Status == domain.PickupStatusRequested || pickup.Status == domain.PickupStatusScheduled) {
		return nil
	}
	return ErrForbidden
}

// ComputePayout converts a weighed pickup into Zoints, rounded to the
// nearest whole point.
func ComputePayout(material string, weightKg float64) int64 {
	rate, ok := payoutRates[strings.ToLower(material)]
	if !ok {
		rate = defaultPayoutRate
	}
	return int64(math.Round(rate * weightKg))
}
