package service

import (
	"context"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update flips the platform flags. Only admins may do this; staff can read
// them but maintenance mode and registration gating stay an admin call.
func (s *settingsService) Update(ctx context.Context, requesterRole domain.Role, settings *domain.Settings) (*domain.Settings, error) {
	if requesterRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return s.settingsRepo.Get(ctx)
}
