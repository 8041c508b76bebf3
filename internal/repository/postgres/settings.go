package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get reads the single settings row. Callers fetch it fresh per request so
// flag flips are visible immediately on every instance.
func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	err := r.db.QueryRowContext(ctx,
		`SELECT maintenance_mode, registrations_open FROM app_settings WHERE id = 1`).
		Scan(&s.MaintenanceMode, &s.RegistrationsOpen)
	if errors.Is(err, sql.ErrNoRows) {
		// No row yet means factory defaults: open for business.
		return &domain.Settings{MaintenanceMode: false, RegistrationsOpen: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_settings (id, maintenance_mode, registrations_open) VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET maintenance_mode = EXCLUDED.maintenance_mode,
		   registrations_open = EXCLUDED.registrations_open`,
		s.MaintenanceMode, s.RegistrationsOpen)
	return err
}
