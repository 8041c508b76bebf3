package postgres

import (
	"database/sql"

	"github.com/zoneboy/zilcycler/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AccountRepository
	repository.OTPRepository
	repository.PickupRepository
	repository.RedemptionRepository
	repository.LedgerRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		AccountRepository:    NewAccountRepository(db),
		OTPRepository:        NewOTPRepository(db),
		PickupRepository:     NewPickupRepository(db),
		RedemptionRepository: NewRedemptionRepository(db),
		LedgerRepository:     NewLedgerRepository(db),
		SettingsRepository:   NewSettingsRepository(db),
	}
}
