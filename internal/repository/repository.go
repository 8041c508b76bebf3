package repository

import (
	"context"
	"time"

	"github.com/zoneboy/zilcycler/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	// Update writes the mutable profile and administrative columns. It
	// never touches balance or recycled weight; those move only through
	// the ledger.
	Update(ctx context.Context, account *domain.Account) error
	SetPasswordHash(ctx context.Context, id, hash string) error
}

type OTPRepository interface {
	// Upsert replaces any live code for the same (email, purpose) pair.
	Upsert(ctx context.Context, otp *domain.OTP) error
	Get(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTP, error)
	Delete(ctx context.Context, email string, purpose domain.OTPPurpose) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type PickupRepository interface {
	Create(ctx context.Context, pickup *domain.Pickup) error
	GetByID(ctx context.Context, id int64) (*domain.Pickup, error)
	// Update writes scheduling fields and non-completing status changes.
	// The COMPLETED transition goes through LedgerRepository.CompletePickup.
	Update(ctx context.Context, pickup *domain.Pickup) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.Pickup, error)
	ListByCollector(ctx context.Context, collectorID string) ([]domain.Pickup, error)
	ListAll(ctx context.Context) ([]domain.Pickup, error)
}

type RedemptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Redemption, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Redemption, error)
	ListAll(ctx context.Context) ([]domain.Redemption, error)
}

// LedgerRepository owns every balance mutation. Each method runs in a single
// database transaction; on any failure the store is left untouched.
type LedgerRepository interface {
	// CompletePickup flips the pickup into COMPLETED, records the final
	// weight and payout, credits the owning account and accumulates its
	// lifetime recycled weight. Applying it twice for the same pickup
	// returns ErrAlreadyCompleted without a second credit.
	CompletePickup(ctx context.Context, pickupID int64, weightKg float64, payout int64) (*domain.Pickup, error)
	// CreateRedemption inserts the redemption row and debits the account
	// in one transaction. Returns ErrInsufficientFunds when the balance
	// cannot cover the amount; concurrent requests cannot overdraw.
	CreateRedemption(ctx context.Context, redemption *domain.Redemption) error
	// ApproveRedemption flips PENDING to APPROVED. The debit already
	// happened at request time, so the balance is untouched.
	ApproveRedemption(ctx context.Context, redemptionID int64) (*domain.Redemption, error)
	// RejectRedemption flips PENDING to REJECTED and re-credits the
	// original amount in the same transaction.
	RejectRedemption(ctx context.Context, redemptionID int64) (*domain.Redemption, error)
	GetBalance(ctx context.Context, accountID string) (int64, error)
	ListEntries(ctx context.Context, accountID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings *domain.Settings) error
}

// RateLimitRepository counts attempts inside a rolling window. Backed by
// Redis sorted sets; errors from it are a degraded-mode signal, not a reason
// to reject traffic.
type RateLimitRepository interface {
	CountInWindow(ctx context.Context, key string, window time.Duration, now time.Time) (int, error)
	RecordAttempt(ctx context.Context, key string, window time.Duration, at time.Time) error
}
