package service

import (
	"context"

	"github.com/zoneboy/zilcycler/internal/domain"
)

type RegisterInput struct {
	Email    string      `json:"email"`
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type CreateAccountInput struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type CreatePickupInput struct {
	Material    string `json:"material"`
	Address     string `json:"address"`
	WeightKg    float64 `json:"weight_kg"`
	ScheduledOn string  `json:"scheduled_on"`
}

type UpdatePickupInput struct {
	Status      domain.PickupStatus `json:"status"`
	WeightKg    *float64            `json:"weight_kg,omitempty"`
	CollectorID *string             `json:"collector_id,omitempty"`
}

type AuthService interface {
	// Login verifies credentials and mints a session token. The returned
	// account carries decrypted bank data (full projection for the owner).
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	SendVerification(ctx context.Context, email string) error
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	InitiatePasswordChange(ctx context.Context, accountID, currentPassword string) error
	ConfirmPasswordChange(ctx context.Context, accountID, code, newPassword string) error
}

type AccountService interface {
	// Get returns either a *domain.Account (full projection, bank data
	// decrypted) or an *access.RestrictedAccount depending on who asks.
	Get(ctx context.Context, requesterRole domain.Role, requesterID, targetID string) (any, error)
	List(ctx context.Context, requesterRole domain.Role, requesterID string) ([]any, error)
	Create(ctx context.Context, requesterRole domain.Role, input CreateAccountInput) (*domain.Account, error)
	Update(ctx context.Context, requesterRole domain.Role, requesterID, targetID string, patch *domain.ProfilePatch) (*domain.Account, error)
}

type PickupService interface {
	List(ctx context.Context, requesterRole domain.Role, requesterID string) ([]domain.Pickup, error)
	Create(ctx context.Context, accountID string, input CreatePickupInput) (*domain.Pickup, error)
	// Update applies status/weight changes. The first transition into
	// COMPLETED credits the owning account's payout through the ledger.
	Update(ctx context.Context, requesterRole domain.Role, requesterID string, pickupID int64, input UpdatePickupInput) (*domain.Pickup, error)
}

type RedemptionService interface {
	List(ctx context.Context, requesterRole domain.Role, requesterID string) ([]domain.Redemption, error)
	// Create debits the balance and inserts the request atomically.
	Create(ctx context.Context, accountID string, amount int64, method, note string) (*domain.Redemption, error)
	// UpdateStatus approves or rejects a pending redemption. Rejection
	// re-credits the debited amount; approval changes no balance.
	UpdateStatus(ctx context.Context, requesterRole domain.Role, redemptionID int64, status domain.RedemptionStatus) (*domain.Redemption, error)
}

type LedgerService interface {
	GetBalance(ctx context.Context, accountID string) (int64, error)
	GetEntries(ctx context.Context, accountID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, requesterRole domain.Role, settings *domain.Settings) (*domain.Settings, error)
}

// RateLimiter guards security-sensitive endpoints. Allow returns false only
// on a confirmed limit breach; a broken counter store fails open by default.
type RateLimiter interface {
	Allow(ctx context.Context, class, key string) bool
}

type EmailService interface {
	SendOTP(ctx context.Context, email, name string, purpose domain.OTPPurpose, code string, minutes int) error
}
