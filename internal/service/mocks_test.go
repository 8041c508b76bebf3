package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zoneboy/zilcycler/internal/domain"
)

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) SetPasswordHash(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// MockOTPRepo
type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Upsert(ctx context.Context, otp *domain.OTP) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}
func (m *MockOTPRepo) Get(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTP, error) {
	args := m.Called(ctx, email, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTP), args.Error(1)
}
func (m *MockOTPRepo) Delete(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	args := m.Called(ctx, email, purpose)
	return args.Error(0)
}
func (m *MockOTPRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsRepo) Update(ctx context.Context, settings *domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockPickupRepo
type MockPickupRepo struct {
	mock.Mock
}

func (m *MockPickupRepo) Create(ctx context.Context, pickup *domain.Pickup) error {
	args := m.Called(ctx, pickup)
	return args.Error(0)
}
func (m *MockPickupRepo) GetByID(ctx context.Context, id int64) (*domain.Pickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pickup), args.Error(1)
}
func (m *MockPickupRepo) Update(ctx context.Context, pickup *domain.Pickup) error {
	args := m.Called(ctx, pickup)
	return args.Error(0)
}
func (m *MockPickupRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.Pickup, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Pickup), args.Error(1)
}
func (m *MockPickupRepo) ListByCollector(ctx context.Context, collectorID string) ([]domain.Pickup, error) {
	args := m.Called(ctx, collectorID)
	return args.Get(0).([]domain.Pickup), args.Error(1)
}
func (m *MockPickupRepo) ListAll(ctx context.Context) ([]domain.Pickup, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Pickup), args.Error(1)
}

// MockRedemptionRepo
type MockRedemptionRepo struct {
	mock.Mock
}

func (m *MockRedemptionRepo) GetByID(ctx context.Context, id int64) (*domain.Redemption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Redemption), args.Error(1)
}
func (m *MockRedemptionRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.Redemption, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Redemption), args.Error(1)
}
func (m *MockRedemptionRepo) ListAll(ctx context.Context) ([]domain.Redemption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Redemption), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CompletePickup(ctx context.Context, pickupID int64, weightKg float64, payout int64) (*domain.Pickup, error) {
	args := m.Called(ctx, pickupID, weightKg, payout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pickup), args.Error(1)
}
func (m *MockLedgerRepo) CreateRedemption(ctx context.Context, redemption *domain.Redemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}
func (m *MockLedgerRepo) ApproveRedemption(ctx context.Context, redemptionID int64) (*domain.Redemption, error) {
	args := m.Called(ctx, redemptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Redemption), args.Error(1)
}
func (m *MockLedgerRepo) RejectRedemption(ctx context.Context, redemptionID int64) (*domain.Redemption, error) {
	args := m.Called(ctx, redemptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Redemption), args.Error(1)
}
func (m *MockLedgerRepo) GetBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerRepo) ListEntries(ctx context.Context, accountID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}

// MockRateLimitRepo
type MockRateLimitRepo struct {
	mock.Mock
}

func (m *MockRateLimitRepo) CountInWindow(ctx context.Context, key string, window time.Duration, now time.Time) (int, error) {
	args := m.Called(ctx, key, window, now)
	return args.Get(0).(int), args.Error(1)
}
func (m *MockRateLimitRepo) RecordAttempt(ctx context.Context, key string, window time.Duration, at time.Time) error {
	args := m.Called(ctx, key, window, at)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOTP(ctx context.Context, email, name string, purpose domain.OTPPurpose, code string, minutes int) error {
	args := m.Called(ctx, email, name, purpose, code, minutes)
	return args.Error(0)
}
