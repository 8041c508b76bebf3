package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository"
	"github.com/zoneboy/zilcycler/internal/security"
)

type authService struct {
	accountRepo  repository.AccountRepository
	otpRepo      repository.OTPRepository
	settingsRepo repository.SettingsRepository
	tokens       security.TokenManager
	cipher       *security.FieldCipher
	emailSvc     EmailService
	signupTTL    time.Duration
	resetTTL     time.Duration
}

func NewAuthService(
	accountRepo repository.AccountRepository,
	otpRepo repository.OTPRepository,
	settingsRepo repository.SettingsRepository,
	tokens security.TokenManager,
	cipher *security.FieldCipher,
	emailSvc EmailService,
	signupTTL, resetTTL time.Duration,
) AuthService {
	return &authService{
		accountRepo:  accountRepo,
		otpRepo:      otpRepo,
		settingsRepo: settingsRepo,
		tokens:       tokens,
		cipher:       cipher,
		emailSvc:     emailSvc,
		signupTTL:    signupTTL,
		resetTTL:     resetTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	// Maintenance mode locks out everyone except staff and admins. The
	// flag is read fresh from the store so a flip applies immediately.
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", nil, err
	}
	if settings.MaintenanceMode && !account.Role.Privileged() {
		return "", nil, ErrMaintenanceMode
	}

	// A suspended account and an account that never set a password both
	// fail the same way as a wrong password.
	if !account.Active || account.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Role, account.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	account.BankAccountNumber, err = s.cipher.Decrypt(account.BankAccountNumber)
	if err != nil {
		return "", nil, err
	}
	account.PasswordHash = ""
	return token, account, nil
}

func (s *authService) SendVerification(ctx context.Context, email string) error {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.RegistrationsOpen {
		return ErrRegistrationsClosed
	}

	if _, err := s.accountRepo.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	return s.issueOTP(ctx, email, "", domain.OTPPurposeSignup, s.signupTTL)
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := s.consumeOTP(ctx, input.Email, domain.OTPPurposeSignup, input.Code); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleHousehold
	}
	// Self-service registration only creates end-user accounts. Collector
	// and staff accounts come from administrative creation.
	if role != domain.RoleHousehold && role != domain.RoleOrganization {
		return nil, ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        input.Email,
		Name:         input.Name,
		PhoneNumber:  input.Phone,
		Role:         role,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.Info("Account registered", "account_id", account.ID, "role", account.Role)
	account.PasswordHash = ""
	return account, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Do not reveal whether the email is registered.
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	return s.issueOTP(ctx, account.Email, account.Name, domain.OTPPurposeReset, s.resetTTL)
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.consumeOTP(ctx, email, domain.OTPPurposeReset, code); err != nil {
		return err
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}

	return s.setPassword(ctx, account.ID, newPassword)
}

func (s *authService) InitiatePasswordChange(ctx context.Context, accountID, currentPassword string) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	return s.issueOTP(ctx, account.Email, account.Name, domain.OTPPurposeChangePassword, s.resetTTL)
}

func (s *authService) ConfirmPasswordChange(ctx context.Context, accountID, code, newPassword string) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.consumeOTP(ctx, account.Email, domain.OTPPurposeChangePassword, code); err != nil {
		return err
	}

	return s.setPassword(ctx, account.ID, newPassword)
}

func (s *authService) setPassword(ctx context.Context, accountID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accountRepo.SetPasswordHash(ctx, accountID, string(hash))
}

func (s *authService) issueOTP(ctx context.Context, email, name string, purpose domain.OTPPurpose, ttl time.Duration) error {
	code, err := security.GenerateOTPCode()
	if err != nil {
		return err
	}

	otp := &domain.OTP{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresOn: time.Now().UTC().Add(ttl),
	}
	if err := s.otpRepo.Upsert(ctx, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	minutes := int(ttl.Minutes())
	if err := s.emailSvc.SendOTP(ctx, email, name, purpose, code, minutes); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

// consumeOTP deletes the code only on a successful match. A wrong or late
// attempt leaves the stored code available for retry until it expires.
func (s *authService) consumeOTP(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
	otp, err := s.otpRepo.Get(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}
	if otp.Expired(time.Now().UTC()) {
		return ErrInvalidOrExpiredCode
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		return ErrInvalidOrExpiredCode
	}

	if err := s.otpRepo.Delete(ctx, email, purpose); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
