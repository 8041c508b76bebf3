package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/zoneboy/zilcycler/internal/access"
	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository"
	"github.com/zoneboy/zilcycler/internal/security"
)

type accountService struct {
	accountRepo repository.AccountRepository
	cipher      *security.FieldCipher
}

func NewAccountService(accountRepo repository.AccountRepository, cipher *security.FieldCipher) AccountService {
	return &accountService{accountRepo: accountRepo, cipher: cipher}
}

func (s *accountService) Get(ctx context.Context, requesterRole domain.Role, requesterID, targetID string) (any, error) {
	account, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.project(requesterRole, requesterID, account)
}

func (s *accountService) List(ctx context.Context, requesterRole domain.Role, requesterID string) ([]any, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]any, 0, len(accounts))
	for i := range accounts {
		view, err := s.project(requesterRole, requesterID, &accounts[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *accountService) Create(ctx context.Context, requesterRole domain.Role, input CreateAccountInput) (*domain.Account, error) {
	if !requesterRole.Privileged() {
		return nil, ErrForbidden
	}
	role := input.Role
	if !role.Valid() {
		return nil, ErrForbidden
	}
	// Only a full admin may mint another admin.
	if role == domain.RoleAdmin && requesterRole != domain.RoleAdmin {
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

	logger.Info("Account created by staff", "account_id", account.ID, "role", account.Role)
	account.PasswordHash = ""
	return account, nil
}

func (s *accountService) Update(ctx context.Context, requesterRole domain.Role, requesterID, targetID string, patch *domain.ProfilePatch) (*domain.Account, error) {
	// Writes require ownership or an elevated role; field-level stripping
	// happens after that gate.
	if !requesterRole.Privileged() && requesterID != targetID {
		return nil, ErrForbidden
	}

	account, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	filtered, stripped := access.FilterPatch(requesterRole, requesterID, targetID, patch)
	if len(stripped) > 0 {
		logger.Warn("Stripped forbidden fields from account update",
			"requester_id", requesterID, "target_id", targetID, "fields", stripped)
	}

	if err := s.applyPatch(account, filtered); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	account.BankAccountNumber, err = s.cipher.Decrypt(account.BankAccountNumber)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

func (s *accountService) applyPatch(account *domain.Account, patch *domain.ProfilePatch) error {
	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		account.PhoneNumber = *patch.PhoneNumber
	}
	if patch.AvatarURL != nil {
		account.AvatarURL = *patch.AvatarURL
	}
	if patch.Gender != nil {
		account.Gender = *patch.Gender
	}
	if patch.Address != nil {
		account.Address = *patch.Address
	}
	if patch.Industry != nil {
		account.Industry = *patch.Industry
	}
	if patch.BankName != nil {
		account.BankName = *patch.BankName
	}
	if patch.BankAccountNumber != nil {
		envelope, err := s.cipher.Encrypt(*patch.BankAccountNumber)
		if err != nil {
			return err
		}
		account.BankAccountNumber = envelope
	}
	if patch.BankAccountHolder != nil {
		account.BankAccountHolder = *patch.BankAccountHolder
	}
	if patch.Active != nil {
		account.Active = *patch.Active
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return ErrForbidden
		}
		account.Role = *patch.Role
	}
	if patch.ESGScore != nil {
		account.ESGScore = *patch.ESGScore
	}
	return nil
}

func (s *accountService) project(requesterRole domain.Role, requesterID string, account *domain.Account) (any, error) {
	if !access.CanViewFull(requesterRole, requesterID, account.ID) {
		return access.Restrict(account), nil
	}

	decrypted, err := s.cipher.Decrypt(account.BankAccountNumber)
	if err != nil {
		return nil, err
	}
	account.BankAccountNumber = decrypted
	account.PasswordHash = ""
	return account, nil
}
