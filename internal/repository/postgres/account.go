package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

const accountColumns = `id, email, name, COALESCE(phone_number, ''), role, COALESCE(avatar_url, ''),
	COALESCE(password_hash, ''), COALESCE(bank_name, ''), COALESCE(bank_account_number, ''),
	COALESCE(bank_account_holder, ''), COALESCE(gender, ''), COALESCE(address, ''),
	COALESCE(industry, ''), esg_score, balance, recycled_weight_kg, active, created_on, updated_on`

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().Format("2006-01-02")
	a.CreatedOn = now
	a.UpdatedOn = now

	query := `INSERT INTO accounts (id, email, name, phone_number, role, avatar_url, password_hash,
	            bank_name, bank_account_number, bank_account_holder, gender, address, industry,
	            esg_score, balance, recycled_weight_kg, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.Name, a.PhoneNumber, a.Role, a.AvatarURL, nullIfEmpty(a.PasswordHash),
		a.BankName, a.BankAccountNumber, a.BankAccountHolder, a.Gender, a.Address, a.Industry,
		a.ESGScore, a.Balance, a.RecycledWeight, a.Active, a.CreatedOn, a.UpdatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_on DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Update(ctx context.Context, a *domain.Account) error {
	a.UpdatedOn = time.Now().Format("2006-01-02")
	query := `UPDATE accounts SET name=$1, phone_number=$2, avatar_url=$3, gender=$4, address=$5,
	            industry=$6, bank_name=$7, bank_account_number=$8, bank_account_holder=$9,
	            esg_score=$10, role=$11, active=$12, updated_on=$13
	          WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query,
		a.Name, a.PhoneNumber, a.AvatarURL, a.Gender, a.Address,
		a.Industry, a.BankName, a.BankAccountNumber, a.BankAccountHolder,
		a.ESGScore, a.Role, a.Active, a.UpdatedOn, a.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	query := `UPDATE accounts SET password_hash=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, hash, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	a := &domain.Account{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PhoneNumber, &a.Role, &a.AvatarURL,
		&a.PasswordHash, &a.BankName, &a.BankAccountNumber, &a.BankAccountHolder,
		&a.Gender, &a.Address, &a.Industry, &a.ESGScore, &a.Balance, &a.RecycledWeight,
		&a.Active, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	a.CreatedOn = createdOn.Format("2006-01-02")
	a.UpdatedOn = updatedOn.Format("2006-01-02")
	return a, nil
}

func (r *accountRepository) scanOne(row *sql.Row) (*domain.Account, error) {
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
