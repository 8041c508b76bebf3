package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// CompletePickup applies the payout exactly once. The status-transition guard
// in the UPDATE keeps a second completion of the same pickup from crediting
// the account again.
func (r *ledgerRepository) CompletePickup(ctx context.Context, pickupID int64, weightKg float64, payout int64) (*domain.Pickup, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var accountID string
	err = tx.QueryRowContext(ctx,
		`UPDATE pickups SET status='COMPLETED', weight_kg=$2, payout=$3, updated_on=$4
		 WHERE id=$1 AND status <> 'COMPLETED'
		 RETURNING account_id`,
		pickupID, weightKg, payout, now).Scan(&accountID)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if checkErr := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM pickups WHERE id=$1)`, pickupID).Scan(&exists); checkErr != nil {
			return nil, checkErr
		}
		if exists {
			return nil, repository.ErrAlreadyCompleted
		}
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + $1, recycled_weight_kg = recycled_weight_kg + $2 WHERE id = $3`,
		payout, weightKg, accountID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (account_id, amount, type, pickup_id, description, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		accountID, payout, domain.EntryTypePickupCredit, pickupID,
		fmt.Sprintf("Payout for pickup #%d (%.2f kg)", pickupID, weightKg), now)
	if err != nil {
		return nil, err
	}

	pickup, err := scanPickup(tx.QueryRowContext(ctx,
		`SELECT `+pickupColumns+` FROM pickups WHERE id = $1`, pickupID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pickup, nil
}

// CreateRedemption debits the balance with a conditional decrement, so two
// concurrent requests can never overdraw the account. Row insert and debit
// commit together or not at all.
func (r *ledgerRepository) CreateRedemption(ctx context.Context, red *domain.Redemption) error {
	if red.Amount <= 0 {
		return fmt.Errorf("redemption amount must be positive, got %d", red.Amount)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1`,
		red.Amount, red.AccountID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if checkErr := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM accounts WHERE id=$1)`, red.AccountID).Scan(&exists); checkErr != nil {
			return checkErr
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	red.Status = domain.RedemptionStatusPending
	red.CreatedOn = now
	red.UpdatedOn = now
	err = tx.QueryRowContext(ctx,
		`INSERT INTO redemptions (account_id, amount, method, status, note, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		red.AccountID, red.Amount, red.Method, red.Status, red.Note, red.CreatedOn, red.UpdatedOn).Scan(&red.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (account_id, amount, type, redemption_id, description, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		red.AccountID, -red.Amount, domain.EntryTypeRedemptionDebit, red.ID,
		fmt.Sprintf("Redemption request #%d", red.ID), now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ApproveRedemption only flips the status; the debit already happened when
// the request was created.
func (r *ledgerRepository) ApproveRedemption(ctx context.Context, redemptionID int64) (*domain.Redemption, error) {
	red, err := scanRedemption(r.db.QueryRowContext(ctx,
		`UPDATE redemptions SET status='APPROVED', updated_on=$2
		 WHERE id=$1 AND status='PENDING'
		 RETURNING `+redemptionColumns,
		redemptionID, time.Now().UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classifyMissingPending(ctx, redemptionID)
	}
	return red, err
}

// RejectRedemption restores the original debited amount in the same
// transaction that flips the status.
func (r *ledgerRepository) RejectRedemption(ctx context.Context, redemptionID int64) (*domain.Redemption, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	red, err := scanRedemption(tx.QueryRowContext(ctx,
		`UPDATE redemptions SET status='REJECTED', updated_on=$2
		 WHERE id=$1 AND status='PENDING'
		 RETURNING `+redemptionColumns,
		redemptionID, now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classifyMissingPending(ctx, redemptionID)
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2`,
		red.Amount, red.AccountID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (account_id, amount, type, redemption_id, description, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		red.AccountID, red.Amount, domain.EntryTypeRedemptionRefund, red.ID,
		fmt.Sprintf("Refund for rejected redemption #%d", red.ID), now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return red, nil
}

func (r *ledgerRepository) GetBalance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return balance, err
}

func (r *ledgerRepository) ListEntries(ctx context.Context, accountID string, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, account_id, amount, type, pickup_id, redemption_id, COALESCE(description, ''), created_on
	          FROM ledger_entries WHERE account_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, accountID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	countQuery := `SELECT count(*) FROM ledger_entries WHERE account_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, accountID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var pickupID, redemptionID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Amount, &e.Type, &pickupID, &redemptionID, &e.Description, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		if pickupID.Valid {
			e.PickupID = &pickupID.Int64
		}
		if redemptionID.Valid {
			e.RedemptionID = &redemptionID.Int64
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}

func (r *ledgerRepository) classifyMissingPending(ctx context.Context, redemptionID int64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM redemptions WHERE id=$1)`, redemptionID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return repository.ErrNotPending
	}
	return repository.ErrNotFound
}
