package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

const redemptionColumns = `id, account_id, amount, method, status, COALESCE(note, ''), created_on, updated_on`

type redemptionRepository struct {
	db *sql.DB
}

func NewRedemptionRepository(db *sql.DB) repository.RedemptionRepository {
	return &redemptionRepository{db: db}
}

func (r *redemptionRepository) GetByID(ctx context.Context, id int64) (*domain.Redemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE id = $1`
	red, err := scanRedemption(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return red, err
}

func (r *redemptionRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Redemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE account_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, accountID)
}

func (r *redemptionRepository) ListAll(ctx context.Context) ([]domain.Redemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM redemptions ORDER BY created_on DESC`
	return r.list(ctx, query)
}

func (r *redemptionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Redemption, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var redemptions []domain.Redemption
	for rows.Next() {
		red, err := scanRedemption(rows)
		if err != nil {
			return nil, err
		}
		redemptions = append(redemptions, *red)
	}
	return redemptions, rows.Err()
}

func scanRedemption(row rowScanner) (*domain.Redemption, error) {
	red := &domain.Redemption{}
	err := row.Scan(&red.ID, &red.AccountID, &red.Amount, &red.Method, &red.Status,
		&red.Note, &red.CreatedOn, &red.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return red, nil
}
