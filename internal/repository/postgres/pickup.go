package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

const pickupColumns = `id, account_id, collector_id, material, weight_kg, payout, status,
	COALESCE(address, ''), scheduled_on, created_on, updated_on`

type pickupRepository struct {
	db *sql.DB
}

func NewPickupRepository(db *sql.DB) repository.PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) Create(ctx context.Context, p *domain.Pickup) error {
	now := time.Now().UTC()
	p.CreatedOn = now
	p.UpdatedOn = now
	if p.Status == "" {
		p.Status = domain.PickupStatusRequested
	}
	query := `INSERT INTO pickups (account_id, collector_id, material, weight_kg, payout, status, address, scheduled_on, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.AccountID, p.CollectorID, p.Material, p.WeightKg, p.Payout, p.Status,
		p.Address, p.ScheduledOn, p.CreatedOn, p.UpdatedOn).Scan(&p.ID)
}

func (r *pickupRepository) GetByID(ctx context.Context, id int64) (*domain.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE id = $1`
	p, err := scanPickup(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return p, err
}

func (r *pickupRepository) Update(ctx context.Context, p *domain.Pickup) error {
	p.UpdatedOn = time.Now().UTC()
	query := `UPDATE pickups SET collector_id=$1, material=$2, weight_kg=$3, status=$4,
	            address=$5, scheduled_on=$6, updated_on=$7
	          WHERE id=$8 AND status <> 'COMPLETED'`
	res, err := r.db.ExecContext(ctx, query,
		p.CollectorID, p.Material, p.WeightKg, p.Status, p.Address, p.ScheduledOn, p.UpdatedOn, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pickupRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE account_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, accountID)
}

func (r *pickupRepository) ListByCollector(ctx context.Context, collectorID string) ([]domain.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE collector_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, collectorID)
}

func (r *pickupRepository) ListAll(ctx context.Context) ([]domain.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups ORDER BY created_on DESC`
	return r.list(ctx, query)
}

func (r *pickupRepository) list(ctx context.Context, query string, args ...any) ([]domain.Pickup, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pickups []domain.Pickup
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, err
		}
		pickups = append(pickups, *p)
	}
	return pickups, rows.Err()
}

func scanPickup(row rowScanner) (*domain.Pickup, error) {
	p := &domain.Pickup{}
	var collectorID sql.NullString
	var scheduledOn sql.NullTime
	err := row.Scan(&p.ID, &p.AccountID, &collectorID, &p.Material, &p.WeightKg, &p.Payout,
		&p.Status, &p.Address, &scheduledOn, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if collectorID.Valid {
		p.CollectorID = &collectorID.String
	}
	if scheduledOn.Valid {
		t := scheduledOn.Time
		p.ScheduledOn = &t
	}
	return p, nil
}
