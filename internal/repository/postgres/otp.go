package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
)

type otpRepository struct {
	db *sql.DB
}

func NewOTPRepository(db *sql.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Upsert(ctx context.Context, otp *domain.OTP) error {
	otp.CreatedOn = time.Now().UTC()
	query := `INSERT INTO otps (email, purpose, code, expires_on, created_on)
	          VALUES (LOWER($1), $2, $3, $4, $5)
	          ON CONFLICT (email, purpose)
	          DO UPDATE SET code = EXCLUDED.code, expires_on = EXCLUDED.expires_on, created_on = EXCLUDED.created_on`
	_, err := r.db.ExecContext(ctx, query, otp.Email, otp.Purpose, otp.Code, otp.ExpiresOn, otp.CreatedOn)
	return err
}

func (r *otpRepository) Get(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTP, error) {
	otp := &domain.OTP{}
	query := `SELECT email, purpose, code, expires_on, created_on FROM otps
	          WHERE email = LOWER($1) AND purpose = $2`
	err := r.db.QueryRowContext(ctx, query, email, purpose).
		Scan(&otp.Email, &otp.Purpose, &otp.Code, &otp.ExpiresOn, &otp.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return otp, nil
}

func (r *otpRepository) Delete(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM otps WHERE email = LOWER($1) AND purpose = $2`, email, purpose)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *otpRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE expires_on < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
