package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
	"github.com/zoneboy/zilcycler/internal/repository/postgres"
)

func TestOTPRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOTPRepository(db)
	ctx := context.Background()

	t.Run("Replaces Live Code For Same Purpose", func(t *testing.T) {
		otp := &domain.OTP{
			Email:     "ada@example.com",
			Purpose:   domain.OTPPurposeSignup,
			Code:      "482913",
			ExpiresOn: time.Now().UTC().Add(15 * time.Minute),
		}

		mock.ExpectExec("INSERT INTO otps (.+) ON CONFLICT \\(email, purpose\\)").
			WithArgs(otp.Email, otp.Purpose, otp.Code, otp.ExpiresOn, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Upsert(ctx, otp)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOTPRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOTPRepository(db)
	ctx := context.Background()

	t.Run("Keyed By Email And Purpose", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery("SELECT (.+) FROM otps").
			WithArgs("ada@example.com", domain.OTPPurposeReset).
			WillReturnRows(sqlmock.NewRows([]string{"email", "purpose", "code", "expires_on", "created_on"}).
				AddRow("ada@example.com", domain.OTPPurposeReset, "713402", now.Add(10*time.Minute), now))

		otp, err := repo.Get(ctx, "ada@example.com", domain.OTPPurposeReset)
		assert.NoError(t, err)
		assert.Equal(t, "713402", otp.Code)
		assert.Equal(t, domain.OTPPurposeReset, otp.Purpose)
	})

	t.Run("Missing Code", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM otps").
			WithArgs("ada@example.com", domain.OTPPurposeSignup).
			WillReturnRows(sqlmock.NewRows([]string{"email"}))

		_, err := repo.Get(ctx, "ada@example.com", domain.OTPPurposeSignup)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestOTPRepository_PurgeExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOTPRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	mock.ExpectExec("DELETE FROM otps WHERE expires_on").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	purged, err := repo.PurgeExpired(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), purged)
}
