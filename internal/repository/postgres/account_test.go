package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/repository"
	"github.com/zoneboy/zilcycler/internal/repository/postgres"
)

func accountRows(id, email string, role domain.Role, active bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "email", "name", "phone_number", "role", "avatar_url",
		"password_hash", "bank_name", "bank_account_number", "bank_account_holder",
		"gender", "address", "industry", "esg_score", "balance", "recycled_weight_kg",
		"active", "created_on", "updated_on",
	}).AddRow(id, email, "Ada Bello", "", role, "", "$2a$10$hash", "", "", "", "", "", "",
		int32(0), int64(120), 3.5, active, now, now)
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAccountRepository(db)
	ctx := context.Background()

	t.Run("Success Generates ID", func(t *testing.T) {
		a := &domain.Account{Email: "ada@example.com", Name: "Ada Bello", Role: domain.RoleHousehold, Active: true}

		mock.ExpectExec("INSERT INTO accounts").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, a)
		assert.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.CreatedOn)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		a := &domain.Account{Email: "ada@example.com", Name: "Ada Bello", Role: domain.RoleHousehold}

		mock.ExpectExec("INSERT INTO accounts").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, a)
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAccountRepository(db)
	ctx := context.Background()

	t.Run("Case Insensitive Match", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE LOWER\\(email\\)").
			WithArgs("Ada@Example.COM").
			WillReturnRows(accountRows("acct-1", "ada@example.com", domain.RoleHousehold, true))

		a, err := repo.GetByEmail(ctx, "Ada@Example.COM")
		assert.NoError(t, err)
		assert.Equal(t, "acct-1", a.ID)
		assert.Equal(t, "ada@example.com", a.Email)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE LOWER\\(email\\)").
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestAccountRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAccountRepository(db)
	ctx := context.Background()

	t.Run("Unknown ID", func(t *testing.T) {
		a := &domain.Account{ID: "ghost", Name: "Nobody", Role: domain.RoleHousehold}

		mock.ExpectExec("UPDATE accounts SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, a)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
