package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_ClaimJobPayment(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "unpaid job is claimed", affected: 1},
		{name: "already paid job loses the race", affected: 0, wantErr: ErrJobAlreadyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewLedgerRepository(db)

			mock.ExpectExec(`UPDATE "jobs" SET .*"paid"=.* WHERE id = \$\d+ AND paid IS NOT TRUE`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.ClaimJobPayment(context.Background(), 7, time.Now())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func expectLock(mock sqlmock.Sqlmock, ids ...int) {
	rows := sqlmock.NewRows([]string{"id", "balance", "type"})
	for _, id := range ids {
		rows.AddRow(id, "100.00", "client")
	}
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id IN \(\$1,\$2\) ORDER BY id FOR UPDATE`).
		WillReturnRows(rows)
}

func TestLedgerRepository_Transfer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	expectLock(mock, 1, 6)
	mock.ExpectExec(`UPDATE "profiles" SET "balance"=balance - \$1.* WHERE id = \$\d+ AND balance >= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "profiles" SET "balance"=balance \+ \$1.* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "transfers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	transfer := &models.Transfer{
		Kind:          models.TransferKindJobPayment,
		SourceID:      6,
		DestinationID: 1,
		Amount:        decimal.RequireFromString("50"),
	}
	require.NoError(t, repo.Transfer(context.Background(), transfer))

	assert.NotEmpty(t, transfer.Reference)
	assert.Equal(t, uint(1), transfer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_Transfer_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		src     uint
		dst     uint
		wantErr error
	}{
		{
			name:    "same account",
			setup:   func(sqlmock.Sqlmock) {},
			src:     1,
			dst:     1,
			wantErr: ErrSameAccount,
		},
		{
			name: "missing profile",
			setup: func(mock sqlmock.Sqlmock) {
				expectLock(mock, 1)
			},
			src:     1,
			dst:     99,
			wantErr: ErrProfileNotFound,
		},
		{
			name: "conditional debit matches nothing",
			setup: func(mock sqlmock.Sqlmock) {
				expectLock(mock, 1, 2)
				mock.ExpectExec(`UPDATE "profiles"`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			src:     1,
			dst:     2,
			wantErr: ErrInsufficientFunds,
		},
		{
			name: "check constraint rejects debit",
			setup: func(mock sqlmock.Sqlmock) {
				expectLock(mock, 1, 2)
				mock.ExpectExec(`UPDATE "profiles"`).WillReturnError(&pgconn.PgError{Code: pgCheckViolation})
			},
			src:     1,
			dst:     2,
			wantErr: ErrInsufficientFunds,
		},
		{
			name: "credit target vanished",
			setup: func(mock sqlmock.Sqlmock) {
				expectLock(mock, 1, 2)
				mock.ExpectExec(`UPDATE "profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE "profiles"`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			src:     2,
			dst:     1,
			wantErr: ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewLedgerRepository(db)
			tt.setup(mock)

			err := repo.Transfer(context.Background(), &models.Transfer{
				SourceID:      tt.src,
				DestinationID: tt.dst,
				Amount:        decimal.NewFromInt(10),
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLedgerRepository_ExecuteInTransaction_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "jobs"`).WillReturnResult(sqlmock.NewResult(0, 1))
	expectLock(mock, 1, 5)
	mock.ExpectExec(`UPDATE "profiles"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ExecuteInTransaction(context.Background(), func(tx LedgerRepository) error {
		if err := tx.ClaimJobPayment(context.Background(), 1, time.Now()); err != nil {
			return err
		}
		return tx.Transfer(context.Background(), &models.Transfer{
			SourceID:      1,
			DestinationID: 5,
			Amount:        decimal.NewFromInt(200),
		})
	})

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ExecuteInTransaction_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "jobs"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ExecuteInTransaction(context.Background(), func(tx LedgerRepository) error {
		return tx.ClaimJobPayment(context.Background(), 1, time.Now())
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_FindUnpaidJob_AppliesScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	mock.ExpectQuery(`SELECT .* FROM "jobs" JOIN contracts ON contracts\.id = jobs\.contract_id WHERE jobs\.id = \$1 AND jobs\.paid IS NOT TRUE AND "contracts"\."contractor_id" = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	contractor := &models.Profile{ID: 6, Type: models.RoleContractor}
	_, err := repo.FindUnpaidJob(context.Background(), 3, scope.ByProfile(contractor))

	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_SumUnpaidJobs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(jobs\.price\), 0\) FROM "jobs" JOIN contracts .* WHERE jobs\.paid IS NOT TRUE AND "contracts"\."client_id" = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("402.00"))

	client := &models.Profile{ID: 2, Type: models.RoleClient}
	total, err := repo.SumUnpaidJobs(context.Background(), scope.ByProfile(client))

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("402")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_GetProfile_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetProfile(context.Background(), 1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}
