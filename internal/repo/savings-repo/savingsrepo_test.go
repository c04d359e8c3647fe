package savingsrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/IanWachcode/growvest/internal/domain"
)

var accountColumns = []string{"id", "user_id", "balance", "annual_rate", "created_at", "last_interest_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByUserIDForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Account exists",
			mockSetup: func() {
				rows := pgxmock.NewRows(accountColumns).
					AddRow(1, 1, decimal.NewFromInt(1000), decimal.NewFromInt(5), timeNow, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_accounts WHERE user_id = $1 FOR UPDATE")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			found: true,
		},
		{
			name: "Account does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_accounts WHERE user_id = $1 FOR UPDATE")).
					WithArgs(1).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_accounts WHERE user_id = $1 FOR UPDATE")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserIDForUpdate(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.found {
				assert.NotNil(t, result)
				assert.Equal(t, "1000", result.Balance.String())
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestRepository_Create(t *testing.T) {
	timeNow := time.Now()
	earlier := timeNow.Add(-40 * 24 * time.Hour)

	tests := []struct {
		name            string
		mockSetup       func(mock pgxmock.PgxPoolIface, account *domain.SavingsAccount)
		expectErr       bool
		expectedBalance string
	}{
		{
			name: "Create account successfully",
			mockSetup: func(mock pgxmock.PgxPoolIface, account *domain.SavingsAccount) {
				rows := pgxmock.NewRows([]string{"id", "balance", "annual_rate", "created_at", "last_interest_at"}).
					AddRow(1, account.Balance, account.AnnualRate, timeNow, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO savings_accounts")).
					WithArgs(1, account.Balance, account.AnnualRate, timeNow, timeNow).
					WillReturnRows(rows)
			},
			expectedBalance: "0",
		},
		{
			// a concurrent transaction won the insert: the conflict path must
			// hand back its committed row, not the zero-value struct
			name: "Concurrent creation returns the committed row",
			mockSetup: func(mock pgxmock.PgxPoolIface, account *domain.SavingsAccount) {
				rows := pgxmock.NewRows([]string{"id", "balance", "annual_rate", "created_at", "last_interest_at"}).
					AddRow(1, decimal.NewFromInt(100), decimal.NewFromInt(5), earlier, earlier)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO savings_accounts")).
					WithArgs(1, account.Balance, account.AnnualRate, timeNow, timeNow).
					WillReturnRows(rows)
			},
			expectedBalance: "100",
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface, account *domain.SavingsAccount) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO savings_accounts")).
					WithArgs(1, account.Balance, account.AnnualRate, timeNow, timeNow).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			account := &domain.SavingsAccount{
				UserID:         1,
				Balance:        decimal.Zero,
				AnnualRate:     decimal.NewFromInt(5),
				CreatedAt:      timeNow,
				LastInterestAt: timeNow,
			}

			tt.mockSetup(mock, account)
			result, err := repo.Create(context.Background(), account)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, tt.expectedBalance, result.Balance.String())
			}
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()

	account := &domain.SavingsAccount{
		ID:             1,
		Balance:        decimal.NewFromInt(1500),
		LastInterestAt: timeNow,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Update account successfully",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE savings_accounts SET balance = $1, last_interest_at = $2 WHERE id = $3")).
					WithArgs(account.Balance, timeNow, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE savings_accounts SET balance = $1, last_interest_at = $2 WHERE id = $3")).
					WithArgs(account.Balance, timeNow, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Update(context.Background(), account)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_CreateTransaction(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()

	trx := &domain.SavingsTransaction{
		AccountID:   1,
		Kind:        "deposit",
		Amount:      decimal.NewFromInt(500),
		Description: "Deposit",
		CreatedAt:   timeNow,
	}

	rows := pgxmock.NewRows([]string{"id"}).AddRow(3)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO savings_transactions (account_id, kind, amount, description, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id")).
		WithArgs(1, "deposit", trx.Amount, "Deposit", timeNow).
		WillReturnRows(rows)

	result, err := repo.CreateTransaction(context.Background(), trx)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.ID)
}

func TestRepository_FindTransactionsByAccountID(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Transactions found",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "kind", "amount", "description", "created_at"}).
					AddRow(2, 1, "withdrawal", decimal.NewFromInt(200), "Withdrawal", timeNow).
					AddRow(1, 1, "deposit", decimal.NewFromInt(1000), "Deposit", timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_transactions WHERE account_id = $1 ORDER BY created_at DESC")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "No transactions",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_transactions WHERE account_id = $1 ORDER BY created_at DESC")).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"id", "account_id", "kind", "amount", "description", "created_at"}))
			},
			count: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_transactions WHERE account_id = $1 ORDER BY created_at DESC")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindTransactionsByAccountID(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.count)
			}
		})
	}
}

func TestRepository_FindDueForAccrual(t *testing.T) {
	repo, mock := NewMock(t)
	timeNow := time.Now()
	cutoff := timeNow.Add(-30 * 24 * time.Hour)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Due accounts found",
			mockSetup: func() {
				rows := pgxmock.NewRows(accountColumns).
					AddRow(1, 1, decimal.NewFromInt(1000), decimal.NewFromInt(5), timeNow, cutoff).
					AddRow(2, 2, decimal.NewFromInt(500), decimal.NewFromInt(5), timeNow, cutoff)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_accounts WHERE last_interest_at <= $1 ORDER BY last_interest_at ASC LIMIT $2")).
					WithArgs(cutoff, 10).
					WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "No due accounts",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_accounts WHERE last_interest_at <= $1 ORDER BY last_interest_at ASC LIMIT $2")).
					WithArgs(cutoff, 10).
					WillReturnRows(pgxmock.NewRows(accountColumns))
			},
			count: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM savings_accounts WHERE last_interest_at <= $1 ORDER BY last_interest_at ASC LIMIT $2")).
					WithArgs(cutoff, 10).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindDueForAccrual(context.Background(), cutoff, 10)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.count)
			}
		})
	}
}
