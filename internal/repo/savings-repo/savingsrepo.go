package savingsrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// FindByUserIDForUpdate locks the account row for the rest of the transaction
// so concurrent deposits, withdrawals and accruals serialize per user.
func (r *Repository) FindByUserIDForUpdate(ctx context.Context, userID int) (*domain.SavingsAccount, error) {
	query := `
        SELECT *
        FROM savings_accounts
        WHERE user_id = $1
        FOR UPDATE
    `
	var account domain.SavingsAccount
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&account.ID, &account.UserID, &account.Balance, &account.AnnualRate,
		&account.CreatedAt, &account.LastInterestAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find savings account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// Create inserts the account, or returns the existing row when another
// transaction created it first. user_id is unique; the conflicting insert
// waits for the winning transaction to commit, takes its row lock and returns
// the committed state, so the caller never proceeds from the stale zero-value
// struct it passed in.
func (r *Repository) Create(ctx context.Context, account *domain.SavingsAccount) (*domain.SavingsAccount, error) {
	query := `
        INSERT INTO savings_accounts (user_id, balance, annual_rate, created_at, last_interest_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING id, balance, annual_rate, created_at, last_interest_at
    `
	err := r.db.QueryRow(ctx, query,
		account.UserID, account.Balance, account.AnnualRate, account.CreatedAt, account.LastInterestAt,
	).Scan(&account.ID, &account.Balance, &account.AnnualRate, &account.CreatedAt, &account.LastInterestAt)
	if err != nil {
		zap.L().Error("can't save savings account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) Update(ctx context.Context, account *domain.SavingsAccount) error {
	query := `
        UPDATE savings_accounts
        SET balance = $1, last_interest_at = $2
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, account.Balance, account.LastInterestAt, account.ID)
	if err != nil {
		zap.L().Error("failed to update savings account", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CreateTransaction(ctx context.Context, trx *domain.SavingsTransaction) (*domain.SavingsTransaction, error) {
	query := `
        INSERT INTO savings_transactions (account_id, kind, amount, description, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		trx.AccountID, trx.Kind, trx.Amount, trx.Description, trx.CreatedAt,
	).Scan(&trx.ID)
	if err != nil {
		zap.L().Error("can't save savings transaction", zap.Error(err))
		return nil, err
	}
	return trx, nil
}

func (r *Repository) FindTransactionsByAccountID(ctx context.Context, accountID int) ([]domain.SavingsTransaction, error) {
	query := `
        SELECT *
        FROM savings_transactions
        WHERE account_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get savings transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.SavingsTransaction
	for rows.Next() {
		var trx domain.SavingsTransaction
		err := rows.Scan(&trx.ID, &trx.AccountID, &trx.Kind, &trx.Amount, &trx.Description, &trx.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan savings transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, trx)
	}
	return transactions, nil
}

// FindDueForAccrual returns accounts whose last accrual is at or before the
// cutoff, oldest first. The interest sweep feeds on it.
func (r *Repository) FindDueForAccrual(ctx context.Context, before time.Time, limit uint32) ([]domain.SavingsAccount, error) {
	query := `
        SELECT *
        FROM savings_accounts
        WHERE last_interest_at <= $1
        ORDER BY last_interest_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, before, int(limit))
	if err != nil {
		zap.L().Error("can't get savings accounts for accrual", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.SavingsAccount
	for rows.Next() {
		var account domain.SavingsAccount
		err := rows.Scan(
			&account.ID, &account.UserID, &account.Balance, &account.AnnualRate,
			&account.CreatedAt, &account.LastInterestAt,
		)
		if err != nil {
			zap.L().Error("can't scan savings account row for accrual", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
