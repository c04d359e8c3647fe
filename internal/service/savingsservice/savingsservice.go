package savingsservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/IanWachcode/growvest/internal/config"
	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/pg"
	"github.com/IanWachcode/growvest/pkg/money"
)

type SavingsRepo interface {
	FindByUserIDForUpdate(ctx context.Context, userID int) (*domain.SavingsAccount, error)
	Create(ctx context.Context, account *domain.SavingsAccount) (*domain.SavingsAccount, error)
	Update(ctx context.Context, account *domain.SavingsAccount) error
	CreateTransaction(ctx context.Context, trx *domain.SavingsTransaction) (*domain.SavingsTransaction, error)
	FindTransactionsByAccountID(ctx context.Context, accountID int) ([]domain.SavingsTransaction, error)
}

const (
	KindDeposit    string = "deposit"
	KindWithdrawal string = "withdrawal"
)

// AccrualMonth is the interest accrual period. A fixed 30-day month is the
// defined contract, not calendar months; swap this constant to change the
// policy.
const AccrualMonth = 30 * 24 * time.Hour

const (
	defaultDepositDescription    = "Deposit"
	defaultWithdrawalDescription = "Withdrawal"
	interestDescription          = "Interest earned"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type Service struct {
	repo        SavingsRepo
	txManager   pg.TXManager
	defaultRate decimal.Decimal
	now         func() time.Time
}

func New(cfg *config.Config, repo SavingsRepo, txManager pg.TXManager) *Service {
	return &Service{
		repo:        repo,
		txManager:   txManager,
		defaultRate: decimal.NewFromFloat(cfg.SavingsAnnualRate),
		now:         time.Now,
	}
}

// loadOrCreate is the upsert-on-first-access policy: every entry point goes
// through it, so a user's account exists before any operation proceeds. Must
// run inside a transaction.
func (s *Service) loadOrCreate(ctx context.Context, userID int) (*domain.SavingsAccount, error) {
	account, err := s.repo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	now := s.now()
	account, err = s.repo.Create(ctx, &domain.SavingsAccount{
		UserID:         userID,
		Balance:        decimal.Zero,
		AnnualRate:     s.defaultRate,
		CreatedAt:      now,
		LastInterestAt: now,
	})
	if err != nil {
		zap.L().Error("can't create savings account", zap.Error(err))
		return nil, err
	}

	zap.L().Info("savings account created", zap.Int("userID", userID))
	return account, nil
}

// accrue credits interest for every whole 30-day month elapsed since the last
// accrual: interest = balance * rate/100/12 * elapsedMonths. Within the same
// window it is a no-op, so repeated reads never duplicate interest.
func (s *Service) accrue(ctx context.Context, account *domain.SavingsAccount) error {
	now := s.now()
	elapsedMonths := int64(now.Sub(account.LastInterestAt) / AccrualMonth)
	if elapsedMonths <= 0 {
		return nil
	}

	interest := account.Balance.Mul(money.MonthlyRate(account.AnnualRate)).Mul(decimal.NewFromInt(elapsedMonths))
	account.Balance = account.Balance.Add(interest)
	account.LastInterestAt = now

	if _, err := s.repo.CreateTransaction(ctx, &domain.SavingsTransaction{
		AccountID:   account.ID,
		Kind:        KindDeposit,
		Amount:      interest,
		Description: interestDescription,
		CreatedAt:   now,
	}); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return err
	}

	zap.L().Info("interest accrued",
		zap.Int("accountID", account.ID),
		zap.Int64("months", elapsedMonths),
		zap.String("interest", interest.String()),
	)
	return nil
}

// GetAccount returns the caller's account, creating it on first access and
// materializing any due interest before the read.
func (s *Service) GetAccount(ctx context.Context, userID int) (*domain.SavingsAccount, error) {
	var account *domain.SavingsAccount
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.loadOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.accrue(ctx, acc); err != nil {
			return err
		}
		account = acc
		return nil
	})
	if err != nil {
		zap.L().Error("failed to get savings account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

// AccrueInterest materializes due interest without returning account state.
// The scheduler sweep uses it so idle accounts accrue too.
func (s *Service) AccrueInterest(ctx context.Context, userID int) error {
	_, err := s.GetAccount(ctx, userID)
	return err
}

func (s *Service) Deposit(ctx context.Context, userID int, amount decimal.Decimal, description string) (*domain.SavingsAccount, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = defaultDepositDescription
	}

	var account *domain.SavingsAccount
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.loadOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		acc.Balance = acc.Balance.Add(amount)
		if _, err := s.repo.CreateTransaction(ctx, &domain.SavingsTransaction{
			AccountID:   acc.ID,
			Kind:        KindDeposit,
			Amount:      amount,
			Description: description,
			CreatedAt:   s.now(),
		}); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, acc); err != nil {
			return err
		}

		account = acc
		return nil
	})
	if err != nil {
		zap.L().Error("failed to deposit", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

// Withdraw debits the account or fails with ErrInsufficientBalance leaving
// state untouched; the balance never goes negative.
func (s *Service) Withdraw(ctx context.Context, userID int, amount decimal.Decimal, description string) (*domain.SavingsAccount, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = defaultWithdrawalDescription
	}

	var account *domain.SavingsAccount
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.loadOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if acc.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		acc.Balance = acc.Balance.Sub(amount)
		if _, err := s.repo.CreateTransaction(ctx, &domain.SavingsTransaction{
			AccountID:   acc.ID,
			Kind:        KindWithdrawal,
			Amount:      amount,
			Description: description,
			CreatedAt:   s.now(),
		}); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, acc); err != nil {
			return err
		}

		account = acc
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return nil, err
		}
		zap.L().Error("failed to withdraw", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

// GetTransactions returns the append-only log, accruing due interest first so
// the log stays the single source of truth for the balance.
func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.SavingsTransaction, error) {
	var transactions []domain.SavingsTransaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.loadOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.accrue(ctx, acc); err != nil {
			return err
		}

		trxs, err := s.repo.FindTransactionsByAccountID(ctx, acc.ID)
		if err != nil {
			return err
		}
		transactions = trxs
		return nil
	})
	if err != nil {
		zap.L().Error("failed to get savings transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}
