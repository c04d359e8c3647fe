package loanservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/IanWachcode/growvest/internal/config"
	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/pg"
	"github.com/IanWachcode/growvest/pkg/money"
)

type LoanRepo interface {
	Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id int) (*domain.Loan, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Loan, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	CreatePayment(ctx context.Context, payment *domain.LoanPayment) (*domain.LoanPayment, error)
	FindPaymentsByLoanID(ctx context.Context, loanID int) ([]domain.LoanPayment, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

const (
	// StatusPending awaiting a decision;
	StatusPending string = "pending"
	// StatusApproved approved, not yet disbursed;
	StatusApproved string = "approved"
	// StatusRejected declined, terminal;
	StatusRejected string = "rejected"
	// StatusActive disbursed and being repaid;
	StatusActive string = "active"
	// StatusCompleted fully repaid, terminal;
	StatusCompleted string = "completed"
)

const (
	MinDurationMonths = 1
	MaxDurationMonths = 24
)

var (
	ErrInvalidTerms  = errors.New("invalid loan terms")
	ErrInvalidAmount = errors.New("invalid payment amount")
	ErrUnauthorized  = errors.New("not authorized")
	ErrLoanNotFound  = errors.New("loan not found")
	ErrLoanClosed    = errors.New("loan is closed")
)

// Terms are fully derived from principal, rate and duration; recomputing with
// the same inputs yields the same outputs.
type Terms struct {
	TotalAmount       decimal.Decimal `json:"total_amount"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	InitialBalance    decimal.Decimal `json:"initial_balance"`
}

// ComputeTerms derives the repayable total, the per-month installment and the
// opening balance. Interest is simple, not compounding:
// total = principal + principal * rate/100 * months/12. The installment is
// rounded to a whole unit, half away from zero.
func ComputeTerms(principal, annualRatePercent decimal.Decimal, durationMonths int, minPrincipal decimal.Decimal) (Terms, error) {
	if principal.LessThan(minPrincipal) {
		return Terms{}, ErrInvalidTerms
	}
	if durationMonths < MinDurationMonths || durationMonths > MaxDurationMonths {
		return Terms{}, ErrInvalidTerms
	}
	if annualRatePercent.IsNegative() {
		return Terms{}, ErrInvalidTerms
	}

	interest := principal.Mul(money.AnnualFraction(annualRatePercent)).Mul(money.TermYears(durationMonths))
	total := principal.Add(interest)

	return Terms{
		TotalAmount:       total,
		InstallmentAmount: money.RoundToUnit(total.Div(decimal.NewFromInt(int64(durationMonths)))),
		InitialBalance:    total,
	}, nil
}

func terminal(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}

type Service struct {
	repo         LoanRepo
	txManager    pg.TXManager
	cache        Cache
	minPrincipal decimal.Decimal
	defaultRate  decimal.Decimal
	now          func() time.Time
}

func New(cfg *config.Config, repo LoanRepo, txManager pg.TXManager, cache Cache) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		cache:        cache,
		minPrincipal: decimal.NewFromFloat(cfg.MinLoanPrincipal),
		defaultRate:  decimal.NewFromFloat(cfg.LoanAnnualRate),
		now:          time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID int, principal decimal.Decimal, purpose string, durationMonths int) (*domain.Loan, error) {
	if strings.TrimSpace(purpose) == "" {
		return nil, ErrInvalidTerms
	}

	terms, err := ComputeTerms(principal, s.defaultRate, durationMonths, s.minPrincipal)
	if err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		UserID:            userID,
		Principal:         principal,
		Purpose:           purpose,
		DurationMonths:    durationMonths,
		AnnualRate:        s.defaultRate,
		Status:            StatusPending,
		TotalAmount:       terms.TotalAmount,
		InstallmentAmount: terms.InstallmentAmount,
		RemainingBalance:  terms.InitialBalance,
		CreatedAt:         s.now(),
	}

	created, err := s.repo.Create(ctx, loan)
	if err != nil {
		zap.L().Error("can't save loan", zap.Error(err))
		return nil, err
	}

	zap.L().Info("loan created", zap.Int("loanID", created.ID), zap.Int("userID", userID))
	return created, nil
}

func (s *Service) GetLoans(ctx context.Context, userID int) ([]domain.Loan, error) {
	loans, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get loans", zap.Error(err))
		return nil, err
	}
	return loans, nil
}

func (s *Service) GetLoan(ctx context.Context, userID, loanID int) (*domain.Loan, []domain.LoanPayment, error) {
	loan, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		zap.L().Error("failed to get loan", zap.Error(err))
		return nil, nil, err
	}
	if loan == nil {
		return nil, nil, ErrLoanNotFound
	}
	if loan.UserID != userID {
		return nil, nil, ErrUnauthorized
	}

	payments, err := s.repo.FindPaymentsByLoanID(ctx, loanID)
	if err != nil {
		zap.L().Error("failed to get loan payments", zap.Error(err))
		return nil, nil, err
	}
	return loan, payments, nil
}

// Pay applies a repayment to the loan inside a row-locking transaction.
// Overpayment is accepted in full and the remaining balance is clamped at
// zero; once the balance reaches zero the loan completes.
func (s *Service) Pay(ctx context.Context, userID, loanID int, amount decimal.Decimal) (*domain.Loan, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var loan *domain.Loan
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		l, err := s.repo.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if l == nil {
			return ErrLoanNotFound
		}
		if l.UserID != userID {
			return ErrUnauthorized
		}
		if terminal(l.Status) {
			return ErrLoanClosed
		}

		payment := &domain.LoanPayment{
			LoanID: l.ID,
			Amount: amount,
			PaidAt: s.now(),
		}
		if _, err := s.repo.CreatePayment(ctx, payment); err != nil {
			return err
		}

		l.RemainingBalance = l.RemainingBalance.Sub(amount)
		if !l.RemainingBalance.IsPositive() {
			l.RemainingBalance = decimal.Zero
			l.Status = StatusCompleted
		}
		if err := s.repo.Update(ctx, l); err != nil {
			return err
		}

		loan = l
		return nil
	})
	if err != nil {
		zap.L().Error("failed to apply loan payment", zap.Int("loanID", loanID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("loan payment applied",
		zap.Int("loanID", loan.ID),
		zap.String("amount", amount.String()),
		zap.String("remaining", loan.RemainingBalance.String()),
	)
	return loan, nil
}

// Approve moves a pending loan to approved. The decision itself comes from
// outside the ledger; only the transition is enforced here.
func (s *Service) Approve(ctx context.Context, loanID int) (*domain.Loan, error) {
	return s.decide(ctx, loanID, StatusApproved)
}

// Reject moves a pending loan to rejected, a terminal status.
func (s *Service) Reject(ctx context.Context, loanID int) (*domain.Loan, error) {
	return s.decide(ctx, loanID, StatusRejected)
}

func (s *Service) decide(ctx context.Context, loanID int, status string) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		l, err := s.repo.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if l == nil {
			return ErrLoanNotFound
		}
		if l.Status != StatusPending {
			return ErrLoanClosed
		}

		l.Status = status
		if status == StatusApproved {
			now := s.now()
			l.ApprovedAt = &now
		}
		if err := s.repo.Update(ctx, l); err != nil {
			return err
		}

		loan = l
		return nil
	})
	if err != nil {
		zap.L().Error("failed to decide loan", zap.Int("loanID", loanID), zap.String("status", status), zap.Error(err))
		return nil, err
	}
	return loan, nil
}

// PreviewTerms computes terms without persisting anything. Results are cached
// by input; cache failures only cost a recomputation.
func (s *Service) PreviewTerms(ctx context.Context, principal decimal.Decimal, durationMonths int) (Terms, error) {
	key := fmt.Sprintf("loan:terms:%s:%s:%d", principal.String(), s.defaultRate.String(), durationMonths)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var terms Terms
		if err := json.Unmarshal([]byte(cached), &terms); err == nil {
			return terms, nil
		}
		zap.L().Warn("failed to decode cached terms", zap.String("key", key))
	}

	terms, err := ComputeTerms(principal, s.defaultRate, durationMonths, s.minPrincipal)
	if err != nil {
		return Terms{}, err
	}

	encoded, err := json.Marshal(terms)
	if err == nil {
		if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
			zap.L().Warn("failed to cache terms", zap.String("key", key), zap.Error(err))
		}
	}

	return terms, nil
}
