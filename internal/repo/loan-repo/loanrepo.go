package loanrepo

import (
	"context"

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

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var loan domain.Loan
	err := row.Scan(
		&loan.ID, &loan.UserID, &loan.Principal, &loan.Purpose, &loan.DurationMonths,
		&loan.AnnualRate, &loan.Status, &loan.TotalAmount, &loan.InstallmentAmount,
		&loan.RemainingBalance, &loan.CreatedAt, &loan.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *Repository) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	query := `
        INSERT INTO loans (user_id, principal, purpose, duration_months, annual_rate, status,
                           total_amount, installment_amount, remaining_balance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		loan.UserID, loan.Principal, loan.Purpose, loan.DurationMonths, loan.AnnualRate,
		loan.Status, loan.TotalAmount, loan.InstallmentAmount, loan.RemainingBalance, loan.CreatedAt,
	).Scan(&loan.ID)
	if err != nil {
		zap.L().Error("can't save loan", zap.Error(err))
		return nil, err
	}
	return loan, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Loan, error) {
	query := `
        SELECT *
        FROM loans
        WHERE id = $1
    `
	loan, err := scanLoan(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find loan", zap.Error(err))
		return nil, err
	}
	return loan, nil
}

// FindByIDForUpdate locks the row for the rest of the transaction so
// concurrent payments and decisions on the same loan serialize.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Loan, error) {
	query := `
        SELECT *
        FROM loans
        WHERE id = $1
        FOR UPDATE
    `
	loan, err := scanLoan(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock loan", zap.Error(err))
		return nil, err
	}
	return loan, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Loan, error) {
	query := `
        SELECT *
        FROM loans
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get loans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			zap.L().Error("can't scan loan row", zap.Error(err))
			return nil, err
		}
		loans = append(loans, *loan)
	}
	return loans, nil
}

func (r *Repository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
        UPDATE loans
        SET status = $1, remaining_balance = $2, approved_at = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query, loan.Status, loan.RemainingBalance, loan.ApprovedAt, loan.ID)
	if err != nil {
		zap.L().Error("failed to update loan", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CreatePayment(ctx context.Context, payment *domain.LoanPayment) (*domain.LoanPayment, error) {
	query := `
        INSERT INTO loan_payments (loan_id, amount, paid_at)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, payment.LoanID, payment.Amount, payment.PaidAt).Scan(&payment.ID)
	if err != nil {
		zap.L().Error("can't save loan payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) FindPaymentsByLoanID(ctx context.Context, loanID int) ([]domain.LoanPayment, error) {
	query := `
        SELECT *
        FROM loan_payments
        WHERE loan_id = $1
        ORDER BY paid_at ASC
    `
	rows, err := r.db.Query(ctx, query, loanID)
	if err != nil {
		zap.L().Error("can't get loan payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.LoanPayment
	for rows.Next() {
		var payment domain.LoanPayment
		err := rows.Scan(&payment.ID, &payment.LoanID, &payment.Amount, &payment.PaidAt)
		if err != nil {
			zap.L().Error("can't scan loan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}
