package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Loan struct {
	ID                int             `db:"id"`
	UserID            int             `db:"user_id"`
	Principal         decimal.Decimal `db:"principal"`
	Purpose           string          `db:"purpose"`
	DurationMonths    int             `db:"duration_months"`
	AnnualRate        decimal.Decimal `db:"annual_rate"`
	Status            string          `db:"status"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	InstallmentAmount decimal.Decimal `db:"installment_amount"`
	RemainingBalance  decimal.Decimal `db:"remaining_balance"`
	CreatedAt         time.Time       `db:"created_at"`
	ApprovedAt        *time.Time      `db:"approved_at"`
}

type LoanPayment struct {
	ID     int             `db:"id"`
	LoanID int             `db:"loan_id"`
	Amount decimal.Decimal `db:"amount"`
	PaidAt time.Time       `db:"paid_at"`
}

type SavingsAccount struct {
	ID             int             `db:"id"`
	UserID         int             `db:"user_id"`
	Balance        decimal.Decimal `db:"balance"`
	AnnualRate     decimal.Decimal `db:"annual_rate"`
	CreatedAt      time.Time       `db:"created_at"`
	LastInterestAt time.Time       `db:"last_interest_at"`
}

type SavingsTransaction struct {
	ID          int             `db:"id"`
	AccountID   int             `db:"account_id"`
	Kind        string          `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}
