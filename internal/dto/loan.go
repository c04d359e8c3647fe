package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateLoanRequestDTO struct {
	Principal decimal.Decimal `json:"principal" example:"1200"`
	Purpose   string          `json:"purpose" example:"Working capital"`
	Duration  int             `json:"duration" example:"12"`
}

type LoanResponseDTO struct {
	ID                int             `json:"id" example:"1"`
	Principal         decimal.Decimal `json:"principal" example:"1200"`
	Purpose           string          `json:"purpose" example:"Working capital"`
	Duration          int             `json:"duration" example:"12"`
	AnnualRate        decimal.Decimal `json:"annual_rate" example:"12"`
	Status            string          `json:"status" example:"pending"`
	TotalAmount       decimal.Decimal `json:"total_amount" example:"1344"`
	InstallmentAmount decimal.Decimal `json:"installment_amount" example:"112"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance" example:"1344"`
	CreatedAt         time.Time       `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
	ApprovedAt        *time.Time      `json:"approved_at,omitempty"`
}

type LoanPaymentRequestDTO struct {
	Amount decimal.Decimal `json:"amount" example:"112"`
}

type LoanPaymentResponseDTO struct {
	Amount decimal.Decimal `json:"amount" example:"112"`
	PaidAt time.Time       `json:"paid_at" example:"2024-12-09T16:09:57+03:00"`
}

type LoanDetailsResponseDTO struct {
	LoanResponseDTO
	Payments []LoanPaymentResponseDTO `json:"payments"`
}

type PreviewTermsRequestDTO struct {
	Principal decimal.Decimal `json:"principal" example:"1200"`
	Duration  int             `json:"duration" example:"12"`
}

type TermsResponseDTO struct {
	TotalAmount       decimal.Decimal `json:"total_amount" example:"1344"`
	InstallmentAmount decimal.Decimal `json:"installment_amount" example:"112"`
	InitialBalance    decimal.Decimal `json:"initial_balance" example:"1344"`
}
