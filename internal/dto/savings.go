package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingsResponseDTO struct {
	Balance        decimal.Decimal `json:"balance" example:"1004.17"`
	AnnualRate     decimal.Decimal `json:"annual_rate" example:"5"`
	LastInterestAt time.Time       `json:"last_interest_at" example:"2024-12-09T16:09:57+03:00"`
}

type SavingsAmountRequestDTO struct {
	Amount      decimal.Decimal `json:"amount" example:"500"`
	Description string          `json:"description" example:"Monthly savings"`
}

type SavingsTransactionResponseDTO struct {
	Kind        string          `json:"kind" example:"deposit"`
	Amount      decimal.Decimal `json:"amount" example:"500"`
	Description string          `json:"description" example:"Monthly savings"`
	CreatedAt   time.Time       `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
}
