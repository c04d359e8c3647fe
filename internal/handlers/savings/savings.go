package savings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/dto"
	savingsservice "github.com/IanWachcode/growvest/internal/service/savingsservice"
	"github.com/IanWachcode/growvest/pkg/auth"
	"github.com/IanWachcode/growvest/pkg/utils"
)

type Service interface {
	GetAccount(ctx context.Context, userID int) (*domain.SavingsAccount, error)
	Deposit(ctx context.Context, userID int, amount decimal.Decimal, description string) (*domain.SavingsAccount, error)
	Withdraw(ctx context.Context, userID int, amount decimal.Decimal, description string) (*domain.SavingsAccount, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.SavingsTransaction, error)
}

type SavingsHandler struct {
	savingsService Service
}

func New(savingsService Service) *SavingsHandler {
	return &SavingsHandler{
		savingsService: savingsService,
	}
}

func accountToDTO(account *domain.SavingsAccount) dto.SavingsResponseDTO {
	return dto.SavingsResponseDTO{
		Balance:        account.Balance,
		AnnualRate:     account.AnnualRate,
		LastInterestAt: account.LastInterestAt,
	}
}

func respondWithSavingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, savingsservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, savingsservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// GetAccount godoc
//
//	@Summary		Get savings account
//	@Description	Get the authenticated user's savings account, creating it on first access. Due interest is credited before the read.
//	@Tags			Savings
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SavingsResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/savings [get]
func (h *SavingsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	account, err := h.savingsService.GetAccount(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch savings account")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, accountToDTO(account))
}

// Deposit godoc
//
//	@Summary		Deposit into savings
//	@Description	Credit the savings balance and append a deposit transaction.
//	@Tags			Savings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SavingsAmountRequestDTO	true	"Deposit payload"
//	@Success		200		{object}	dto.SavingsResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/savings/deposit [post]
func (h *SavingsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.SavingsAmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.savingsService.Deposit(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		respondWithSavingsError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, accountToDTO(account))
}

// Withdraw godoc
//
//	@Summary		Withdraw from savings
//	@Description	Debit the savings balance and append a withdrawal transaction. The balance never goes negative.
//	@Tags			Savings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SavingsAmountRequestDTO	true	"Withdrawal payload"
//	@Success		200		{object}	dto.SavingsResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/savings/withdraw [post]
func (h *SavingsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.SavingsAmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.savingsService.Withdraw(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		respondWithSavingsError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, accountToDTO(account))
}

// GetTransactions godoc
//
//	@Summary		Get savings transaction history
//	@Description	Get the savings transaction log for the authenticated user, newest first. Due interest is credited before the read.
//	@Tags			Savings
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.SavingsTransactionResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/savings/transactions [get]
func (h *SavingsHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	transactions, err := h.savingsService.GetTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch savings transactions")
		return
	}

	response := make([]dto.SavingsTransactionResponseDTO, len(transactions))
	for i, trx := range transactions {
		response[i] = dto.SavingsTransactionResponseDTO{
			Kind:        trx.Kind,
			Amount:      trx.Amount,
			Description: trx.Description,
			CreatedAt:   trx.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
