package loans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/dto"
	loanservice "github.com/IanWachcode/growvest/internal/service/loanservice"
	"github.com/IanWachcode/growvest/pkg/auth"
	"github.com/IanWachcode/growvest/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, userID int, principal decimal.Decimal, purpose string, durationMonths int) (*domain.Loan, error)
	GetLoans(ctx context.Context, userID int) ([]domain.Loan, error)
	GetLoan(ctx context.Context, userID, loanID int) (*domain.Loan, []domain.LoanPayment, error)
	Pay(ctx context.Context, userID, loanID int, amount decimal.Decimal) (*domain.Loan, error)
	Approve(ctx context.Context, loanID int) (*domain.Loan, error)
	Reject(ctx context.Context, loanID int) (*domain.Loan, error)
	PreviewTerms(ctx context.Context, principal decimal.Decimal, durationMonths int) (loanservice.Terms, error)
}

type LoanHandler struct {
	loanService Service
}

func New(loanService Service) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

func loanToDTO(loan *domain.Loan) dto.LoanResponseDTO {
	return dto.LoanResponseDTO{
		ID:                loan.ID,
		Principal:         loan.Principal,
		Purpose:           loan.Purpose,
		Duration:          loan.DurationMonths,
		AnnualRate:        loan.AnnualRate,
		Status:            loan.Status,
		TotalAmount:       loan.TotalAmount,
		InstallmentAmount: loan.InstallmentAmount,
		RemainingBalance:  loan.RemainingBalance,
		CreatedAt:         loan.CreatedAt,
		ApprovedAt:        loan.ApprovedAt,
	}
}

func loanIDFromURL(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func respondWithLoanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loanservice.ErrInvalidTerms), errors.Is(err, loanservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, loanservice.ErrUnauthorized):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, loanservice.ErrLoanNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, loanservice.ErrLoanClosed):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// CreateLoan godoc
//
//	@Summary		Apply for a loan
//	@Description	Create a loan application with principal, purpose and duration. Terms are computed at the configured rate and the loan starts pending.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateLoanRequestDTO	true	"Loan application payload"
//	@Success		201		{object}	dto.LoanResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid loan terms"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/loans [post]
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateLoanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	loan, err := h.loanService.Create(r.Context(), userID, req.Principal, req.Purpose, req.Duration)
	if err != nil {
		respondWithLoanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, loanToDTO(loan))
}

// GetLoans godoc
//
//	@Summary		List own loans
//	@Description	Get all loans of the authenticated user, newest first.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LoanResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/loans [get]
func (h *LoanHandler) GetLoans(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	loans, err := h.loanService.GetLoans(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch loans")
		return
	}

	response := make([]dto.LoanResponseDTO, len(loans))
	for i := range loans {
		response[i] = loanToDTO(&loans[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetLoan godoc
//
//	@Summary		Get a loan with its payments
//	@Description	Get a single loan of the authenticated user including the payment history.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Loan ID"
//	@Success		200	{object}	dto.LoanDetailsResponseDTO
//	@Failure		401	{object}	utils.Response	"Loan belongs to another user"
//	@Failure		404	{object}	utils.Response	"Loan not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/loans/{id} [get]
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	loanID, err := loanIDFromURL(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid loan id")
		return
	}

	loan, payments, err := h.loanService.GetLoan(r.Context(), userID, loanID)
	if err != nil {
		respondWithLoanError(w, err)
		return
	}

	response := dto.LoanDetailsResponseDTO{
		LoanResponseDTO: loanToDTO(loan),
		Payments:        make([]dto.LoanPaymentResponseDTO, len(payments)),
	}
	for i, p := range payments {
		response.Payments[i] = dto.LoanPaymentResponseDTO{
			Amount: p.Amount,
			PaidAt: p.PaidAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Pay godoc
//
//	@Summary		Make a loan payment
//	@Description	Apply a repayment to the loan. Overpayment is accepted and the remaining balance clamps at zero; a fully repaid loan completes.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Loan ID"
//	@Param			request	body		dto.LoanPaymentRequestDTO	true	"Payment payload"
//	@Success		200		{object}	dto.LoanResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid payment amount"
//	@Failure		401		{object}	utils.Response	"Loan belongs to another user"
//	@Failure		404		{object}	utils.Response	"Loan not found"
//	@Failure		409		{object}	utils.Response	"Loan is closed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/loans/{id}/payment [post]
func (h *LoanHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	loanID, err := loanIDFromURL(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid loan id")
		return
	}

	var req dto.LoanPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	loan, err := h.loanService.Pay(r.Context(), userID, loanID, req.Amount)
	if err != nil {
		respondWithLoanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loanToDTO(loan))
}

// Approve godoc
//
//	@Summary		Approve a pending loan
//	@Description	Move a pending loan to approved and stamp the approval time. The decision is accepted from any authenticated user; there is no reviewer role, so deployments needing one must gate this route upstream.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Loan ID"
//	@Success		200	{object}	dto.LoanResponseDTO
//	@Failure		404	{object}	utils.Response	"Loan not found"
//	@Failure		409	{object}	utils.Response	"Loan is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/loans/{id}/approve [post]
func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	loanID, err := loanIDFromURL(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid loan id")
		return
	}

	loan, err := h.loanService.Approve(r.Context(), loanID)
	if err != nil {
		respondWithLoanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loanToDTO(loan))
}

// Reject godoc
//
//	@Summary		Reject a pending loan
//	@Description	Move a pending loan to rejected. Rejected loans are terminal. The decision is accepted from any authenticated user; there is no reviewer role, so deployments needing one must gate this route upstream.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Loan ID"
//	@Success		200	{object}	dto.LoanResponseDTO
//	@Failure		404	{object}	utils.Response	"Loan not found"
//	@Failure		409	{object}	utils.Response	"Loan is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/loans/{id}/reject [post]
func (h *LoanHandler) Reject(w http.ResponseWriter, r *http.Request) {
	loanID, err := loanIDFromURL(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid loan id")
		return
	}

	loan, err := h.loanService.Reject(r.Context(), loanID)
	if err != nil {
		respondWithLoanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loanToDTO(loan))
}

// PreviewTerms godoc
//
//	@Summary		Preview loan terms
//	@Description	Compute the repayable total and monthly installment for a principal and duration without creating a loan.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PreviewTermsRequestDTO	true	"Terms preview payload"
//	@Success		200		{object}	dto.TermsResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid loan terms"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/loans/preview [post]
func (h *LoanHandler) PreviewTerms(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewTermsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	terms, err := h.loanService.PreviewTerms(r.Context(), req.Principal, req.Duration)
	if err != nil {
		respondWithLoanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TermsResponseDTO{
		TotalAmount:       terms.TotalAmount,
		InstallmentAmount: terms.InstallmentAmount,
		InitialBalance:    terms.InitialBalance,
	})
}
