package loans

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/dto"
	loanservice "github.com/IanWachcode/growvest/internal/service/loanservice"
	"github.com/IanWachcode/growvest/pkg/auth"
	"github.com/IanWachcode/growvest/pkg/utils"
)

func NewMock(t *testing.T) (*LoanHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func newAuthedRequest(method, target, body string, userID int) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
}

func withLoanID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testLoan() *domain.Loan {
	return &domain.Loan{
		ID:                1,
		UserID:            1,
		Principal:         decimal.NewFromInt(1200),
		Purpose:           "Working capital",
		DurationMonths:    12,
		AnnualRate:        decimal.NewFromInt(12),
		Status:            "pending",
		TotalAmount:       decimal.NewFromInt(1344),
		InstallmentAmount: decimal.NewFromInt(112),
		RemainingBalance:  decimal.NewFromInt(1344),
		CreatedAt:         time.Date(2024, 12, 9, 16, 0, 0, 0, time.UTC),
	}
}

func TestCreateLoanHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful creation",
			body: `{"principal":"1200","purpose":"Working capital","duration":12}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, decimal.NewFromInt(1200), "Working capital", 12).
					Return(testLoan(), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Invalid terms",
			body: `{"principal":"500","purpose":"Working capital","duration":12}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, decimal.NewFromInt(500), "Working capital", 12).
					Return(nil, loanservice.ErrInvalidTerms)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid loan terms",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Internal error",
			body: `{"principal":"1200","purpose":"Working capital","duration":12}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, decimal.NewFromInt(1200), "Working capital", 12).
					Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := newAuthedRequest("POST", "/api/loans", tt.body, 1)
			rr := httptest.NewRecorder()

			handler.CreateLoan(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp dto.LoanResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1, resp.ID)
				assert.Equal(t, "pending", resp.Status)
			}
		})
	}
}

func TestGetLoansHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Loans found",
			prepareMock: func() {
				service.EXPECT().GetLoans(gomock.Any(), 1).Return([]domain.Loan{*testLoan()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "No loans",
			prepareMock: func() {
				service.EXPECT().GetLoans(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name: "Internal error",
			prepareMock: func() {
				service.EXPECT().GetLoans(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := newAuthedRequest("GET", "/api/loans", "", 1)
			rr := httptest.NewRecorder()

			handler.GetLoans(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.LoanResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.expectedLen)
			}
		})
	}
}

func TestGetLoanHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		loanID       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Loan found with payments",
			loanID: "1",
			prepareMock: func() {
				service.EXPECT().GetLoan(gomock.Any(), 1, 1).Return(testLoan(), []domain.LoanPayment{
					{LoanID: 1, Amount: decimal.NewFromInt(112), PaidAt: time.Now()},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Loan not found",
			loanID: "99",
			prepareMock: func() {
				service.EXPECT().GetLoan(gomock.Any(), 1, 99).Return(nil, nil, loanservice.ErrLoanNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "Loan owned by another user",
			loanID: "2",
			prepareMock: func() {
				service.EXPECT().GetLoan(gomock.Any(), 1, 2).Return(nil, nil, loanservice.ErrUnauthorized)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Invalid loan id",
			loanID:       "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withLoanID(newAuthedRequest("GET", "/api/loans/"+tt.loanID, "", 1), tt.loanID)
			rr := httptest.NewRecorder()

			handler.GetLoan(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.LoanDetailsResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1, resp.ID)
				assert.Len(t, resp.Payments, 1)
			}
		})
	}
}

func TestPayHandler(t *testing.T) {
	handler, service := NewMock(t)

	paidLoan := testLoan()
	paidLoan.Status = "completed"
	paidLoan.RemainingBalance = decimal.Zero

	tests := []struct {
		name         string
		loanID       string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Full payment",
			loanID: "1",
			body:   `{"amount":"1344"}`,
			prepareMock: func() {
				service.EXPECT().Pay(gomock.Any(), 1, 1, decimal.NewFromInt(1344)).Return(paidLoan, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Invalid amount",
			loanID: "1",
			body:   `{"amount":"0"}`,
			prepareMock: func() {
				service.EXPECT().Pay(gomock.Any(), 1, 1, decimal.NewFromInt(0)).Return(nil, loanservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Loan is closed",
			loanID: "1",
			body:   `{"amount":"100"}`,
			prepareMock: func() {
				service.EXPECT().Pay(gomock.Any(), 1, 1, decimal.NewFromInt(100)).Return(nil, loanservice.ErrLoanClosed)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Invalid request body",
			loanID:       "1",
			body:         `{invalid json`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withLoanID(newAuthedRequest("POST", "/api/loans/"+tt.loanID+"/payment", tt.body, 1), tt.loanID)
			rr := httptest.NewRecorder()

			handler.Pay(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.LoanResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "completed", resp.Status)
				assert.True(t, resp.RemainingBalance.IsZero())
			}
		})
	}
}

func TestApproveHandler(t *testing.T) {
	handler, service := NewMock(t)

	approvedLoan := testLoan()
	approvedLoan.Status = "approved"

	tests := []struct {
		name         string
		loanID       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Pending loan approved",
			loanID: "1",
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), 1).Return(approvedLoan, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Loan is not pending",
			loanID: "1",
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), 1).Return(nil, loanservice.ErrLoanClosed)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:   "Loan not found",
			loanID: "99",
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), 99).Return(nil, loanservice.ErrLoanNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withLoanID(newAuthedRequest("POST", "/api/loans/"+tt.loanID+"/approve", "", 1), tt.loanID)
			rr := httptest.NewRecorder()

			handler.Approve(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestRejectHandler(t *testing.T) {
	handler, service := NewMock(t)

	rejectedLoan := testLoan()
	rejectedLoan.Status = "rejected"

	service.EXPECT().Reject(gomock.Any(), 1).Return(rejectedLoan, nil)

	req := withLoanID(newAuthedRequest("POST", "/api/loans/1/reject", "", 1), "1")
	rr := httptest.NewRecorder()

	handler.Reject(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.LoanResponseDTO
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
}

func TestPreviewTermsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Terms computed",
			body: `{"principal":"1200","duration":12}`,
			prepareMock: func() {
				service.EXPECT().PreviewTerms(gomock.Any(), decimal.NewFromInt(1200), 12).Return(loanservice.Terms{
					TotalAmount:       decimal.NewFromInt(1344),
					InstallmentAmount: decimal.NewFromInt(112),
					InitialBalance:    decimal.NewFromInt(1344),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid terms",
			body: `{"principal":"500","duration":12}`,
			prepareMock: func() {
				service.EXPECT().PreviewTerms(gomock.Any(), decimal.NewFromInt(500), 12).
					Return(loanservice.Terms{}, loanservice.ErrInvalidTerms)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			body:         `{invalid json`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := newAuthedRequest("POST", "/api/loans/preview", tt.body, 1)
			rr := httptest.NewRecorder()

			handler.PreviewTerms(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.TermsResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "1344", resp.TotalAmount.String())
				assert.Equal(t, "112", resp.InstallmentAmount.String())
			}
		})
	}
}
