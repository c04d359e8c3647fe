package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/IanWachcode/growvest/docs"
	"github.com/IanWachcode/growvest/internal/handlers/auth"
	"github.com/IanWachcode/growvest/internal/handlers/loans"
	"github.com/IanWachcode/growvest/internal/handlers/savings"
	"github.com/IanWachcode/growvest/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:    auth.NewMockService(ctrl),
		LoanService:    loans.NewMockService(ctrl),
		SavingsService: savings.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockLoanHandler := NewMockLoanHandler(ctrl)
	mockSavingsHandler := NewMockSavingsHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockLoanHandler.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).AnyTimes()
	mockLoanHandler.EXPECT().GetLoans(gomock.Any(), gomock.Any()).AnyTimes()
	mockLoanHandler.EXPECT().GetLoan(gomock.Any(), gomock.Any()).AnyTimes()
	mockLoanHandler.EXPECT().Pay(gomock.Any(), gomock.Any()).AnyTimes()
	mockLoanHandler.EXPECT().Approve(gomock.Any(), gomock.Any()).AnyTimes()
	mockLoanHandler.EXPECT().Reject(gomock.Any(), gomock.Any()).AnyTimes()
	mockLoanHandler.EXPECT().PreviewTerms(gomock.Any(), gomock.Any()).AnyTimes()
	mockSavingsHandler.EXPECT().GetAccount(gomock.Any(), gomock.Any()).AnyTimes()
	mockSavingsHandler.EXPECT().Deposit(gomock.Any(), gomock.Any()).AnyTimes()
	mockSavingsHandler.EXPECT().Withdraw(gomock.Any(), gomock.Any()).AnyTimes()
	mockSavingsHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		LoanHandler:    mockLoanHandler,
		SavingsHandler: mockSavingsHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"POST", "/api/loans", http.StatusUnauthorized},
		{"GET", "/api/loans", http.StatusUnauthorized},
		{"POST", "/api/loans/preview", http.StatusUnauthorized},
		{"GET", "/api/loans/1", http.StatusUnauthorized},
		{"POST", "/api/loans/1/payment", http.StatusUnauthorized},
		{"POST", "/api/loans/1/approve", http.StatusUnauthorized},
		{"POST", "/api/loans/1/reject", http.StatusUnauthorized},
		{"GET", "/api/savings", http.StatusUnauthorized},
		{"POST", "/api/savings/deposit", http.StatusUnauthorized},
		{"POST", "/api/savings/withdraw", http.StatusUnauthorized},
		{"GET", "/api/savings/transactions", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
