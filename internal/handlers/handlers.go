package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/IanWachcode/growvest/docs"
	authhandlers "github.com/IanWachcode/growvest/internal/handlers/auth"
	loanshandlers "github.com/IanWachcode/growvest/internal/handlers/loans"
	savingshandlers "github.com/IanWachcode/growvest/internal/handlers/savings"
	"github.com/IanWachcode/growvest/internal/service"
	"github.com/IanWachcode/growvest/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type LoanHandler interface {
	CreateLoan(w http.ResponseWriter, r *http.Request)
	GetLoans(w http.ResponseWriter, r *http.Request)
	GetLoan(w http.ResponseWriter, r *http.Request)
	Pay(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	PreviewTerms(w http.ResponseWriter, r *http.Request)
}

type SavingsHandler interface {
	GetAccount(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	LoanHandler    LoanHandler
	SavingsHandler SavingsHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		LoanHandler:    loanshandlers.New(s.LoanService),
		SavingsHandler: savingshandlers.New(s.SavingsService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Route("/api/loans", func(r chi.Router) {
			r.Post("/", h.LoanHandler.CreateLoan)
			r.Get("/", h.LoanHandler.GetLoans)
			r.Post("/preview", h.LoanHandler.PreviewTerms)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.LoanHandler.GetLoan)
				r.Post("/payment", h.LoanHandler.Pay)
				r.Post("/approve", h.LoanHandler.Approve)
				r.Post("/reject", h.LoanHandler.Reject)
			})
		})
		r.Route("/api/savings", func(r chi.Router) {
			r.Get("/", h.SavingsHandler.GetAccount)
			r.Post("/deposit", h.SavingsHandler.Deposit)
			r.Post("/withdraw", h.SavingsHandler.Withdraw)
			r.Get("/transactions", h.SavingsHandler.GetTransactions)
		})
	})

	return r
}
