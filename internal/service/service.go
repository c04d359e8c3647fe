package service

import (
	"github.com/IanWachcode/growvest/internal/handlers/auth"
	"github.com/IanWachcode/growvest/internal/handlers/loans"
	"github.com/IanWachcode/growvest/internal/handlers/savings"

	pkgauth "github.com/IanWachcode/growvest/pkg/auth"

	"github.com/IanWachcode/growvest/internal/config"
	"github.com/IanWachcode/growvest/internal/pg"
	"github.com/IanWachcode/growvest/internal/repo"
	"github.com/IanWachcode/growvest/internal/scheduler"
	authservice "github.com/IanWachcode/growvest/internal/service/authservice"
	loanservice "github.com/IanWachcode/growvest/internal/service/loanservice"
	savingsservice "github.com/IanWachcode/growvest/internal/service/savingsservice"
)

type Services struct {
	AuthService    auth.Service
	LoanService    loans.Service
	SavingsService savings.Service
	Scheduler      scheduler.SavingsService
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, cache loanservice.Cache) *Services {
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	loanService := loanservice.New(cfg, repo.LoanRepo, txManager, cache)
	savingsService := savingsservice.New(cfg, repo.SavingsRepo, txManager)

	return &Services{
		AuthService:    authService,
		LoanService:    loanService,
		SavingsService: savingsService,
		Scheduler:      savingsService,
	}
}
