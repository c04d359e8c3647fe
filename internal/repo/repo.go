package repo

import (
	"github.com/IanWachcode/growvest/internal/pg"
	loanrepo "github.com/IanWachcode/growvest/internal/repo/loan-repo"
	savingsrepo "github.com/IanWachcode/growvest/internal/repo/savings-repo"
	userrepo "github.com/IanWachcode/growvest/internal/repo/user-repo"
	"github.com/IanWachcode/growvest/internal/scheduler"
	"github.com/IanWachcode/growvest/internal/service/authservice"
	"github.com/IanWachcode/growvest/internal/service/loanservice"
	"github.com/IanWachcode/growvest/internal/service/savingsservice"
)

type Repositories struct {
	UserRepo    authservice.Repo
	LoanRepo    loanservice.LoanRepo
	SavingsRepo savingsservice.SavingsRepo
	AccrualRepo scheduler.AccountRepo
}

func New(conn pg.Database) *Repositories {
	userRepo := userrepo.New(conn)
	loanRepo := loanrepo.New(conn)
	savingsRepo := savingsrepo.New(conn)

	return &Repositories{
		UserRepo:    userRepo,
		LoanRepo:    loanRepo,
		SavingsRepo: savingsRepo,
		AccrualRepo: savingsRepo,
	}
}
