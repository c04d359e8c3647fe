// Package scheduler runs the periodic interest sweep. Savings interest is
// normally materialized lazily when an account is touched; the sweep covers
// idle accounts so their interest lands without waiting for the owner.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IanWachcode/growvest/internal/config"
	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/service/savingsservice"
)

type AccountRepo interface {
	FindDueForAccrual(ctx context.Context, before time.Time, limit uint32) ([]domain.SavingsAccount, error)
}

type SavingsService interface {
	AccrueInterest(ctx context.Context, userID int) error
}

// accruingAccounts dedupes in-flight work: an account already queued in the
// pool is skipped by the next sweep tick.
var accruingAccounts sync.Map

type Service struct {
	schedule   string
	accounts   AccountRepo
	savings    SavingsService
	limit      uint32
	workerPool WorkerPoolI
	cron       *cron.Cron
	now        func() time.Time
}

func New(cfg *config.Config, accounts AccountRepo, savings SavingsService) *Service {
	return &Service{
		schedule:   cfg.AccrualSchedule,
		accounts:   accounts,
		savings:    savings,
		limit:      1000,
		workerPool: NewWorkerPool(10),
		cron:       cron.New(),
		now:        time.Now,
	}
}

func (s *Service) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.sweep(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	zap.L().Info("Interest accrual scheduler started", zap.String("schedule", s.schedule))

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.workerPool.Close()
		zap.L().Info("Interest accrual scheduler stopped")
	}()
	return nil
}

func (s *Service) sweep(ctx context.Context) {
	cutoff := s.now().Add(-savingsservice.AccrualMonth)
	accounts, err := s.accounts.FindDueForAccrual(ctx, cutoff, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch accounts for accrual", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, account := range accounts {
		account := account

		if _, loaded := accruingAccounts.LoadOrStore(account.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer accruingAccounts.Delete(account.ID)
				return s.savings.AccrueInterest(ctx, account.UserID)
			})
			if err != nil {
				accruingAccounts.Delete(account.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error sweeping accounts for accrual", zap.Error(err))
	}
}
