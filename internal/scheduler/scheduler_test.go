package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/IanWachcode/growvest/internal/config"
	"github.com/IanWachcode/growvest/internal/domain"
	"github.com/IanWachcode/growvest/internal/service/savingsservice"
)

var testTime = time.Date(2024, 12, 9, 16, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockAccountRepo, *MockSavingsService, *MockWorkerPoolI) {
	ctrl := gomock.NewController(t)
	accounts := NewMockAccountRepo(ctrl)
	savings := NewMockSavingsService(ctrl)
	pool := NewMockWorkerPoolI(ctrl)

	cfg := &config.Config{AccrualSchedule: "@hourly"}
	service := New(cfg, accounts, savings)
	service.workerPool = pool
	service.now = func() time.Time { return testTime }
	defer ctrl.Finish()
	return service, accounts, savings, pool
}

func dueAccount(id, userID int) domain.SavingsAccount {
	return domain.SavingsAccount{
		ID:             id,
		UserID:         userID,
		Balance:        decimal.NewFromInt(1000),
		AnnualRate:     decimal.NewFromInt(5),
		LastInterestAt: testTime.Add(-31 * 24 * time.Hour),
	}
}

func TestSweep(t *testing.T) {
	service, accounts, savings, pool := NewMock(t)

	cutoff := testTime.Add(-savingsservice.AccrualMonth)
	accounts.EXPECT().FindDueForAccrual(gomock.Any(), cutoff, uint32(1000)).Return([]domain.SavingsAccount{
		dueAccount(101, 1),
		dueAccount(102, 2),
	}, nil)

	pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, task Task) error {
			return task()
		},
	).Times(2)
	savings.EXPECT().AccrueInterest(gomock.Any(), 1).Return(nil)
	savings.EXPECT().AccrueInterest(gomock.Any(), 2).Return(nil)

	service.sweep(context.Background())

	// both accounts left the in-flight set once their tasks finished
	_, inFlight := accruingAccounts.Load(101)
	assert.False(t, inFlight)
	_, inFlight = accruingAccounts.Load(102)
	assert.False(t, inFlight)
}

func TestSweepRepoError(t *testing.T) {
	service, accounts, _, _ := NewMock(t)

	accounts.EXPECT().FindDueForAccrual(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database error"))

	service.sweep(context.Background())
}

func TestSweepSkipsInFlightAccounts(t *testing.T) {
	service, accounts, _, _ := NewMock(t)

	accruingAccounts.Store(201, struct{}{})
	defer accruingAccounts.Delete(201)

	accounts.EXPECT().FindDueForAccrual(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.SavingsAccount{dueAccount(201, 1)}, nil)

	// no AddTask expected: the account is already queued
	service.sweep(context.Background())
}

func TestSweepPoolError(t *testing.T) {
	service, accounts, _, pool := NewMock(t)

	accounts.EXPECT().FindDueForAccrual(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.SavingsAccount{dueAccount(301, 1)}, nil)
	pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(errors.New("pool closed"))

	service.sweep(context.Background())

	// a failed enqueue must not leave the account stuck in the in-flight set
	_, inFlight := accruingAccounts.Load(301)
	assert.False(t, inFlight)
}

func TestSweepTaskFailureReleasesAccount(t *testing.T) {
	service, accounts, savings, pool := NewMock(t)

	accounts.EXPECT().FindDueForAccrual(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.SavingsAccount{dueAccount(401, 1)}, nil)
	pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, task Task) error {
			return task()
		},
	)
	savings.EXPECT().AccrueInterest(gomock.Any(), 1).Return(errors.New("accrual failed"))

	service.sweep(context.Background())

	_, inFlight := accruingAccounts.Load(401)
	assert.False(t, inFlight)
}

func TestStart(t *testing.T) {
	tests := []struct {
		name      string
		schedule  string
		expectErr bool
	}{
		{
			name:     "Valid schedule",
			schedule: "@hourly",
		},
		{
			name:      "Invalid schedule",
			schedule:  "not-a-schedule",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := NewMockAccountRepo(ctrl)
			savings := NewMockSavingsService(ctrl)

			cfg := &config.Config{AccrualSchedule: tt.schedule}
			service := New(cfg, accounts, savings)

			ctx, cancel := context.WithCancel(context.Background())
			err := service.Start(ctx)
			cancel()

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
