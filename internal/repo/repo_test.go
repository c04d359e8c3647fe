package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	loanrepo "github.com/IanWachcode/growvest/internal/repo/loan-repo"
	savingsrepo "github.com/IanWachcode/growvest/internal/repo/savings-repo"
	userrepo "github.com/IanWachcode/growvest/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.LoanRepo)
	assert.NotNil(t, repo.SavingsRepo)
	assert.NotNil(t, repo.AccrualRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &loanrepo.Repository{}, repo.LoanRepo)
	assert.IsType(t, &savingsrepo.Repository{}, repo.SavingsRepo)
	assert.IsType(t, &savingsrepo.Repository{}, repo.AccrualRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
