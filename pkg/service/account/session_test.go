package account_test

import (
	"context"
	"testing"

	"github.com/kamaj/bank/internal/fixtures/mocks"
	"github.com/kamaj/bank/pkg/domain"
	accountdomain "github.com/kamaj/bank/pkg/domain/account"
	accountsvc "github.com/kamaj/bank/pkg/service/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, balance string) (*accountsvc.Session, *mocks.MockAccountRepository) {
	t.Helper()
	repo := mocks.NewMockAccountRepository(t)
	repo.On("FindByCredentials", mock.Anything, "alice", "1234").
		Return([]*accountdomain.Account{storedAccount(balance)}, nil).Once()

	svc := accountsvc.NewService(repo, "GHS", discardLogger())
	session, err := svc.Authenticate(context.Background(), "alice", "1234")
	require.NoError(t, err)
	return session, repo
}

func TestSession_Deposit(t *testing.T) {
	t.Parallel()
	session, repo := newSession(t, "100.00")

	balance, err := session.Deposit(decimal.RequireFromString("0.50"))
	require.NoError(t, err)
	assert.Equal(t, "100.50", balance.StringFixed(2))

	_, err = session.Deposit(decimal.Zero)
	require.ErrorIs(t, err, accountdomain.ErrAmountMustBePositive)
	assert.Equal(t, "100.50", session.Balance().StringFixed(2))

	repo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_Withdraw(t *testing.T) {
	t.Parallel()

	t.Run("below balance", func(t *testing.T) {
		t.Parallel()
		session, _ := newSession(t, "100.00")
		balance, err := session.Withdraw(decimal.NewFromInt(30))
		require.NoError(t, err)
		assert.Equal(t, "70.00", balance.StringFixed(2))
	})

	t.Run("exact balance is insufficient", func(t *testing.T) {
		t.Parallel()
		session, _ := newSession(t, "100.00")
		balance, err := session.Withdraw(decimal.NewFromInt(100))
		require.ErrorIs(t, err, accountdomain.ErrInsufficientFunds)
		assert.Equal(t, "100.00", balance.StringFixed(2))
	})

	t.Run("above balance is insufficient", func(t *testing.T) {
		t.Parallel()
		session, _ := newSession(t, "100.00")
		_, err := session.Withdraw(decimal.NewFromInt(500))
		require.ErrorIs(t, err, accountdomain.ErrInsufficientFunds)
		assert.Equal(t, "100.00", session.Balance().StringFixed(2))
	})
}

func TestSession_CheckBalance(t *testing.T) {
	t.Parallel()
	session, _ := newSession(t, "42.5")
	msg := session.CheckBalance()
	assert.Contains(t, msg, "42.5")
	assert.Equal(t, "Your balance is GHS42.50", msg)
	assert.Equal(t, "42.50", session.Balance().StringFixed(2), "check balance must not change state")
}

func TestSession_Persist(t *testing.T) {
	t.Parallel()

	t.Run("writes current balance", func(t *testing.T) {
		t.Parallel()
		session, repo := newSession(t, "100.00")
		_, err := session.Withdraw(decimal.RequireFromString("25.25"))
		require.NoError(t, err)

		repo.On("UpdateBalance", mock.Anything, "alice", "1234", mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("74.75"))
		})).Return(nil).Once()

		require.NoError(t, session.Persist(context.Background()))
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		t.Parallel()
		session, repo := newSession(t, "100.00")
		repo.On("UpdateBalance", mock.Anything, "alice", "1234", mock.Anything).
			Return(domain.ErrStoreUnavailable).Once()

		err := session.Persist(context.Background())
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}
