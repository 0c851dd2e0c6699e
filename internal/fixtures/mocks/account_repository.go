// Package mocks holds testify mocks of the repository ports.
package mocks

import (
	"context"

	"github.com/kamaj/bank/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a testify mock of account.Repository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock and asserts its expectations on cleanup.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountRepository) Create(ctx context.Context, acct *account.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByCredentials(ctx context.Context, name, pin string) ([]*account.Account, error) {
	args := m.Called(ctx, name, pin)
	var accounts []*account.Account
	if v := args.Get(0); v != nil {
		accounts = v.([]*account.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, name, pin string, balance decimal.Decimal) error {
	args := m.Called(ctx, name, pin, balance)
	return args.Error(0)
}
