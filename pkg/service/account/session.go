package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kamaj/bank/pkg/domain/account"
	"github.com/kamaj/bank/pkg/repository"
	"github.com/shopspring/decimal"
)

// Session is the in-memory working copy of one authenticated account.
// Changes are only written back by Persist.
type Session struct {
	id       uuid.UUID
	account  *account.Account
	repo     repository.AccountRepository
	currency string
	logger   *slog.Logger
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Name returns the holder name as stored.
func (s *Session) Name() string {
	return s.account.Name
}

// Balance returns the current in-memory balance.
func (s *Session) Balance() decimal.Decimal {
	return s.account.Balance
}

// Deposit adds amount to the balance and returns the new balance.
func (s *Session) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.account.Deposit(amount)
	if err != nil {
		s.logger.Info("Deposit rejected", "amount", amount.String(), "error", err)
		return balance, err
	}
	s.logger.Info("Deposit applied", "amount", amount.String(), "balance", balance.String())
	return balance, nil
}

// Withdraw subtracts amount from the balance and returns the new balance.
// Returns account.ErrInsufficientFunds, with the balance unchanged, when amount
// is not strictly less than the balance.
func (s *Session) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.account.Withdraw(amount)
	if err != nil {
		s.logger.Info("Withdraw rejected", "amount", amount.String(), "error", err)
		return balance, err
	}
	s.logger.Info("Withdraw applied", "amount", amount.String(), "balance", balance.String())
	return balance, nil
}

// CheckBalance returns the balance as a message for the holder.
func (s *Session) CheckBalance() string {
	return "Your balance is " + s.FormatBalance()
}

// FormatBalance returns the balance with its currency code, e.g. GHS42.50.
func (s *Session) FormatBalance() string {
	return s.account.FormatBalance(s.currency)
}

// Persist writes the current balance back to the store. Last writer wins.
func (s *Session) Persist(ctx context.Context) error {
	if err := s.repo.UpdateBalance(ctx, s.account.Name, s.account.PIN, s.account.Balance); err != nil {
		s.logger.Error("Persist failed", "error", err)
		return fmt.Errorf("persist balance: %w", err)
	}
	s.logger.Debug("Balance persisted", "balance", s.account.Balance.String())
	return nil
}
