// Package account provides the business operations behind the bank menu:
// opening accounts, authenticating a holder and working on an authenticated session.
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

// Service provides account creation and authentication on top of the account store.
type Service struct {
	repo     repository.AccountRepository
	currency string
	logger   *slog.Logger
}

// NewService creates a new Service. currency is the code used when formatting balances.
func NewService(repo repository.AccountRepository, currency string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		currency: currency,
		logger:   logger,
	}
}

// Currency returns the currency code used for formatting.
func (s *Service) Currency() string {
	return s.currency
}

// EnsureSchema prepares the store. Safe to call on every start.
func (s *Service) EnsureSchema(ctx context.Context) error {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		s.logger.Error("EnsureSchema failed", "error", err)
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// OpenAccount validates and stores a new account funded with initialDeposit.
func (s *Service) OpenAccount(
	ctx context.Context,
	name, pin string,
	initialDeposit decimal.Decimal,
) (*account.Account, error) {
	acct, err := account.New().
		WithName(name).
		WithPIN(pin).
		WithBalance(initialDeposit).
		Build()
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("name", acct.Name)
	if err := s.repo.Create(ctx, acct); err != nil {
		logger.Error("OpenAccount failed: repo create error", "error", err)
		return nil, err
	}
	logger.Info("Account opened", "id", acct.ID, "balance", acct.Balance.StringFixed(2))
	return acct, nil
}

// Authenticate loads the account matching name and pin into a new Session.
// The name is folded the same way it was on creation.
// Returns account.ErrAccountNotFound when nothing matches.
func (s *Service) Authenticate(ctx context.Context, name, pin string) (*Session, error) {
	name = account.NormalizeName(name)
	accounts, err := s.repo.FindByCredentials(ctx, name, pin)
	if err != nil {
		s.logger.Error("Authenticate failed: repo error", "name", name, "error", err)
		return nil, err
	}
	if len(accounts) == 0 {
		s.logger.Info("Authenticate failed: no matching account", "name", name)
		return nil, account.ErrAccountNotFound
	}
	if len(accounts) > 1 {
		s.logger.Warn("Multiple accounts share these credentials, using the first", "name", name, "count", len(accounts))
	}

	session := &Session{
		id:       uuid.New(),
		account:  accounts[0],
		repo:     s.repo,
		currency: s.currency,
	}
	session.logger = s.logger.With("session_id", session.id, "name", name)
	session.logger.Info("Session started")
	return session, nil
}
