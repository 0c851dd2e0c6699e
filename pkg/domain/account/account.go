package account

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kamaj/bank/pkg/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrAmountMustBePositive is returned when a deposit or withdrawal amount is not positive.
	ErrAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal would empty or overdraw the account.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound is returned when no account matches the given credentials.
	ErrAccountNotFound = fmt.Errorf("account not found: %w", domain.ErrNotFound)

	// ErrInvalidPIN is returned when a PIN is not exactly four digits.
	ErrInvalidPIN = fmt.Errorf("pin must be 4 digits: %w", domain.ErrValidation)

	// ErrInvalidAmount is returned when an amount is negative or malformed.
	ErrInvalidAmount = fmt.Errorf("invalid amount: %w", domain.ErrValidation)

	// ErrEmptyName is returned when an account is opened without a name.
	ErrEmptyName = fmt.Errorf("name is required: %w", domain.ErrValidation)

	// ErrBalanceLimit is returned when a balance would exceed MaxBalance.
	ErrBalanceLimit = fmt.Errorf("balance limit exceeded: %w", domain.ErrValidation)
)

// MaxBalance is the largest balance an account may hold. Balances are stored
// as double precision, which keeps every cent exact up to this value.
var MaxBalance = decimal.New(1, 13)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Account is a named balance guarded by a four digit PIN.
//
// Invariants:
//   - Name is stored lowercase.
//   - PIN is exactly four digits.
//   - Balance is never negative and never above MaxBalance.
type Account struct {
	ID      uint
	Name    string
	PIN     string
	Balance decimal.Decimal
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id      uint
	name    string
	pin     string
	balance decimal.Decimal
}

// New creates a new Builder with a zero balance.
func New() *Builder {
	return &Builder{balance: decimal.Zero}
}

// WithID sets the store assigned ID. Only used when hydrating from the store.
func (b *Builder) WithID(id uint) *Builder {
	b.id = id
	return b
}

// WithName sets the account holder name. It is folded to lowercase on Build.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithPIN sets the four digit PIN.
func (b *Builder) WithPIN(pin string) *Builder {
	b.pin = pin
	return b
}

// WithBalance sets the initial balance, which is the opening deposit for new accounts.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	name := NormalizeName(b.name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !ValidPIN(b.pin) {
		return nil, ErrInvalidPIN
	}
	if b.balance.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if b.balance.GreaterThan(MaxBalance) {
		return nil, ErrBalanceLimit
	}
	return &Account{
		ID:      b.id,
		Name:    name,
		PIN:     b.pin,
		Balance: b.balance,
	}, nil
}

// NormalizeName trims and lowercases a holder name the way it is stored.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidPIN reports whether pin is exactly four digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// Deposit adds amount to the balance and returns the new balance.
// On error the balance is left unchanged.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return a.Balance, ErrAmountMustBePositive
	}
	balance := a.Balance.Add(amount)
	if balance.GreaterThan(MaxBalance) {
		return a.Balance, ErrBalanceLimit
	}
	a.Balance = balance
	return a.Balance, nil
}

// ValidateWithdraw checks the withdrawal invariants without changing the balance.
//
// A withdrawal equal to the full balance is rejected as well; the account
// can never be emptied by a withdrawal.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if amount.GreaterThanOrEqual(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// Withdraw subtracts amount from the balance and returns the new balance.
// On error the balance is left unchanged.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if err := a.ValidateWithdraw(amount); err != nil {
		return a.Balance, err
	}
	a.Balance = a.Balance.Sub(amount)
	return a.Balance, nil
}

// FormatBalance renders the balance prefixed with the currency code, e.g. GHS42.50.
func (a *Account) FormatBalance(currencyCode string) string {
	return FormatAmount(currencyCode, a.Balance)
}

// FormatAmount renders amount with two fraction digits prefixed with the currency code.
func FormatAmount(currencyCode string, amount decimal.Decimal) string {
	return currencyCode + amount.StringFixed(2)
}
