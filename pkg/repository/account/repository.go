package account

import (
	"context"

	"github.com/kamaj/bank/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// Repository defines the persistence operations for bank accounts.
type Repository interface {
	// EnsureSchema creates the accounts table if it does not exist. It never
	// alters an existing table and is safe to call repeatedly.
	EnsureSchema(ctx context.Context) error

	// Create inserts a new account and sets its store assigned ID.
	Create(ctx context.Context, acct *account.Account) error

	// FindByCredentials returns the accounts matching name and pin.
	// No match yields an empty slice and a nil error.
	FindByCredentials(ctx context.Context, name, pin string) ([]*account.Account, error)

	// UpdateBalance overwrites the balance of the account matching name and pin.
	UpdateBalance(ctx context.Context, name, pin string, balance decimal.Decimal) error
}
