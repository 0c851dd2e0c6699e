package account

import (
	"context"
	"fmt"
	"math"

	"github.com/kamaj/bank/infra/repository"
	"github.com/kamaj/bank/pkg/domain/account"
	repo "github.com/kamaj/bank/pkg/repository/account"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// New creates an account repository backed by the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &accountRepository{db: db}
}

// EnsureSchema implements account.Repository.
func (r *accountRepository) EnsureSchema(ctx context.Context) error {
	return repository.WrapError(func() error {
		m := r.db.WithContext(ctx).Migrator()
		if m.HasTable(&Account{}) {
			return nil
		}
		return m.CreateTable(&Account{})
	})
}

// Create implements account.Repository.
func (r *accountRepository) Create(ctx context.Context, acct *account.Account) error {
	row, err := mapDomainToModel(acct)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	if err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	}); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	acct.ID = row.ID
	return nil
}

// FindByCredentials implements account.Repository.
// The pin comparison is case-insensitive.
func (r *accountRepository) FindByCredentials(ctx context.Context, name, pin string) ([]*account.Account, error) {
	var rows []Account
	if err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("name = ? AND LOWER(pin) = LOWER(?)", name, pin).
			Order("id").
			Find(&rows).Error
	}); err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	result := make([]*account.Account, 0, len(rows))
	for i := range rows {
		acct, err := mapModelToDomain(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("find account: %w", err)
		}
		result = append(result, acct)
	}
	return result, nil
}

// UpdateBalance implements account.Repository.
func (r *accountRepository) UpdateBalance(ctx context.Context, name, pin string, balance decimal.Decimal) error {
	value, err := toColumn(balance)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	var affected int64
	if err := repository.WrapError(func() error {
		res := r.db.WithContext(ctx).
			Model(&Account{}).
			Where("name = ? AND pin = ?", name, pin).
			Update("balance", value)
		affected = res.RowsAffected
		return res.Error
	}); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if affected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// toColumn converts a balance to its double precision column value.
func toColumn(balance decimal.Decimal) (float64, error) {
	if balance.IsNegative() {
		return 0, account.ErrInvalidAmount
	}
	if balance.GreaterThan(account.MaxBalance) {
		return 0, account.ErrBalanceLimit
	}
	return balance.InexactFloat64(), nil
}

func mapDomainToModel(acct *account.Account) (Account, error) {
	balance, err := toColumn(acct.Balance)
	if err != nil {
		return Account{}, err
	}
	return Account{
		ID:      acct.ID,
		Name:    acct.Name,
		Pin:     acct.PIN,
		Balance: balance,
	}, nil
}

// mapModelToDomain hydrates stored rows without re-running Build validation,
// so rows written by other tools still load. Only a non-finite balance is refused.
func mapModelToDomain(row *Account) (*account.Account, error) {
	if math.IsInf(row.Balance, 0) || math.IsNaN(row.Balance) {
		return nil, fmt.Errorf("account %d balance %v: %w", row.ID, row.Balance, account.ErrBalanceLimit)
	}
	return &account.Account{
		ID:      row.ID,
		Name:    row.Name,
		PIN:     row.Pin,
		Balance: decimal.NewFromFloat(row.Balance),
	}, nil
}
