package account

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamaj/bank/infra"
	"github.com/kamaj/bank/pkg/config"
	"github.com/kamaj/bank/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	cnf := &config.DB{Driver: "sqlite", SqlitePath: filepath.Join(t.TempDir(), "bank.db")}
	db, err := infra.NewDBConnection(cnf, "test", io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = infra.CloseDB(db) })
	return db
}

func TestRepository_SQLite(t *testing.T) {
	t.Parallel()
	db := newSQLiteDB(t)
	repo := New(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	acct, err := account.New().
		WithName("Alice").
		WithPIN("1234").
		WithBalance(decimal.RequireFromString("100.00")).
		Build()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acct))
	assert.NotZero(t, acct.ID)

	// A second call leaves the table and its rows alone.
	require.NoError(t, repo.EnsureSchema(ctx))

	found, err := repo.FindByCredentials(ctx, "alice", "1234")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, acct.ID, found[0].ID)
	assert.Equal(t, "alice", found[0].Name)
	assert.Equal(t, "100.00", found[0].Balance.StringFixed(2))

	found, err = repo.FindByCredentials(ctx, "alice", "9999")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, repo.UpdateBalance(ctx, "alice", "1234", decimal.RequireFromString("150.25")))
	found, err = repo.FindByCredentials(ctx, "alice", "1234")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "150.25", found[0].Balance.StringFixed(2))

	err = repo.UpdateBalance(ctx, "bob", "0000", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestRepository_SQLite_BalanceOutOfRange(t *testing.T) {
	t.Parallel()
	db := newSQLiteDB(t)
	repo := New(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	huge := &account.Account{
		Name:    "alice",
		PIN:     "1234",
		Balance: decimal.RequireFromString(strings.Repeat("9", 400)),
	}
	require.ErrorIs(t, repo.Create(ctx, huge), account.ErrBalanceLimit)

	found, err := repo.FindByCredentials(ctx, "alice", "1234")
	require.NoError(t, err)
	assert.Empty(t, found, "rejected account must not be stored")

	// Rows written outside the application may still hold an infinite balance.
	require.NoError(t, db.Exec(
		`INSERT INTO bank_accounts (name, pin, balance) VALUES (?, ?, ?)`,
		"bob", "4321", math.Inf(1),
	).Error)

	require.NotPanics(t, func() {
		_, err = repo.FindByCredentials(ctx, "bob", "4321")
	})
	assert.ErrorIs(t, err, account.ErrBalanceLimit)
}
