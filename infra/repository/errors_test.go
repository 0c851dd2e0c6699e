package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/kamaj/bank/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil error returns nil",
			input:    nil,
			expected: nil,
		},
		{
			name:     "duplicate key error maps to ErrAlreadyExists",
			input:    gorm.ErrDuplicatedKey,
			expected: domain.ErrAlreadyExists,
		},
		{
			name:     "record not found error maps to ErrNotFound",
			input:    gorm.ErrRecordNotFound,
			expected: domain.ErrNotFound,
		},
		{
			name:     "bad connection maps to ErrStoreUnavailable",
			input:    driver.ErrBadConn,
			expected: domain.ErrStoreUnavailable,
		},
		{
			name:     "closed connection maps to ErrStoreUnavailable",
			input:    fmt.Errorf("exec: %w", sql.ErrConnDone),
			expected: domain.ErrStoreUnavailable,
		},
		{
			name:     "network error maps to ErrStoreUnavailable",
			input:    fmt.Errorf("dial: %w", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}),
			expected: domain.ErrStoreUnavailable,
		},
		{
			name:     "wrapped duplicate key error maps correctly",
			input:    errors.Join(errors.New("outer error"), gorm.ErrDuplicatedKey),
			expected: domain.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)

			if tt.expected == nil {
				require.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.ErrorIs(t, result, tt.expected)
			assert.ErrorIs(t, result, tt.input, "original error should stay in the chain")
		})
	}
}

func TestMapGormErrorToDomain_UnmappedErrors(t *testing.T) {
	t.Parallel()

	customErr := errors.New("syntax error at or near")
	result := MapGormErrorToDomain(customErr)

	require.Error(t, result)
	assert.Equal(t, customErr, result)
	assert.NotErrorIs(t, result, domain.ErrStoreUnavailable)
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	require.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrRecordNotFound }), domain.ErrNotFound)

	t.Run("panics propagate", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic to propagate")
			}
		}()

		_ = WrapError(func() error {
			panic("test panic")
		})
	})
}
