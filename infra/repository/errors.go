package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/kamaj/bank/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM and driver errors to domain errors.
// Traverses the error chain to find known errors and maps them to the matching domain error.
// The original error stays in the chain so callers can still log the cause.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return errors.Join(domain.ErrAlreadyExists, err)
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return errors.Join(domain.ErrNotFound, err)
		case isConnectionError(currentErr):
			return errors.Join(domain.ErrStoreUnavailable, err)
		}

		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// WrapError runs a GORM operation and maps its error.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&row).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
