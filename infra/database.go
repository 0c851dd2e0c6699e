package infra

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/kamaj/bank/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnsupportedDriver is returned for a DATABASE_DRIVER other than postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// NewDBConnection opens the database described by cnf. SQL statements are
// written to logOutput, and only in the development environment. Every
// statement runs in its own implicit transaction.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
	logOutput io.Writer,
) (*gorm.DB, error) {
	dialector, err := newDialector(cnf)
	if err != nil {
		return nil, err
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(logOutput, appEnv),
		SkipDefaultTransaction: true})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cnf.Driver, err)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	// One long lived connection is all the single user CLI needs.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// newGormLogger never falls back to gorm's default logger, which writes to stdout.
func newGormLogger(w io.Writer, appEnv string) logger.Interface {
	if w == nil {
		w = io.Discard
	}
	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logMode,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func newDialector(cnf *config.DB) (gorm.Dialector, error) {
	switch cnf.Driver {
	case "", "postgres":
		return postgres.Open(cnf.DSN()), nil
	case "sqlite":
		return sqlite.Open(cnf.SqlitePath), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cnf.Driver)
	}
}

// CloseDB releases the connection pool behind db.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
