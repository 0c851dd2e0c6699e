package initializer

import (
	"fmt"
	"io"

	"github.com/kamaj/bank/infra"
	accountrepo "github.com/kamaj/bank/infra/repository/account"
	"github.com/kamaj/bank/pkg/app"
	"github.com/kamaj/bank/pkg/config"
)

// InitializeDependencies sets up logging and opens the database.
// The caller owns the returned deps and must call Close on them.
func InitializeDependencies(cfg *config.App, logOutput io.Writer) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := SetupLogger(logOutput, cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env, logOutput)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.DB = db
	deps.AccountRepository = accountrepo.New(db)
	return deps, nil
}
