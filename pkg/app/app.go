package app

import (
	"log/slog"

	"github.com/kamaj/bank/infra"
	"github.com/kamaj/bank/pkg/config"
	"github.com/kamaj/bank/pkg/repository"
	"github.com/kamaj/bank/pkg/service/account"
	"gorm.io/gorm"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	DB                *gorm.DB
	AccountRepository repository.AccountRepository
	Logger            *slog.Logger
}

// Close releases the database handle.
func (d *Deps) Close() error {
	return infra.CloseDB(d.DB)
}

type App struct {
	Deps           *Deps
	Config         *config.App
	AccountService *account.Service
}

func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:           deps,
		Config:         cfg,
		AccountService: account.NewService(deps.AccountRepository, cfg.Currency, deps.Logger),
	}
}
