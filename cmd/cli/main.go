package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"
	"github.com/kamaj/bank/infra/initializer"
	"github.com/kamaj/bank/pkg/app"
	"github.com/kamaj/bank/pkg/cli"
	"github.com/kamaj/bank/pkg/config"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() (err error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if cerr := deps.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Unblock a pending read so the loop notices the cancellation.
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	application := app.New(deps, cfg)
	deps.Logger.Debug("starting cli", "env", cfg.Env, "db_driver", cfg.DB.Driver)

	opts := []cli.Option{cli.WithLogger(deps.Logger)}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		opts = append(opts, cli.WithSecretReader(func() (string, error) {
			pin, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stdout)
			return string(pin), err
		}))
	}

	controller := cli.New(application.AccountService, os.Stdin, os.Stdout, cfg.BankName, opts...)
	return controller.Run(ctx)
}
