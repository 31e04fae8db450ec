// Command storefrontctl runs operator tasks that the HTTP API deliberately does
// not expose: schema migrations and role assignment.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/agrimart/agri-storefront/internal/config"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/observability"
	"github.com/agrimart/agri-storefront/internal/persistence"
	"github.com/agrimart/agri-storefront/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "storefrontctl",
		Usage: "operate the agri-storefront database",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply or roll back schema migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending migrations",
						Action: migrateUp,
					},
					{
						Name:  "down",
						Usage: "roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to revert"},
						},
						Action: migrateDown,
					},
				},
			},
			{
				Name:      "grant-admin",
				Usage:     "give an account the administrator role",
				ArgsUsage: "--email <address>",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "email", Required: true}},
				Action: func(c *cli.Context) error {
					return setRole(c, domain.RoleAdministrator)
				},
			},
			{
				Name:  "revoke-admin",
				Usage: "return an account to the customer role",
				Flags: []cli.Flag{&cli.StringFlag{Name: "email", Required: true}},
				Action: func(c *cli.Context) error {
					return setRole(c, domain.RoleCustomer)
				},
			},
		},
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func migrateUp(_ *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	return persistence.RunMigrations(cfg.Postgres.DSN, logger)
}

func migrateDown(c *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	return persistence.RollbackMigrations(cfg.Postgres.DSN, c.Int("steps"), logger)
}

func setRole(c *cli.Context, role domain.Role) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(c.Context, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	account, err := repository.NewAccountRepository(pg.PoolHandle()).SetRole(c.Context, c.String("email"), role)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	logger.Info("account role updated",
		zap.String("account_id", account.ID),
		zap.String("email", account.Email),
		zap.String("role", string(account.Role)))
	return nil
}
