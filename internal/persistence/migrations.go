package persistence

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies every pending migration embedded in the binary.
func RunMigrations(dsn string, logger *zap.Logger) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// RollbackMigrations reverts the given number of migration steps.
func RollbackMigrations(dsn string, steps int, logger *zap.Logger) error {
	if steps <= 0 {
		return errors.New("steps must be positive")
	}
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(m, logger)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	logger.Info("migrations rolled back", zap.Int("steps", steps))
	return nil
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	url, err := migrationURL(dsn)
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}

func closeMigrator(m *migrate.Migrate, logger *zap.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		logger.Warn("closing migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
	}
}

// migrationURL rewrites a postgres URL onto the pgx5 scheme golang-migrate expects.
func migrationURL(dsn string) (string, error) {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme), nil
		}
	}
	if strings.HasPrefix(dsn, "pgx5://") {
		return dsn, nil
	}
	return "", errors.New("migrations need a URL-style POSTGRES_DSN (postgres://...)")
}
