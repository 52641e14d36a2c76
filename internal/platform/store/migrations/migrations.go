// Package migrations applies the embedded postgres schema with golang-migrate
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"glossrank/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Files exposes the embedded migration set
func Files() embed.FS { return files }

func open(dbURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// Up applies all pending migrations; nothing to apply is not an error
func Up(dbURL string) error {
	m, err := open(dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	log := logger.Named("migrate")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no pending migrations")
			return nil
		}
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info().Msg("migrations applied")
	return nil
}

// Down rolls back steps migrations, steps <= 0 means one
func Down(dbURL string, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	m, err := open(dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	log := logger.Named("migrate")
	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no migrations to roll back")
			return nil
		}
		return fmt.Errorf("roll back migrations: %w", err)
	}
	log.Info().Int("steps", steps).Msg("migrations rolled back")
	return nil
}

// Version reports the applied version; a fresh database yields 0, false
func Version(dbURL string) (uint, bool, error) {
	m, err := open(dbURL)
	if err != nil {
		return 0, false, err
	}
	defer func() { _, _ = m.Close() }()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return v, dirty, nil
}
