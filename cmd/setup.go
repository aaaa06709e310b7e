package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"chinook/internal/shared"
)

// loadOrCreateConfig reads the config at path, creating it from the
// embedded template when missing.
func (r *Runner) loadOrCreateConfig(configPath string) *shared.Config {
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			return shared.DefaultConfig()
		}
		return config
	}

	r.logger.Info("config file not found, creating from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		r.logger.Warn("failed to create config file, using defaults", "error", err)
		return shared.DefaultConfig()
	}

	r.logger.Info("config file created", "path", configPath)
	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load created config, using defaults", "error", err)
		return shared.DefaultConfig()
	}
	return config
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SeedDatabase loads the sample catalog. Safe to run repeatedly, rows
// that already exist are skipped.
func (r *Runner) SeedDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Info("seeding sample catalog")
	if err := shared.SeedSampleData(db); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	r.writePlain("✓ Sample catalog loaded into %s\n", config.Database.Path)
	return nil
}
