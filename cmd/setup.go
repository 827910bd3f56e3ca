package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/enroll/internal/repositories"
	"github.com/desertthunder/enroll/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded config template to the --config path. An existing file is left alone.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err == nil {
		r.logger.Warn("config file already exists, leaving it untouched", "path", r.configPath)
		return r.writePlain("Config already exists at %s\n", r.configPath)
	}

	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", r.configPath)
	r.writePlain("✓ Config written to %s\n", r.configPath)
	return r.writePlainln("Set storage.backend = \"sqlite\" and run 'enroll setup database' to use SQLite.")
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	repo, err := repositories.OpenSQLiteRepository(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer repo.Close()

	r.logger.Infof("setup complete for database: %v", repo.Location())
	return r.writePlain("✓ Database ready at %s\n", repo.Location())
}
