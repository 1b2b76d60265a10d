package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/store"
	"github.com/eleven-am/squall/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply pending schema migrations to the configured database.",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if squallConfig.Database.URL == "" {
		return fmt.Errorf("no database URL configured (set database.url or DATABASE_URL)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	db, err := store.NewDBConfig(squallConfig.Database.URL).Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := store.NewMigrator(db, migrations.FS).Apply(ctx)
	if err != nil {
		return err
	}

	if applied == 0 {
		logger.CLI().Info("database is up to date")
	} else {
		logger.CLI().Info("migrations applied", "count", applied)
	}

	return nil
}
