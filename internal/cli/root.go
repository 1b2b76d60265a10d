package cli

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/pkg/squall"
)

// Global configuration variables
var (
	configFile   string
	squallConfig *SquallConfig
	debug        bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "squall",
		Short: "Squall - Multi-tenant Todo API",
		Long: `Squall is a multi-tenant todo and task management API.

Users register, authenticate, and manage personal todo lists, and can share
a todo read-only with other registered users by email.`,
		Version: squall.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env values feed the config env overrides
			_ = godotenv.Load()

			if debug {
				logger.SetLevel(slog.LevelDebug)
			}

			var err error
			squallConfig, err = LoadSquallConfig(configFile)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: squall.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
