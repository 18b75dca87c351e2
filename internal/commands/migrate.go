package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"gameplan-service/internal/config"
	"gameplan-service/internal/db"
	"gameplan-service/internal/logging"
)

func addMigrate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.New(cfg.Log)

			database, err := db.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(cmd.Context(), database); err != nil {
				return err
			}
			slog.Info("migrations applied")
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
