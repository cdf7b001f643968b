package main

import (
	"github.com/spf13/cobra"

	pgInfra "github.com/fastygo/todo-service/internal/infrastructure/postgres"
)

var (
	migrateDirection string
	migrateSteps     int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, zapLogger, err := bootstrap()
		if err != nil {
			return err
		}
		defer zapLogger.Sync()

		return pgInfra.Migrate(cfg, migrateDirection, migrateSteps, zapLogger)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDirection, "direction", pgInfra.DirectionUp, "migration direction (up|down)")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "number of migrations to apply, 0 for all")
}
