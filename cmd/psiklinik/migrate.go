package main

import (
	"github.com/spf13/cobra"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the audit schema in the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log, cfg.App)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Connect(cfg.Audit.DB)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			return database.Migrate(db, log)
		},
	}
}
