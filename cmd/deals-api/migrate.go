package main

import (
	"github.com/spf13/cobra"

	"github.com/rajivgeraev/deals-api/internal/config"
	"github.com/rajivgeraev/deals-api/internal/db/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Создать или обновить схему базы данных",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			gdb, err := migrations.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			return migrations.Migrate(gdb, log)
		},
	}
}
