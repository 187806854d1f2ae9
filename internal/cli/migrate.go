package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"desbuguei/config"
	"desbuguei/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migracoes do banco configurado",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		switch cfg.StoreDriver {
		case config.StoreDriverPostgres:
			db, err := database.OpenPostgres(cmd.Context(), cfg.DatabaseUrl, logger)
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(db, database.DialectPostgres, logger)
		case config.StoreDriverSQLite:
			db, err := database.OpenSQLite(cmd.Context(), cfg.SQLitePath, logger)
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(db, database.DialectSQLite, logger)
		default:
			return fmt.Errorf("nada a migrar: STORE_DRIVER=%s", cfg.StoreDriver)
		}
	},
}
