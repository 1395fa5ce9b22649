package cmd

import (
	"fmt"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/config"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/database"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/logger"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/feature/artwork/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCheck bool

// migrateCmd creates or verifies the artwork_media table.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or verify the artwork_media table",
	Long: `Creates the artwork_media table (and missing columns) through GORM's
auto-migration. With --check the schema is only inspected: missing columns
are reported and the command fails without altering anything.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateCheck, "check", false, "Only verify the schema, do not alter it")

	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	tableName := models.ArtworkMedia{}.TableName()

	if migrateCheck {
		missing, err := database.MissingColumns(db, tableName, models.MediaColumns())
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %v", tableName, missing)
		}
		l.Info("Schema verified", zap.String("table", tableName))
		return nil
	}

	if err := db.AutoMigrate(&models.ArtworkMedia{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", tableName, err)
	}

	l.Info("Migration complete", zap.String("table", tableName))
	return nil
}
