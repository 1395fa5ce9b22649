package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/config"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/database"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/logger"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/storage"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/feature/artwork"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncDryRun bool
	syncYes    bool
	syncPrefix string
)

// syncCmd replaces the artwork media rows from the bucket inventory.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replace artwork media rows from the bucket inventory",
	Long: `Lists the artwork bucket, pairs stills with their motion assets and
replaces each artwork's media rows in one transaction per artwork.

Artworks absent from the bucket are left untouched. A persistence failure
rolls back the artwork being replaced and stops the run; artworks committed
earlier stay committed.

Examples:
  # Preview without writing
  touen-importer sync --dry-run

  # Full run without the confirmation prompt (for cron)
  touen-importer sync --yes

  # Restrict the run to one artwork folder
  touen-importer sync --prefix 001/ --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Resolve and report without touching the database")
	syncCmd.Flags().BoolVar(&syncYes, "yes", false, "Skip the confirmation prompt (non-interactive)")
	syncCmd.Flags().StringVar(&syncPrefix, "prefix", "", "Only sync objects under this key prefix")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
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

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	if syncPrefix != "" {
		cfg.Storage.Prefix = syncPrefix
	}

	if !syncDryRun && !confirmReplace() {
		l.Warn("Sync cancelled, no changes were made")
		return nil
	}

	svc := artwork.NewService(db, client, cfg.Storage, l)
	report, err := svc.Sync(cmd.Context(), artwork.Options{DryRun: syncDryRun})
	if err != nil {
		return err
	}

	if report.DryRun {
		l.Info("Dry-run finished, nothing was written",
			zap.String("run_id", report.RunID),
			zap.Int("would_insert", report.TotalInserted),
			zap.Int("artworks", len(report.Artworks)),
		)
	}

	return nil
}

// confirmReplace prompts before a destructive run unless --yes was given.
func confirmReplace() bool {
	if syncYes {
		return true
	}

	fmt.Print("This replaces the media rows of every artwork in the bucket. Type 'yes' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
