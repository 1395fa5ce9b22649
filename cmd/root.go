package cmd

import (
	"fmt"
	"os"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "touen-importer",
	Short: "Sisiwaka Touen media importer",
	Long: `Imports the artwork media inventory of the Sisiwaka Touen bucket
into the gallery database. Each sync run replaces the media rows of every
artwork found in the bucket, pairing video clips with their poster stills.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Report through the standard logger; console format with debug
		// level gives readable timestamps for a CLI tool.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
