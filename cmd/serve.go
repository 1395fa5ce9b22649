package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/config"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/database"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/loader"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/logger"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/middleware/auth"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/middleware/rayid"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/storage"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/feature/artwork"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd runs the admin HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the importer's HTTP server",
	Long: `Starts the HTTP server exposing the importer over REST: trigger sync
runs, inspect an artwork's media rows, health checking. Concurrent sync
triggers are collapsed into a single run.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := cfg.Validate(); err != nil {
			logg.Fatal("Configuration incomplete", zap.Error(err))
		}

		// 3. Connect to database and storage
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 4. Initialize Fiber app
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// RayID first so every request is traceable
		app.Use(rayid.New())

		// Request logging through Zap
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Health endpoint stays public
		app.Get("/healthz", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// Everything below requires the API key, when one is configured
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load features
		mgr := loader.NewManager(logg)
		mgr.Register(artwork.NewFeature(db, store, cfg.Storage, logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.Bool("auth", cfg.Server.AuthEnabled()),
			)
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
