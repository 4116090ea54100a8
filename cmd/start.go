package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-access-manager/core/loader"
	"ai-access-manager/core/logger"
	"ai-access-manager/core/middleware/auth"
	"ai-access-manager/core/middleware/rayid"
	"ai-access-manager/feature/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "ai-access-manager/docs/swagger"
)

// @title AI Access Manager API
// @version 1.0
// @description API for managing user access across AI providers.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the access manager server",
	Long:  `Starts the HTTP server exposing the user operations over every configured provider.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load configuration, logger, store and providers
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer rt.Close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)
		cfg := rt.cfg

		if !cfg.Server.IsProtected() {
			logg.Warn("SERVER_API_KEY is empty, the API is unauthenticated")
		}

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(users.NewFeature(
			rt.engine,
			time.Duration(cfg.Server.CacheTTLSeconds)*time.Second,
			time.Duration(cfg.Server.RequestTimeoutSeconds)*time.Second,
			logg,
		))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with ray id
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

		// 3. Auth, swagger stays public
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, PublicPrefixes: []string{"/swagger"}}))
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.Strings("providers", rt.engine.ProviderNames()))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
