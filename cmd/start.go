package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sheet-graph/core/llm"
	"sheet-graph/core/loader"
	"sheet-graph/core/logger"
	"sheet-graph/core/middleware/auth"
	"sheet-graph/core/middleware/rayid"
	"sheet-graph/core/reconcile"
	"sheet-graph/feature/ask"
	"sheet-graph/feature/ingest"
	"sheet-graph/feature/sheets"
	"sheet-graph/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "sheet-graph/docs/swagger"
)

// @title Sheet Graph API
// @version 1.0
// @description Ingests spreadsheets into a Neo4j property graph and keeps it in sync with cell edits.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sheet graph server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		rt, err := bootstrap(ctx, bootstrapOptions{})
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.Close(ctx)
		logg := rt.logger
		cfg := rt.cfg
		zap.ReplaceGlobals(logg)

		if err := rt.store.Ping(ctx); err != nil {
			logg.Warn("Graph store is not reachable yet", zap.Error(err))
		}

		reconciler := reconcile.NewReconciler(rt.registry, rt.store, logg, reconcile.WithMaxAge(cfg.Registry.MaxAge()))

		var generator llm.Generator
		if client, err := llm.NewClient(cfg.LLM, logg); err != nil {
			logg.Warn("Question answering disabled", zap.Error(err))
		} else {
			generator = client
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(ingest.NewFeature(rt.ingest, logg))
		mgr.Register(sheets.NewFeature(reconciler, logg))
		mgr.Register(ask.NewFeature(ask.NewService(generator, rt.store, logg)))
		mgr.Register(status.NewFeature(status.NewService(rt.store, rt.registry, rt.history, rt.client, cfg.Storage.Bucket, logg)))

		// RayID must be first to trace everything
		app.Use(rayid.New())

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

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/swagger")
			},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

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
