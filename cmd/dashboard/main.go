package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	infralomemis "github.com/med-integems/lomemis-dashboard/internal/infrastructure/lomemis"
	infrapdf "github.com/med-integems/lomemis-dashboard/internal/infrastructure/pdf"
	infraprefs "github.com/med-integems/lomemis-dashboard/internal/infrastructure/prefs"
	httpRouter "github.com/med-integems/lomemis-dashboard/internal/interfaces/http"
	"github.com/med-integems/lomemis-dashboard/pkg/config"
	"github.com/med-integems/lomemis-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("starting dashboard service")

	client := infralomemis.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	store := infraprefs.NewStore(cfg.Prefs.Path, log)
	renderer := infrapdf.NewMarotoSummaryRenderer()

	registry := httpRouter.NewRegistry(cfg.Session.TTL)
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	registry.StartSweeper(sweepCtx, cfg.Session.SweepInterval)

	provider := httpRouter.NewSessionProvider(dashboard.Deps{
		API:   client,
		Prefs: store,
		PDF:   renderer,
		Log:   log,
	}, registry)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LoMEMIS Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  cfg.App.Name,
			"sessions": registry.Len(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Provider:  provider,
		JWTSecret: cfg.Auth.JWTSecret,
		JWTIssuer: cfg.Auth.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, draining server...")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("dashboard service stopped")
}
