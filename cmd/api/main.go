package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/grayvally/invoicer-api/internal/application/draft"
	"github.com/grayvally/invoicer-api/internal/application/export"
	"github.com/grayvally/invoicer-api/internal/application/leads"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/domain/repository"
	"github.com/grayvally/invoicer-api/internal/infrastructure/kv"
	infrapdf "github.com/grayvally/invoicer-api/internal/infrastructure/pdf"
	"github.com/grayvally/invoicer-api/internal/infrastructure/ubl"
	httpRouter "github.com/grayvally/invoicer-api/internal/interfaces/http"
	"github.com/grayvally/invoicer-api/pkg/config"
	"github.com/grayvally/invoicer-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("starting application")

	if cfg.Invoice.TokenSecret == "" {
		if cfg.App.Env != "development" {
			log.Fatal().Msg("INVOICE_TOKEN_SECRET is required outside development")
		}
		cfg.Invoice.TokenSecret = "dev-only-secret"
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open draft store")
	}
	defer store.Close()

	seed := entity.DraftSeed{
		Issuer: entity.PartyInfo{
			Name:    cfg.Invoice.IssuerName,
			Address: cfg.Invoice.IssuerAddress,
			Email:   cfg.Invoice.IssuerEmail,
			Phone:   cfg.Invoice.IssuerPhone,
			Website: cfg.Invoice.IssuerWebsite,
			TaxID:   cfg.Invoice.IssuerTaxID,
		},
		Currency: entity.Currency(cfg.Invoice.DefaultCurrency),
		Notes:    cfg.Invoice.DefaultNotes,
		Terms:    cfg.Invoice.DefaultTerms,
	}

	draftSvc := draft.NewService(ctx, store, seed, log)
	exportSvc := export.NewService(draftSvc, infrapdf.NewGenerator(), ubl.NewBuilder(), cfg.Invoice.LogoRef, log)
	leadSvc := leads.NewService(cfg.Leads.Endpoint, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GrayVally Invoicer API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Drafts:      draftSvc,
		Exports:     exportSvc,
		Leads:       leadSvc,
		PIN:         cfg.Invoice.PIN,
		TokenSecret: cfg.Invoice.TokenSecret,
		Issuer:      cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// openStore picks the draft KV backend from configuration.
func openStore(ctx context.Context, cfg config.StorageConfig) (repository.KVStore, error) {
	switch cfg.Driver {
	case "", "memory":
		return kv.NewMemoryStore(), nil
	case "sqlite":
		return kv.NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		return kv.NewPostgresStore(ctx, cfg)
	case "redis":
		return kv.NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
