package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/warehouse-manager/internal/application/warehouse"
	"github.com/jhoicas/warehouse-manager/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-manager/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-manager/internal/interfaces/console"
	httpRouter "github.com/jhoicas/warehouse-manager/internal/interfaces/http"
	"github.com/jhoicas/warehouse-manager/pkg/config"
	"github.com/jhoicas/warehouse-manager/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("interface", cfg.App.Interface).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var svc *warehouse.Service
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		svc = warehouse.NewService(store.Products(), store.Orders(), store, log)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.Storage.Migrate {
			if err := postgres.MigrateUp(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
		}

		txRunner := postgres.NewTxRunner(pool)
		svc = warehouse.NewService(
			postgres.NewProductRepository(txRunner),
			postgres.NewOrderRepository(txRunner),
			txRunner,
			log,
		)
	}

	if cfg.App.Interface == config.InterfaceHTTP {
		serveHTTP(ctx, cfg, svc, log)
	} else {
		ui := console.NewUI(svc, os.Stdin, os.Stdout, log)
		if err := ui.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("consola finalizada con error")
		}
	}

	log.Info().Msg("aplicación detenida")
}

// serveHTTP atiende la API hasta que ctx se cancela.
func serveHTTP(ctx context.Context, cfg *config.Config, svc *warehouse.Service, log *logger.Logger) {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{Service: svc, Log: log})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
