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
	"github.com/tu-usuario/inventario-hosteria/internal/application/auth"
	"github.com/tu-usuario/inventario-hosteria/internal/application/inventory"
	"github.com/tu-usuario/inventario-hosteria/internal/infrastructure/identity"
	"github.com/tu-usuario/inventario-hosteria/internal/infrastructure/metrics"
	infrapdf "github.com/tu-usuario/inventario-hosteria/internal/infrastructure/pdf"
	"github.com/tu-usuario/inventario-hosteria/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/inventario-hosteria/internal/interfaces/http"
	"github.com/tu-usuario/inventario-hosteria/pkg/config"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Si el almacén no está disponible el proceso arranca igual y responde 503
	// en todas las rutas de datos: así el frontend distingue "backend caído"
	// de "almacén caído".
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL; el API arranca degradado")
	} else {
		defer pool.Close()
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	provider := identity.NewProvider(userRepo, cfg.Token)
	authUC := auth.NewAuthUseCase(provider)
	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner, log)
	productQueryUC := inventory.NewProductQueryUseCase(productRepo, movementRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Hostería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	store := httpRouter.NewSessionStore(cfg.Session)
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ApplyMovement: applyMovementUC,
		ProductQuery:  productQueryUC,
		SheetPDF:      infrapdf.NewProductSheetGenerator(),
		Store:         store,
		Log:           log,
		Ready:         func() bool { return pool != nil },
	})

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.New(cfg.Metrics.Addr)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
