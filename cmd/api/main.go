package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/Logistica-api/internal/application/analytics"
	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/cod"
	"github.com/jhoicas/Logistica-api/internal/application/deliveries"
	"github.com/jhoicas/Logistica-api/internal/application/ports"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/csvexport"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Logistica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Logistica-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Logistica-api/internal/interfaces/http"
	"github.com/jhoicas/Logistica-api/pkg/config"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché: Redis si está configurado; si no, sin caché.
	var cache ports.Cache = ports.NopCache{}
	if cfg.Redis.Enabled() {
		rc := infraredis.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "logistica:")
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, se continúa sin caché")
			_ = rc.Close()
		} else {
			cache = rc
			defer rc.Close()
		}
	}
	cacheTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second

	userRepo := postgres.NewUserRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	codRepo := postgres.NewCodRepository(pool)
	reportRepo := postgres.NewCodReportRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	settingsUC := usecase.NewSettingsUseCase(settingsRepo, cache, cacheTTL, log.Component("settings"))
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, settingsUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	deliveryUC := deliveries.NewDeliveryUseCase(deliveryRepo, userRepo)
	importUC := deliveries.NewImportUseCase(deliveryRepo, cfg.Import.MaxRows, log.Component("import")).WithCache(cache)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, cache, cacheTTL, log.Component("dashboard"))

	// Reportes COD: un renderer por formato, todos con el mismo formato de montos y fechas.
	formatter := cod.NewFormatter(cfg.Report.CurrencySymbol, cfg.Report.Locale, cfg.Report.TimeZone)
	codUC := cod.NewUseCase(codRepo, reportRepo, map[string]cod.Renderer{
		cod.FormatCSV:   csvexport.NewRenderer(formatter),
		cod.FormatExcel: excel.NewRenderer(formatter),
		cod.FormatPDF:   infrapdf.NewRenderer(formatter),
	}, formatter)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// Margen sobre el límite de archivo para el resto del formulario multipart.
		BodyLimit: int(cfg.Import.MaxBytes()) + 64*1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Logistica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		SettingsUC:     settingsUC,
		DeliveryUC:     deliveryUC,
		ImportUC:       importUC,
		CodUC:          codUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
		MaxUploadBytes: cfg.Import.MaxBytes(),
	})

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

	log.Info().Msg("aplicación detenida")
}
