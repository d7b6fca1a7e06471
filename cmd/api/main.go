package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/bloodbank-api/internal/application/analytics"
	"github.com/jhoicas/bloodbank-api/internal/application/auth"
	"github.com/jhoicas/bloodbank-api/internal/application/inventory"
	"github.com/jhoicas/bloodbank-api/internal/application/reports"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
	"github.com/jhoicas/bloodbank-api/internal/application/usecase"
	"github.com/jhoicas/bloodbank-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/bloodbank-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bloodbank-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bloodbank-api/internal/interfaces/http"
	"github.com/jhoicas/bloodbank-api/pkg/config"
	"github.com/jhoicas/bloodbank-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("reserve_units", cfg.Allocation.ReserveUnits).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	recorder := metrics.New()

	userRepo := postgres.NewUserRepository(pool)
	hospitalRepo := postgres.NewHospitalRepository(pool)
	donorRepo := postgres.NewDonorRepository(pool)
	recipientRepo := postgres.NewRecipientRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	requestRepo := postgres.NewBloodRequestRepository(pool)
	reportRepo := postgres.NewReportRepository(pool, cfg.Allocation.ExpiringSoonDays)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, hospitalRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	hospitalUC := usecase.NewHospitalUseCase(hospitalRepo, userRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	profileUC := usecase.NewProfileUseCase(donorRepo, recipientRepo)
	appointmentUC := usecase.NewAppointmentUseCase(appointmentRepo, donorRepo, hospitalRepo, inventoryRepo)
	hospitalCheck := usecase.NewHospitalAccessService(hospitalRepo)
	inventoryUC := inventory.NewInventoryUseCase(inventoryRepo, donorRepo, cfg.Allocation.ExpiringSoonDays, recorder, log)
	requestUC := requests.NewRequestUseCase(
		requestRepo, inventoryRepo, recipientRepo, hospitalRepo,
		txRunner, recorder, requests.Config{ReserveUnits: cfg.Allocation.ReserveUnits}, log,
	)
	dashboardUC := appanalytics.NewDashboardUseCase(reportRepo, hospitalRepo, userRepo)

	// PDF: reporte de inventario por hospital
	reportUC := reports.NewPDFUseCase(hospitalRepo, inventoryRepo, infrapdf.NewMarotoReportGenerator(), cfg.Allocation.ExpiringSoonDays)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Blood Bank API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		HospitalUC:    hospitalUC,
		UserUC:        userUC,
		ProfileUC:     profileUC,
		AppointmentUC: appointmentUC,
		InventoryUC:   inventoryUC,
		RequestUC:     requestUC,
		DashboardUC:   dashboardUC,
		ReportUC:      reportUC,
		HospitalCheck: hospitalCheck,
		JWTSecret:     cfg.JWT.Secret,
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Allocation.ExpirySweepMinutes > 0 {
		go runExpirySweep(sweepCtx, inventoryUC, time.Duration(cfg.Allocation.ExpirySweepMinutes)*time.Minute, log)
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
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runExpirySweep marca como expired las unidades vencidas de todos los hospitales
// al arrancar y luego cada interval.
func runExpirySweep(ctx context.Context, uc *inventory.InventoryUseCase, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := uc.ExpireOverdue(ctx, ""); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("barrido de vencimientos")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
