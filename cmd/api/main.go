package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/scholaris/sis-portal-api/internal/config"
	"github.com/scholaris/sis-portal-api/internal/database"
	"github.com/scholaris/sis-portal-api/internal/handler"
	"github.com/scholaris/sis-portal-api/internal/middleware"
	"github.com/scholaris/sis-portal-api/internal/repository"
	"github.com/scholaris/sis-portal-api/internal/router"
	"github.com/scholaris/sis-portal-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	auditRepo := repository.NewAuditLogRepository(db)
	yearLevelRepo := repository.NewYearLevelRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	schoolYearRepo := repository.NewSchoolYearRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	accessCodeRepo := repository.NewAccessCodeRepository(db)
	reportRepo := repository.NewReportRepository(db)

	auditService := service.NewAuditService(auditRepo, cfg.DisplayLocation(), logger)
	events := service.NewRegistrationEventPublisher(natsConn, "sis.registrations", logger)

	yearLevelService := service.NewYearLevelService(yearLevelRepo, validate, auditService, logger)
	registrationService := service.NewRegistrationService(registrationRepo, yearLevelRepo, schoolYearRepo, accessCodeRepo, validate, auditService, events, logger)
	studentService := service.NewStudentService(studentRepo, auditService, logger)
	policyService := service.NewPolicyService(policyRepo, validate, auditService, logger)
	accessCodeService := service.NewAccessCodeService(accessCodeRepo, validate, auditService, logger)
	reportService := service.NewReportService(reportRepo, redisClient, cfg.ReportCacheTTL, auditService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AccessCodeHandler:   handler.NewAccessCodeHandler(accessCodeService, logger),
		RegistrationHandler: handler.NewRegistrationHandler(registrationService, logger),
		YearLevelHandler:    handler.NewYearLevelHandler(yearLevelService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		PolicyHandler:       handler.NewPolicyHandler(policyService, logger),
		ReportHandler:       handler.NewReportHandler(reportService, logger),
		SystemLogHandler:    handler.NewSystemLogHandler(auditService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
