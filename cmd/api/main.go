package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/edumeet/notifier/pkg/validator"

	"github.com/edumeet/notifier/internal/adapter/handler"
	"github.com/edumeet/notifier/internal/adapter/repository"
	"github.com/edumeet/notifier/internal/infrastructure/cache"
	"github.com/edumeet/notifier/internal/infrastructure/database"
	"github.com/edumeet/notifier/internal/infrastructure/external/mailer"
	"github.com/edumeet/notifier/internal/infrastructure/storage"
	mailUsecase "github.com/edumeet/notifier/internal/usecase/mail"
	"github.com/edumeet/notifier/internal/usecase/render"
	reportUsecase "github.com/edumeet/notifier/internal/usecase/report"
	"github.com/edumeet/notifier/pkg/config"
	"github.com/edumeet/notifier/pkg/jwt"
	"github.com/edumeet/notifier/templates"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	renderCache := cache.NewRedisStore(redisClient)

	// Initialize object storage for archived documents
	log.Println("🗄️  Connecting to object storage...")
	archive, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	reportRepo := repository.NewReportRepository(db)
	emailLogRepo := repository.NewEmailLogRepository(db)

	// Initialize template engine
	log.Println("📄 Loading templates...")
	engine := render.NewEngine(templates.FS)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize report service
	log.Println("📊 Initializing report service...")
	reportService := reportUsecase.NewService(
		reportRepo,
		engine,
		renderCache,
		archive,
		logger,
		cfg.Site.Name,
		cfg.Redis.RenderTTL,
	)

	// Initialize mail sender
	var sender mailUsecase.Sender
	switch cfg.Mail.Provider {
	case "resend":
		log.Println("📧 Using Resend for email delivery")
		sender = mailer.NewResendSender(cfg.Mail.APIKey)
	default:
		log.Println("⚠️  Email delivery in LOG mode (no real delivery)")
		sender = mailer.NewLogSender(logger)
	}

	// Initialize mail service
	log.Println("✉️  Initializing mail service...")
	mailService := mailUsecase.NewService(
		emailLogRepo,
		engine,
		sender,
		logger,
		cfg.MailFrom(),
		cfg.Site.Name,
		cfg.Site.Protocol,
		cfg.Site.Domain,
		cfg.Mail.MaxAttempts,
	)

	// Initialize background email dispatcher
	log.Println("👷 Starting email dispatcher...")
	dispatcher := mailUsecase.NewDispatcher(mailService, logger, 4, 256)
	dispatcher.Start()
	defer dispatcher.Stop()

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	reportHandler := handler.NewReportHandler(reportService, logger)
	mailHandler := handler.NewMailHandler(mailService, dispatcher, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, reportHandler, mailHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
