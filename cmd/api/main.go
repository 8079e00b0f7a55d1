package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-inquiry-backend/config"
	_ "go-inquiry-backend/docs" // Important for Swagger
	"go-inquiry-backend/internal/delivery/http/middleware"
	v1 "go-inquiry-backend/internal/delivery/http/v1"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/internal/repository/objectstore"
	"go-inquiry-backend/internal/repository/postgres"
	"go-inquiry-backend/internal/usecase"
	"go-inquiry-backend/pkg/database"
	"go-inquiry-backend/pkg/email"
	"go-inquiry-backend/pkg/logger"
	"go-inquiry-backend/pkg/redis"
	"go-inquiry-backend/pkg/security/antivirus"
	"go-inquiry-backend/pkg/storage"
	"go-inquiry-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title           Gayatri Electricals Inquiry API
// @version         1.0
// @description     Contact form and quote request intake for the company website.
// @host            localhost:5000
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Log.Sync() }()
	logger.Log.Info("Starting inquiry backend", zap.String("port", cfg.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database (optional; the service runs email-only without it)
	db := connectDatabase(ctx, cfg.Database)
	if db != nil {
		defer database.Close(db)
	}

	// 4. Setup Repositories. Interfaces stay nil without a database so the
	// usecases see "no storage" rather than a typed nil.
	var (
		contactRepo  domain.ContactRepository
		quoteRepo    domain.QuoteRepository
		emailLogRepo domain.EmailLogRepository
		dbPing       func(context.Context) error
	)
	if db != nil {
		contactRepo = postgres.NewContactRepository(db)
		quoteRepo = postgres.NewQuoteRepository(db)
		emailLogRepo = postgres.NewEmailLogRepository(db)
		dbPing = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	// 5. Setup Email Service
	sender := email.NewSMTPSender(cfg.Email)
	if !sender.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - submissions will be rejected")
	}

	pool, err := usecase.NewDispatchPool(cfg.DispatchWorkers, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to create dispatch pool", zap.Error(err))
	}
	defer pool.Release()

	// 6. Setup UseCases
	deps := usecase.SubmissionDeps{
		Email:      cfg.Email,
		Validate:   validation.New(),
		Dispatcher: usecase.NewDispatcher(sender, pool, cfg.Email.SendTimeout),
		EmailLogs:  emailLogRepo,
	}
	contactUC := usecase.NewContactUsecase(deps, contactRepo)
	quoteUC := usecase.NewQuoteUsecase(deps, quoteRepo, quoteOptions(ctx, cfg.Attachment)...)
	healthUC := usecase.NewHealthUsecase(dbPing, cfg.Email)

	// 7. Setup Rate Limiter (Redis when reachable, in-memory otherwise)
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Info("Redis not configured, rate limiting in memory")
	case err != nil:
		logger.Log.Warn("Redis unavailable, rate limiting in memory", zap.Error(err))
	default:
		defer func() { _ = redisClient.Close() }()
	}
	limiter := middleware.NewRateLimiter(
		middleware.SubmitRateLimitConfig(cfg.RateLimit.SubmitThreshold, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second),
		redisClient,
	)
	go limiter.Cleanup(ctx, 5*time.Minute)

	// 8. Setup Router
	gin.SetMode(cfg.GinMode)
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:   contactUC,
		QuoteUC:     quoteUC,
		HealthUC:    healthUC,
		RateLimiter: limiter,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", zap.Error(err))
			stop()
		}
	}()
	logger.Log.Info("Server listening",
		zap.String("addr", srv.Addr),
		zap.Bool("database", db != nil),
		zap.Bool("email", cfg.Email.IsConfigured()),
	)

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	// In-flight submissions get the full send timeout to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Email.SendTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}

func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) *gorm.DB {
	db, err := database.NewPostgresConnection(ctx, cfg.DSN(), database.ConnectOptions{})
	if errors.Is(err, database.ErrNotConfigured) {
		logger.Log.Info("Database not configured, running in email-only mode")
		return nil
	}
	if err != nil {
		logger.Log.Warn("Database connection failed, running in email-only mode", zap.Error(err))
		return nil
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(db, postgres.Models()...); err != nil {
			logger.Log.Warn("Database migration failed", zap.Error(err))
		}
	}
	logger.Log.Info("Database connected")
	return db
}

// quoteOptions enables the malware scan and the attachment archive when
// they are configured.
func quoteOptions(ctx context.Context, cfg config.AttachmentConfig) []usecase.QuoteOption {
	var opts []usecase.QuoteOption

	if cfg.ClamAVAddress != "" {
		opts = append(opts, usecase.WithScanner(antivirus.NewClamAVScanner(cfg.ClamAVAddress, 30*time.Second)))
		logger.Log.Info("Attachment malware scanning enabled", zap.String("clamd", cfg.ClamAVAddress))
	}

	if cfg.ArchiveEnabled() {
		client, err := storage.NewS3Client(ctx, storage.NewS3ClientConfig(cfg))
		if err != nil {
			logger.Log.Warn("Attachment archive disabled", zap.Error(err))
			return opts
		}
		opts = append(opts, usecase.WithArchive(objectstore.NewAttachmentArchive(client, cfg.Bucket)))
		logger.Log.Info("Attachment archive enabled", zap.String("bucket", cfg.Bucket))
	}
	return opts
}
