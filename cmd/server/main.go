package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rajasharmaa/dttt/internal/adapter/httpapi"
	natsadapter "github.com/rajasharmaa/dttt/internal/adapter/messaging/nats"
	"github.com/rajasharmaa/dttt/internal/adapter/repository/cache"
	"github.com/rajasharmaa/dttt/internal/adapter/repository/mongodb"
	"github.com/rajasharmaa/dttt/internal/config"
	"github.com/rajasharmaa/dttt/internal/mailer"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
	"github.com/rajasharmaa/dttt/internal/platform/metrics"
	"github.com/rajasharmaa/dttt/internal/session"
	"github.com/rajasharmaa/dttt/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	productCacheTTL = 5 * time.Minute
)

func main() {
	// A missing .env is fine in containers where the environment is injected.
	_ = godotenv.Load()

	appLogger := logger.New(logger.DefaultConfig())
	defer appLogger.Sync()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger = appLogger.Named(cfg.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	appLogger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := mongodb.NewUserRepository(db, appLogger)
	productRepo := mongodb.NewProductRepository(db, appLogger)
	inquiryRepo := mongodb.NewInquiryRepository(db, appLogger)

	var redisClient *redis.Client
	var sessionStore session.Store
	var memoryStore *session.MemoryStore
	var productCache usecase.ProductCache

	switch cfg.SessionBackend {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisStore, err := session.NewRedisStore(ctx, redisClient, session.TTL)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Using Redis session store", zap.String("addr", cfg.RedisAddr))
		sessionStore = redisStore
		productCache = cache.NewProductCache(redisClient, productCacheTTL)
	default:
		memoryStore = session.NewMemoryStore(session.TTL)
		sessionStore = memoryStore
		appLogger.Info("Using in-memory session store")
	}

	var events usecase.EventPublisher
	var natsPublisher *natsadapter.Publisher
	if cfg.NATSURL != "" {
		natsPublisher, err = natsadapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		events = natsPublisher
	}

	var inquiryMailer mailer.Mailer
	if cfg.SMTPHost != "" {
		inquiryMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, appLogger)
		appLogger.Info("SMTP mail notifications enabled", zap.String("host", cfg.SMTPHost))
	}

	authUC := usecase.NewAuthUsecase(userRepo, sessionStore, events, appLogger)
	productUC := usecase.NewProductUsecase(productRepo, productCache, appLogger)
	inquiryUC := usecase.NewInquiryUsecase(inquiryRepo, events, inquiryMailer, cfg.InquiryNotifyEmail, appLogger)

	metricsManager := metrics.NewManager(cfg.ServiceName)
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:           authUC,
		Products:       productUC,
		Inquiries:      inquiryUC,
		Sessions:       sessionStore,
		Mongo:          mongoClient,
		Metrics:        metricsManager,
		Logger:         appLogger,
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.AllowedOrigins(),
		SecureCookies:  cfg.IsProduction(),
		DevMode:        !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server starting", zap.String("port", cfg.HTTPPort))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", zap.Error(err))
		}
	case sig := <-quit:
		appLogger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful HTTP shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			appLogger.Error("Forced HTTP close failed", zap.Error(closeErr))
		}
	}

	if natsPublisher != nil {
		natsPublisher.Close()
	}
	if memoryStore != nil {
		memoryStore.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		appLogger.Error("Failed to disconnect MongoDB", zap.Error(err))
	}

	appLogger.Info("Server stopped")
}
