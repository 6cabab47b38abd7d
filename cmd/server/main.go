package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"motorhub.backend/internal/config"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/internal/infrastructure/blob"
	"motorhub.backend/internal/infrastructure/datasources/postgres"
	"motorhub.backend/internal/infrastructure/feed"
	"motorhub.backend/internal/infrastructure/models"
	repoimpl "motorhub.backend/internal/infrastructure/repositories"
	"motorhub.backend/internal/interfaces/http/handlers"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/usecases"
	"motorhub.backend/pkg/jwt"
	"motorhub.backend/pkg/logger"
	"motorhub.backend/pkg/metrics"
	"motorhub.backend/pkg/redis"
	"motorhub.backend/pkg/tracing"
)

var (
	loadDotenv  = godotenv.Load
	loadCfg     = config.Load
	initLog     = logger.Init
	initRedis   = redis.Init
	initTracing = tracing.Init
	openDB      = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		sqlDB, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewGorm(sqlDB)
	}
	migrate   = models.AutoMigrate
	runServer = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	ctx := context.Background()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	shutdownTracing, err := initTracing(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	changeFeed, err := newChangeFeed(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	logger.Info(ctx, "Connected to PostgreSQL via GORM")

	if cfg.Database.AutoMigrate {
		if err := migrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	if err := feed.RegisterCallbacks(db, changeFeed); err != nil {
		return fmt.Errorf("failed to register change callbacks: %w", err)
	}

	blobStore, err := blob.NewLocalStore(cfg.Storage.BlobDir, cfg.Storage.PublicBaseURL, cfg.Storage.MaxBytes)
	if err != nil {
		return err
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Repositories
	userRepo := repoimpl.NewUserRepository(db)
	listingRepo := repoimpl.NewListingRepository(db)
	bookingRepo := repoimpl.NewBookingRepository(db)
	rentalRepo := repoimpl.NewRentalRepository(db)
	paymentRepo := repoimpl.NewPaymentRepository(db)
	notificationRepo := repoimpl.NewNotificationRepository(db)
	broadcastRepo := repoimpl.NewBroadcastRepository(db)
	inquiryRepo := repoimpl.NewInquiryRepository(db)

	// Usecases
	dispatcher := usecases.NewNotificationDispatcher(notificationRepo, userRepo)
	resolver := usecases.NewActorResolver(userRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	listingUsecase := usecases.NewListingUsecase(listingRepo, dispatcher)
	fulfillmentUsecase := usecases.NewFulfillmentUsecase(bookingRepo, rentalRepo, listingRepo, userRepo, dispatcher)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, listingRepo, rentalRepo, userRepo, dispatcher)
	kycUsecase := usecases.NewKYCUsecase(userRepo, dispatcher)
	userUsecase := usecases.NewUserUsecase(userRepo, listingRepo, dispatcher)
	notificationUsecase := usecases.NewNotificationUsecase(notificationRepo, broadcastRepo, dispatcher)
	inquiryUsecase := usecases.NewInquiryUsecase(inquiryRepo, listingRepo, userRepo, dispatcher)
	statsUsecase := usecases.NewStatsUsecase(userRepo, listingRepo, paymentRepo, paymentUsecase)
	mediaUsecase := usecases.NewMediaUsecase(blobStore)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(changeFeed, listingUsecase, fulfillmentUsecase, paymentUsecase, notificationUsecase, userUsecase, inquiryUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware("/health", "/metrics"))
	if cfg.Telemetry.MetricsEnabled {
		r.Use(metrics.HTTPMetricsMiddleware())
		registerMetricsRoute(r)
	}

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	r.Static("/blobs", blobStore.Dir())
	registerAPIV1Routes(r, routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		listingHandler:      handlers.NewListingHandler(listingUsecase),
		fulfillmentHandler:  handlers.NewFulfillmentHandler(fulfillmentUsecase),
		paymentHandler:      handlers.NewPaymentHandler(paymentUsecase),
		kycHandler:          handlers.NewKYCHandler(kycUsecase),
		userHandler:         handlers.NewUserHandler(userUsecase),
		notificationHandler: handlers.NewNotificationHandler(notificationUsecase),
		inquiryHandler:      handlers.NewInquiryHandler(inquiryUsecase),
		adminHandler:        handlers.NewAdminHandler(statsUsecase),
		mediaHandler:        handlers.NewMediaHandler(mediaUsecase),
		streamHandler:       handlers.NewStreamHandler(subscriptionUsecase, cfg.Server.AllowedOrigins),
		authMiddleware:      middleware.AuthMiddleware(jwtService, resolver),
		optionalAuth:        middleware.OptionalAuthMiddleware(jwtService, resolver),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           otelhttp.NewHandler(r, tracing.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "MotorHub backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)
	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newChangeFeed publishes over redis. Outside production an unreachable
// redis falls back to an in-process feed, which only serves one instance.
func newChangeFeed(ctx context.Context, cfg *config.Config) (repositories.ChangeFeed, error) {
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		if cfg.Server.Env == "production" {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Warn(ctx, "Redis unavailable, using in-process change feed", zap.Error(err))
		return feed.NewMemoryFeed(), nil
	}
	logger.Info(ctx, "Redis initialized")
	return feed.NewRedisFeed(cfg.Redis.FeedPrefix), nil
}
