package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/morada-homes/service-reservation/internal/adapter"
	"github.com/morada-homes/service-reservation/internal/application"
	"github.com/morada-homes/service-reservation/internal/auth"
	"github.com/morada-homes/service-reservation/internal/config"
	"github.com/morada-homes/service-reservation/internal/database"
	"github.com/morada-homes/service-reservation/internal/domain/reservation"
	"github.com/morada-homes/service-reservation/internal/handler"
	"github.com/morada-homes/service-reservation/internal/health"
	"github.com/morada-homes/service-reservation/internal/kafka"
	"github.com/morada-homes/service-reservation/internal/logger"
	"github.com/morada-homes/service-reservation/internal/middleware"
	"github.com/morada-homes/service-reservation/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, "service-reservation")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-reservation",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.ReservationModel{},
			&repository.PaymentModel{},
			&repository.PropertyModel{},
			&repository.UserModel{},
		); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 24*time.Hour)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer kafkaProducer.Close()

	// Initialize payment provider adapters over their file-backed record sources
	stripeSource := adapter.NewFileStripeSource(cfg.PaymentConfig.StripeDataFile)
	paypalSource := adapter.NewFilePayPalSource(cfg.PaymentConfig.PayPalDataFile)
	processors := map[string]adapter.PaymentProcessor{
		"stripe": adapter.NewStripeAdapter(stripeSource, zapLogger),
		"paypal": adapter.NewPayPalAdapter(paypalSource, zapLogger),
	}

	// Initialize repositories
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize application services
	stateRegistry := reservation.NewStateRegistry()
	reservationService := application.NewReservationService(reservationRepo, propertyRepo, userRepo, stateRegistry, kafkaProducer, zapLogger)
	paymentService := application.NewPaymentService(reservationRepo, paymentRepo, processors, kafkaProducer, zapLogger)
	propertyService := application.NewPropertyService(propertyRepo, zapLogger)
	userService := application.NewUserService(userRepo, jwtManager, zapLogger)

	// Initialize HTTP handlers
	reservationHandler := handler.NewReservationHandler(reservationService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(reservationService, paymentService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-reservation")
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	userHandler.RegisterRoutes(apiV1, jwtManager)
	propertyHandler.RegisterRoutes(apiV1, jwtManager)
	reservationHandler.RegisterRoutes(apiV1, jwtManager)
	paymentHandler.RegisterRoutes(apiV1, jwtManager)
	adminHandler.RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-reservation...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("service-reservation stopped")
}
