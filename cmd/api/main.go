package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/app"
	"github.com/chinazagideon/alx-travel-app/internal/clock"
	"github.com/chinazagideon/alx-travel-app/internal/config"
	"github.com/chinazagideon/alx-travel-app/internal/controller"
	"github.com/chinazagideon/alx-travel-app/internal/notify"
	"github.com/chinazagideon/alx-travel-app/internal/repository"
	"github.com/chinazagideon/alx-travel-app/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting booking API",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("Database ping failed", zap.Error(err))
	}

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(startupCtx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Очередь уведомлений
	queue, err := notify.NewRabbitMQ(cfg.AMQPURL, "", logger)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer queue.Close()

	// Репозитории
	bookingRepo := repository.NewBookingRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// Сервисы
	clk := clock.NewSystem()
	bookingService := service.NewBookingService(bookingRepo, propertyRepo, queue, clk, logger)
	propertyService := service.NewPropertyService(propertyRepo, logger)
	paymentService := service.NewPaymentService(paymentRepo, bookingRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, propertyRepo, logger)
	messageService := service.NewMessageService(messageRepo, userRepo, queue, clk, logger)
	availabilityService := service.NewAvailabilityService(propertyRepo, bookingRepo, clk, logger)

	// Фоновая сверка доступности и напоминания
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()

	scheduler := app.NewScheduler(availabilityService, bookingService, cfg.ReconcileInterval, logger)
	scheduler.Start(schedulerCtx)
	defer scheduler.Stop()

	router := controller.NewRouter(controller.Controllers{
		Bookings:   controller.NewBookingController(bookingService),
		Properties: controller.NewPropertyController(propertyService),
		Payments:   controller.NewPaymentController(paymentService),
		Reviews:    controller.NewReviewController(reviewService),
		Messages:   controller.NewMessageController(messageService),
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	logger.Info("API listening", zap.String("addr", cfg.HTTPAddr))

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("Shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
