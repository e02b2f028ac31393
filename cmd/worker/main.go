package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/app"
	"github.com/chinazagideon/alx-travel-app/internal/config"
	"github.com/chinazagideon/alx-travel-app/internal/notify"
	"github.com/chinazagideon/alx-travel-app/internal/repository"
	"github.com/chinazagideon/alx-travel-app/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Воркер уведомлений: читает задания из очереди, собирает письма
// и отдаёт их в доставку. Сбой доставки возвращает задание в очередь.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting notification worker",
		zap.String("environment", cfg.Environment),
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

	queue, err := notify.NewRabbitMQ(cfg.AMQPURL, "", logger)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer queue.Close()

	// Без настроенного SMTP письма уходят в лог
	var mailer notify.Mailer
	if cfg.SMTPAddr != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	} else {
		logger.Warn("SMTP_ADDR not set, emails will be logged only")
		mailer = notify.NewLogMailer(logger)
	}

	notificationService := service.NewNotificationService(
		repository.NewBookingRepository(pool),
		repository.NewPropertyRepository(pool),
		repository.NewUserRepository(pool),
		repository.NewMessageRepository(pool),
		mailer,
		logger,
	)

	if err := queue.Consume(notificationService.HandleJob); err != nil {
		logger.Fatal("Failed to start consumer", zap.Error(err))
	}

	logger.Info("Worker consuming notifications")

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	logger.Info("Worker stopped")
}
