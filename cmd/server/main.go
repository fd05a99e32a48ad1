package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/emergency_alert_system/internal/config"
	v1 "github.com/shenikar/emergency_alert_system/internal/handler/http/v1"
	"github.com/shenikar/emergency_alert_system/internal/repository"
	"github.com/shenikar/emergency_alert_system/internal/service"
	"github.com/shenikar/emergency_alert_system/internal/webhook"
	"github.com/shenikar/emergency_alert_system/pkg/logger"
	redisclient "github.com/shenikar/emergency_alert_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/emergency_alert_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Размер очереди уведомлений в памяти процесса
const memoryQueueSize = 1024

// notifier - очередь и воркер уведомлений оператора
type notifier struct {
	publisher webhook.Publisher
	worker    *webhook.Worker
	closeFn   func() error
}

// newNotifier включает уведомления только при заданном WEBHOOK_URL.
// С REDIS_ADDR очередь хранится в Redis, иначе в памяти процесса.
func newNotifier(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*notifier, error) {
	if cfg.WebhookURL == "" {
		log.Info("WEBHOOK_URL is not set, operator notifications are disabled")
		return &notifier{}, nil
	}

	if cfg.RedisAddr == "" {
		queue := webhook.NewMemoryQueue(memoryQueueSize)
		log.Info("Using in-memory notification queue")
		return &notifier{
			publisher: queue,
			worker:    webhook.NewWorker(queue, log, cfg),
		}, nil
	}

	client, err := redisclient.NewRedisClient(ctx, redisclient.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to Redis")

	queue := webhook.NewRedisQueue(client)
	return &notifier{
		publisher: queue,
		worker:    webhook.NewWorker(queue, log, cfg),
		closeFn:   client.Close,
	}, nil
}

func (n *notifier) start(ctx context.Context) {
	if n.worker != nil {
		n.worker.Start(ctx)
	}
}

func (n *notifier) stop() {
	if n.worker != nil {
		n.worker.Stop()
	}
	if n.closeFn != nil {
		_ = n.closeFn()
	}
}

// @title Emergency Alert API
// @version 1.0
// @description Intake service for emergency alerts reported by the public.
// @host localhost:8080
// @BasePath /
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notify, err := newNotifier(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to set up notifications: %v", err)
	}
	notify.start(ctx)

	alertRepo := repository.NewAlertRepository()

	// без вебхука publisher равен nil и события не публикуются
	alertService := service.NewAlertService(alertRepo, log, notify.publisher)

	handler := v1.NewHandler(alertService, log, cfg)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(v1.CORSMiddleware(cfg.CORSAllowOrigins))
	handler.RegisterRoutes(router.Group(""))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	notify.stop()

	log.Info("Server gracefully stopped")
}
