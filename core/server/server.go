package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tutortrack/core/cache"
	"tutortrack/core/config"
	"tutortrack/core/constants"
	"tutortrack/core/database"
	"tutortrack/core/logger"
	"tutortrack/core/middleware"
	"tutortrack/core/queue"
	"tutortrack/core/storage"
	"tutortrack/modules/auth"
	"tutortrack/modules/event"
	"tutortrack/modules/group"
	"tutortrack/modules/notification"
	"tutortrack/modules/payment"
	"tutortrack/modules/pupil"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires every dependency, registers the modules and serves until a
// shutdown signal arrives
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logger.Level, cfg.Logger.Format)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	redisCache, err := cache.InitRedis(cfg)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	objectStorage, err := storage.NewS3Storage(cfg)
	if err != nil {
		// Avatar uploads fail until a bucket is configured; everything else works
		logger.Warn("object storage unavailable", "error", err)
		objectStorage = nil
	}

	taskQueue := queue.NewQueue(cfg)
	defer taskQueue.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	private := api.Group("/private")

	authService := auth.NewService(db, cfg, redisCache, objectStorage)
	mw := middleware.NewMiddleware(authService)

	auth.Init(api, private, authService, mw)
	pupil.Init(private, db, mw)
	group.Init(private, db, mw)
	payment.Init(private, db, mw)
	event.Init(private, db, mw, redisCache, taskQueue)
	notificationWorker := notification.Init(private, db, mw)

	asynqServer := queue.NewServer(cfg)
	mux := asynq.NewServeMux()
	notificationWorker.Register(mux)

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			logger.Error("asynq server stopped", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	asynqServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
