package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/visit-counter/internal/config"
	"github.com/iliyamo/visit-counter/internal/database"
	"github.com/iliyamo/visit-counter/internal/handler"
	"github.com/iliyamo/visit-counter/internal/logger"
	"github.com/iliyamo/visit-counter/internal/queue"
	"github.com/iliyamo/visit-counter/internal/router"
	"github.com/iliyamo/visit-counter/internal/service"
)

func main() {
	envErr := config.LoadEnvFile() // .env is optional
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)
	defer func() { _ = log.Sync() }()
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("could not read .env", zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := database.NewProvider(cfg.DB, log)
	defer func() { _ = db.Close() }()
	if _, err := db.Acquire(ctx); err != nil {
		log.Warn("starting without database; pages will render degraded")
	}

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		if rdb = config.NewRedisClient(cfg.Redis); rdb == nil {
			log.Warn("redis unreachable; rate limiting disabled", zap.String("addr", cfg.Redis.Addr))
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	h := handler.NewVisitHandler(&cfg, db, log)
	if cfg.Events.Enabled() {
		h.Events = service.NewPublisher(cfg.Events, log)
		if cfg.Events.ConsumerEnabled {
			c := &queue.Consumer{URL: cfg.Events.BrokerURL, Queue: cfg.Events.Queue, LogPath: cfg.Events.LogPath, Log: log}
			go func() {
				if err := c.Run(ctx); err != nil {
					log.Warn("visit consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	e := router.New(&cfg, h, rdb, log)
	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
