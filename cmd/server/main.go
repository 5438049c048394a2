package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gobwas/ws"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/api"
	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/feed"
	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/gateway"
	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/hub"
	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/seed"
	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/store"
	"github.com/NOT44353/Test-Avalants-Final/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "local" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	st := store.New()

	if cfg.Seed.OnBoot {
		start := time.Now()
		result := seed.NewSeeder(st, logger, cfg.Seed.RandomSeed).Run(cfg.Seed)
		logger.Info("Boot seeding complete",
			zap.Int("accounts", result.Accounts),
			zap.Int("transactions", result.Transactions),
			zap.Int("nodes", result.Nodes),
			zap.Int("quotes", result.Quotes),
			zap.Duration("took", time.Since(start)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsHub := hub.NewHub(st, logger, cfg.WS, hub.RealClock{})
	wsHub.Run(ctx)

	var limiter api.RateLimiter
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		limiter = api.NewRedisRateLimiter(rdb, cfg.Redis.RateLimitWindow, cfg.Redis.RateLimitMax)
		logger.Info("Redis rate limiting enabled", zap.String("addr", cfg.Redis.Addr))
	}

	mux := http.NewServeMux()
	api.New(st, logger, limiter, cfg.Seed).Routes(mux)

	mux.HandleFunc("/ws/quotes", func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			logger.Warn("WebSocket upgrade failed", zap.Error(err))
			return
		}
		gateway.NewClient(conn, wsHub, logger).Start()
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	feedDone := make(chan struct{})
	if cfg.Kafka.Enabled {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		consumer := feed.NewConsumer(logger, reader, st, cfg.Kafka.Workers)
		go func() {
			defer close(feedDone)
			defer reader.Close()
			if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Feed consumer stopped", zap.Error(err))
			}
		}()
		logger.Info("Kafka feed consumer started",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	} else {
		close(feedDone)
	}

	srv := &http.Server{Addr: cfg.App.Port, Handler: mux}

	go func() {
		logger.Info("Server Started", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP Error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	wsHub.Shutdown()
	cancel()
	<-feedDone

	logger.Info("Shutdown Complete")
}
