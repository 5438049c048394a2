package main

import (
	"context"
	"hash/fnv"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/ticker/internal/ticker"
	"github.com/NOT44353/Test-Avalants-Final/pkg/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if !cfg.Kafka.Enabled {
		logger.Fatal("Kafka is disabled; the ticker has nowhere to publish")
	}

	creator := ticker.NewTopicCreator(logger, &ticker.RealKafkaDialer{Dialer: kafka.DefaultDialer}, ticker.RealClock{})
	creator.Create(cfg.Kafka.Brokers, cfg.Kafka.Topic)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}

	symbols := cfg.Seed.Symbols
	basePrices := make(map[string]float64, len(symbols))
	for _, s := range symbols {
		basePrices[s] = basePrice(s)
	}

	qt := ticker.NewQuoteTicker(
		logger,
		writer,
		symbols,
		basePrices,
		ticker.RealRand{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))},
		ticker.RealClock{},
		cfg.WS.TickInterval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go qt.Run(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received")
	cancel()

	// Flush buffered writes before exiting
	if err := writer.Close(); err != nil {
		logger.Error("Error closing Kafka writer", zap.Error(err))
	} else {
		logger.Info("Kafka writer closed cleanly")
	}
}

// basePrice derives a stable starting price per symbol so restarts
// resume near the same level.
func basePrice(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return 50 + float64(h.Sum32()%45000)/100
}
