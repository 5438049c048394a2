// Package ticker publishes a synthetic market feed to Kafka. Each symbol
// follows a random walk from its base price; messages are keyed by symbol
// so partition ordering holds per symbol, and carry a monotonic SeqID for
// consumer-side deduplication.
package ticker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

// Walk bounds relative to the base price.
const (
	minPriceRatio = 0.5
	maxPriceRatio = 2.0
)

type QuoteTicker struct {
	logger      *zap.Logger
	writer      KafkaWriter
	symbols     []string
	basePrices  map[string]float64
	prices      map[string]float64
	rand        Rand
	clock       Clock
	interval    time.Duration
	seqCounters map[string]int64
}

func NewQuoteTicker(
	logger *zap.Logger,
	writer KafkaWriter,
	symbols []string,
	basePrices map[string]float64,
	rnd Rand,
	clock Clock,
	interval time.Duration,
) *QuoteTicker {
	prices := make(map[string]float64, len(basePrices))
	for s, p := range basePrices {
		prices[s] = p
	}
	return &QuoteTicker{
		logger:      logger,
		writer:      writer,
		symbols:     symbols,
		basePrices:  basePrices,
		prices:      prices,
		rand:        rnd,
		clock:       clock,
		interval:    interval,
		seqCounters: make(map[string]int64),
	}
}

func (qt *QuoteTicker) Run(ctx context.Context) {
	qt.logger.Info("Ticker Started", zap.Strings("symbols", qt.symbols))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if len(qt.symbols) == 0 {
				qt.clock.Sleep(1 * time.Second)
				continue
			}

			symbol := qt.symbols[qt.rand.Intn(len(qt.symbols))]
			price := qt.step(symbol)
			qt.seqCounters[symbol]++

			update := models.QuoteUpdate{
				Symbol:    symbol,
				Price:     price,
				Timestamp: qt.clock.Now().UnixMicro(),
				SeqID:     qt.seqCounters[symbol],
			}

			payload, _ := json.Marshal(update) // Error ignored for simplicity in loop

			err := qt.writer.WriteMessages(ctx, kafka.Message{
				Key:   []byte(symbol),
				Value: payload,
			})

			if err != nil {
				qt.logger.Error("Kafka Write Error", zap.Error(err))
			}

			qt.clock.Sleep(qt.interval)
		}
	}
}

// step advances the random walk for symbol by up to ±2%, clamped to the
// walk bounds so prices never drift to zero or run away.
func (qt *QuoteTicker) step(symbol string) float64 {
	price := qt.prices[symbol]
	base := qt.basePrices[symbol]

	price *= 1 + (qt.rand.Float64()-0.5)*0.04

	if min := base * minPriceRatio; price < min {
		price = min
	}
	if max := base * maxPriceRatio; price > max {
		price = max
	}

	qt.prices[symbol] = price
	return price
}
