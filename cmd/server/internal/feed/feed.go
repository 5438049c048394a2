// Package feed consumes market ticks from Kafka and applies them to the
// store's quote table. Work is sharded across a worker pool by symbol so
// per-symbol ordering is preserved, with per-worker SeqID deduplication.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

type Consumer struct {
	logger     Logger
	reader     KafkaReader
	store      QuoteApplier
	numWorkers int
}

func NewConsumer(logger Logger, reader KafkaReader, store QuoteApplier, numWorkers int) *Consumer {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &Consumer{
		logger:     logger,
		reader:     reader,
		store:      store,
		numWorkers: numWorkers,
	}
}

// Run blocks until ctx is cancelled, then drains the workers.
func (c *Consumer) Run(ctx context.Context) error {
	workerChans := make([]chan []byte, c.numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < c.numWorkers; i++ {
		workerChans[i] = make(chan []byte, 100)
		wg.Add(1)
		go c.worker(i, workerChans[i], &wg)
	}

	go func() {
		c.logger.Info("Quote feed started", zap.Int("workers", c.numWorkers))
		for {
			m, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				c.logger.Error("Kafka Read Error", zap.Error(err))
				continue
			}

			// Deterministic Sharding: Same symbol always goes to same worker
			workerID := getWorkerID(m.Key, c.numWorkers)

			select {
			case workerChans[workerID] <- m.Value:
			case <-ctx.Done():
				return
			default:
				c.logger.Warn("Dropping slow packet", zap.String("key", string(m.Key)), zap.Int("worker_id", workerID))
			}
		}
	}()

	<-ctx.Done()
	c.logger.Info("Shutdown signal received, stopping quote feed...")

	for _, ch := range workerChans {
		close(ch)
	}
	wg.Wait()

	return nil
}

func (c *Consumer) worker(id int, msgs <-chan []byte, wg *sync.WaitGroup) {
	defer wg.Done()

	// Local state for deduplication (only works because of deterministic sharding)
	lastSeq := make(map[string]int64)

	for payload := range msgs {
		var update models.QuoteUpdate
		if err := json.Unmarshal(payload, &update); err != nil {
			c.logger.Error("JSON Unmarshal Error", zap.Error(err))
			continue
		}

		if update.SeqID <= lastSeq[update.Symbol] {
			c.logger.Debug("Skipping duplicate update", zap.String("symbol", update.Symbol), zap.Int64("seq_id", update.SeqID))
			continue
		}

		c.store.UpdateQuote(update.Symbol, update.Price)
		lastSeq[update.Symbol] = update.SeqID
		c.logger.Debug("Applied tick", zap.String("symbol", update.Symbol), zap.Int("worker_id", id))
	}
}

func getWorkerID(key []byte, numWorkers int) int {
	h := fnv.New32a()
	h.Write(key)
	return int(h.Sum32()) % numWorkers
}
