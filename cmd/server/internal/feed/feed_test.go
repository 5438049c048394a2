package feed_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/feed"
	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

// mockReader hands out a fixed message list, then cancels the run context.
type mockReader struct {
	msgs   []kafka.Message
	cancel context.CancelFunc
	i      int
}

func (r *mockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if r.i >= len(r.msgs) {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[r.i]
	r.i++
	return m, nil
}

func (r *mockReader) Close() error { return nil }

type mockApplier struct {
	mu      sync.Mutex
	applied []models.QuoteUpdate
}

func (a *mockApplier) UpdateQuote(symbol string, price float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applied = append(a.applied, models.QuoteUpdate{Symbol: symbol, Price: price})
}

func tick(t *testing.T, symbol string, price float64, seq int64) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(models.QuoteUpdate{
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UnixMicro(),
		SeqID:     seq,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return kafka.Message{Key: []byte(symbol), Value: payload}
}

func runConsumer(t *testing.T, msgs []kafka.Message, workers int) *mockApplier {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reader := &mockReader{msgs: msgs, cancel: cancel}
	applier := &mockApplier{}

	c := feed.NewConsumer(zap.NewNop(), reader, applier, workers)
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return applier
}

func TestConsumer_AppliesTicks(t *testing.T) {
	applier := runConsumer(t, []kafka.Message{
		tick(t, "AAPL", 150.5, 1),
		tick(t, "MSFT", 300.0, 1),
	}, 4)

	applier.mu.Lock()
	defer applier.mu.Unlock()
	if len(applier.applied) != 2 {
		t.Fatalf("Expected 2 applied ticks, got %d", len(applier.applied))
	}
}

func TestConsumer_DeduplicatesBySeqID(t *testing.T) {
	// Single worker so ordering across symbols is deterministic.
	applier := runConsumer(t, []kafka.Message{
		tick(t, "AAPL", 150, 5),
		tick(t, "AAPL", 151, 5), // duplicate seq
		tick(t, "AAPL", 149, 3), // stale seq
		tick(t, "AAPL", 152, 6),
	}, 1)

	applier.mu.Lock()
	defer applier.mu.Unlock()
	if len(applier.applied) != 2 {
		t.Fatalf("Expected 2 applied ticks after dedup, got %d", len(applier.applied))
	}
	if applier.applied[0].Price != 150 || applier.applied[1].Price != 152 {
		t.Errorf("Wrong ticks survived dedup: %+v", applier.applied)
	}
}

func TestConsumer_SkipsMalformedPayload(t *testing.T) {
	msgs := []kafka.Message{
		{Key: []byte("AAPL"), Value: []byte(`{not json`)},
		tick(t, "AAPL", 150, 1),
	}
	applier := runConsumer(t, msgs, 1)

	applier.mu.Lock()
	defer applier.mu.Unlock()
	if len(applier.applied) != 1 {
		t.Fatalf("Expected malformed payload to be skipped, got %d applied", len(applier.applied))
	}
}
