package ticker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/ticker/internal/testutils"
	"github.com/NOT44353/Test-Avalants-Final/cmd/ticker/internal/ticker"
	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

func TestTicker_Logic(t *testing.T) {
	logger := zap.NewNop()
	mockWriter := &testutils.MockKafkaWriter{}

	// Fix randomness: always pick index 0, midpoint step keeps price at base
	mockRand := &testutils.MockRand{ValInt: 0, ValFloat: 0.5}
	mockClock := &testutils.MockClock{CurrentTime: time.Unix(0, 0)}

	symbols := []string{"AAPL"}
	basePrices := map[string]float64{"AAPL": 100.0}

	qt := ticker.NewQuoteTicker(logger, mockWriter, symbols, basePrices, mockRand, mockClock, 100*time.Millisecond)

	// MockClock.Sleep advances instantly, so run briefly and cancel
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	qt.Run(ctx)

	mockWriter.Mu.Lock()
	defer mockWriter.Mu.Unlock()

	if len(mockWriter.Messages) == 0 {
		t.Fatal("Expected messages to be generated")
	}

	var update models.QuoteUpdate
	if err := json.Unmarshal(mockWriter.Messages[0].Value, &update); err != nil {
		t.Fatalf("Generated invalid JSON: %v", err)
	}

	if update.Symbol != "AAPL" {
		t.Errorf("Expected AAPL, got %s", update.Symbol)
	}
	if update.SeqID != 1 {
		t.Errorf("Expected SeqID 1, got %d", update.SeqID)
	}
	// Midpoint random value means zero drift: price stays at base
	if update.Price != 100.0 {
		t.Errorf("Expected Price 100.0, got %f", update.Price)
	}
	if string(mockWriter.Messages[0].Key) != "AAPL" {
		t.Errorf("Expected message keyed by symbol, got %s", mockWriter.Messages[0].Key)
	}
}

func TestTicker_SeqIDsAreMonotonic(t *testing.T) {
	logger := zap.NewNop()
	mockWriter := &testutils.MockKafkaWriter{}
	mockRand := &testutils.MockRand{ValInt: 0, ValFloat: 0.5}
	mockClock := &testutils.MockClock{CurrentTime: time.Unix(0, 0)}

	qt := ticker.NewQuoteTicker(logger, mockWriter,
		[]string{"GOOG"}, map[string]float64{"GOOG": 2800.0},
		mockRand, mockClock, 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	qt.Run(ctx)

	mockWriter.Mu.Lock()
	defer mockWriter.Mu.Unlock()

	if len(mockWriter.Messages) < 2 {
		t.Skip("Not enough messages generated in the window")
	}

	var last int64
	for i, msg := range mockWriter.Messages {
		var update models.QuoteUpdate
		if err := json.Unmarshal(msg.Value, &update); err != nil {
			t.Fatalf("Message %d: invalid JSON: %v", i, err)
		}
		if update.SeqID != last+1 {
			t.Fatalf("Message %d: expected SeqID %d, got %d", i, last+1, update.SeqID)
		}
		last = update.SeqID
	}
}

func TestTicker_WalkStaysWithinBounds(t *testing.T) {
	logger := zap.NewNop()
	mockWriter := &testutils.MockKafkaWriter{}

	// Maximum upward drift every step: walk must clamp at twice the base
	mockRand := &testutils.MockRand{ValInt: 0, ValFloat: 1.0}
	mockClock := &testutils.MockClock{CurrentTime: time.Unix(0, 0)}

	qt := ticker.NewQuoteTicker(logger, mockWriter,
		[]string{"TSLA"}, map[string]float64{"TSLA": 700.0},
		mockRand, mockClock, 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	qt.Run(ctx)

	mockWriter.Mu.Lock()
	defer mockWriter.Mu.Unlock()

	for i, msg := range mockWriter.Messages {
		var update models.QuoteUpdate
		if err := json.Unmarshal(msg.Value, &update); err != nil {
			t.Fatalf("Message %d: invalid JSON: %v", i, err)
		}
		if update.Price < 350.0 || update.Price > 1400.0 {
			t.Fatalf("Message %d: price %f outside walk bounds", i, update.Price)
		}
	}
}

func TestTopicCreator_Flow(t *testing.T) {
	logger := zap.NewNop()
	mockDialer := &testutils.MockKafkaDialer{}
	mockClock := &testutils.MockClock{}

	tc := ticker.NewTopicCreator(logger, mockDialer, mockClock)

	tc.Create([]string{"broker:9092"}, "quote-ticks")

	if mockDialer.ConnSpy == nil {
		t.Fatal("Dialer was never called")
	}
	if len(mockDialer.ConnSpy.CreatedTopics) == 0 {
		t.Fatal("No topics created")
	}
	if mockDialer.ConnSpy.CreatedTopics[0] != "quote-ticks" {
		t.Errorf("Expected topic 'quote-ticks', got %s", mockDialer.ConnSpy.CreatedTopics[0])
	}
}
