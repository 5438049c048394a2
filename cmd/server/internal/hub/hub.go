// Package hub manages the set of live websocket connections and fans out
// quote updates to them. Two independent loops drive it: a fast quote tick
// and a slower liveness sweep. Neither loop blocks on a slow connection;
// pushes are best-effort and genuinely stuck clients are reaped by the
// sweep, never by the tick.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/protocol"
	"github.com/NOT44353/Test-Avalants-Final/pkg/config"
	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

// Conn is the hub's view of a connection. Implementations must make
// SendJSON and Ping non-blocking (drop rather than stall) and Close
// idempotent.
type Conn interface {
	ID() string
	SendJSON(v interface{})
	Ping()
	Close()
}

// QuoteSource supplies current quotes for a set of symbols. Implemented by
// the entity store.
type QuoteSource interface {
	QuoteSnapshot(symbols []string) map[string]models.Quote
}

// Clock abstracts time for deterministic testing.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type session struct {
	symbols  map[string]struct{}
	lastSeen time.Time
}

type Hub struct {
	source QuoteSource
	logger *zap.Logger
	clock  Clock

	tickInterval    time.Duration
	sweepInterval   time.Duration
	livenessTimeout time.Duration

	mu    sync.RWMutex
	conns map[Conn]*session

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	shutOnce sync.Once
}

func NewHub(source QuoteSource, logger *zap.Logger, cfg config.WSConfig, clock Clock) *Hub {
	return &Hub{
		source:          source,
		logger:          logger,
		clock:           clock,
		tickInterval:    cfg.TickInterval,
		sweepInterval:   cfg.SweepInterval,
		livenessTimeout: cfg.LivenessTimeout,
		conns:           make(map[Conn]*session),
	}
}

// Register adds a fully-constructed connection with an empty subscription
// set and sends the greeting. Safe to call concurrently with both loops.
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	h.conns[conn] = &session{
		symbols:  make(map[string]struct{}),
		lastSeen: h.clock.Now(),
	}
	h.mu.Unlock()

	conn.SendJSON(protocol.Pong(h.clock.Now()))
	h.logger.Debug("Connection registered", zap.String("conn", conn.ID()))
}

// Unregister removes a connection and closes it. Idempotent.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()

	if ok {
		conn.Close()
		h.logger.Debug("Connection unregistered", zap.String("conn", conn.ID()))
	}
}

// HandleMessage processes one inbound payload. Malformed or unknown
// messages get an error reply; the connection stays open.
func (h *Hub) HandleMessage(conn Conn, raw []byte) {
	var msg protocol.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		conn.SendJSON(protocol.Error("Invalid message format", h.clock.Now()))
		return
	}

	switch msg.Type {
	case protocol.TypeSubscribe:
		h.updateSubscriptions(conn, msg.Symbols, true)
	case protocol.TypeUnsubscribe:
		h.updateSubscriptions(conn, msg.Symbols, false)
	case protocol.TypePing:
		h.Touch(conn)
		conn.SendJSON(protocol.Pong(h.clock.Now()))
	default:
		conn.SendJSON(protocol.Error("Unknown message type", h.clock.Now()))
	}
}

func (h *Hub) updateSubscriptions(conn Conn, symbols []string, add bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.conns[conn]
	if !ok {
		return
	}
	for _, sym := range symbols {
		if add {
			sess.symbols[sym] = struct{}{}
		} else {
			delete(sess.symbols, sym)
		}
	}
}

// Touch refreshes a connection's liveness timestamp. Called on any
// liveness acknowledgment (transport pong or application ping).
func (h *Hub) Touch(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sess, ok := h.conns[conn]; ok {
		sess.lastSeen = h.clock.Now()
	}
}

// Run starts the quote tick and liveness sweep loops. They stop when ctx
// is cancelled or Shutdown is called.
func (h *Hub) Run(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)

	h.wg.Add(2)
	go h.tickLoop(ctx)
	go h.sweepLoop(ctx)
}

// Shutdown stops both loops and closes every connection. Idempotent.
func (h *Hub) Shutdown() {
	h.shutOnce.Do(func() {
		if h.cancel != nil {
			h.cancel()
		}
		h.wg.Wait()

		h.mu.Lock()
		conns := make([]Conn, 0, len(h.conns))
		for conn := range h.conns {
			conns = append(conns, conn)
		}
		h.conns = make(map[Conn]*session)
		h.mu.Unlock()

		for _, conn := range conns {
			conn.Close()
		}
		h.logger.Info("Hub shut down", zap.Int("closed_connections", len(conns)))
	})
}

func (h *Hub) tickLoop(ctx context.Context) {
	defer h.wg.Done()
	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.BroadcastQuotes()
		}
	}
}

func (h *Hub) sweepLoop(ctx context.Context) {
	defer h.wg.Done()
	ticker := time.NewTicker(h.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Sweep()
		}
	}
}

type target struct {
	conn    Conn
	symbols []string
}

// BroadcastQuotes performs one quote tick: fetch the union of all
// subscribed symbols from the source once, then push each connection its
// own subset. Pushes are independent per connection and never block.
func (h *Hub) BroadcastQuotes() {
	h.mu.RLock()
	union := make(map[string]struct{})
	targets := make([]target, 0, len(h.conns))
	for conn, sess := range h.conns {
		if len(sess.symbols) == 0 {
			continue
		}
		symbols := make([]string, 0, len(sess.symbols))
		for sym := range sess.symbols {
			union[sym] = struct{}{}
			symbols = append(symbols, sym)
		}
		targets = append(targets, target{conn: conn, symbols: symbols})
	}
	h.mu.RUnlock()

	if len(union) == 0 {
		return
	}

	all := make([]string, 0, len(union))
	for sym := range union {
		all = append(all, sym)
	}
	snapshot := h.source.QuoteSnapshot(all)
	now := h.clock.Now()

	for _, tgt := range targets {
		relevant := make([]models.Quote, 0, len(tgt.symbols))
		for _, sym := range tgt.symbols {
			if q, ok := snapshot[sym]; ok {
				relevant = append(relevant, q)
			}
		}
		if len(relevant) > 0 {
			tgt.conn.SendJSON(protocol.Quotes(relevant, now))
		}
	}
}

// Sweep performs one liveness pass: connections idle past the timeout are
// closed and deregistered, the rest get a probe.
func (h *Hub) Sweep() {
	now := h.clock.Now()

	h.mu.Lock()
	var stale, live []Conn
	for conn, sess := range h.conns {
		if now.Sub(sess.lastSeen) > h.livenessTimeout {
			stale = append(stale, conn)
			delete(h.conns, conn)
		} else {
			live = append(live, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range stale {
		h.logger.Info("Closing inactive connection", zap.String("conn", conn.ID()))
		conn.Close()
	}
	for _, conn := range live {
		conn.Ping()
	}
}

// ConnCount reports the number of registered connections.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// SubscribedSymbols returns the union of all subscriptions.
func (h *Hub) SubscribedSymbols() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	union := make(map[string]struct{})
	for _, sess := range h.conns {
		for sym := range sess.symbols {
			union[sym] = struct{}{}
		}
	}
	out := make([]string, 0, len(union))
	for sym := range union {
		out = append(out, sym)
	}
	return out
}
