package gateway

import (
	"encoding/json"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"go.uber.org/zap"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/hub"
)

const (
	maxMessageSize = 512 * 1024
)

// ClientAdapter bridges one raw websocket connection to the hub. All
// writes funnel through writePump; SendJSON and Ping never block (messages
// are dropped when the outbound buffer is full, stuck clients are reaped
// by the hub's liveness sweep).
type ClientAdapter struct {
	conn   net.Conn
	hub    *hub.Hub
	logger *zap.Logger

	send  chan []byte
	pings chan struct{}
	done  chan struct{}
	once  sync.Once

	writeWait time.Duration
	readWait  time.Duration
}

func NewClient(conn net.Conn, h *hub.Hub, logger *zap.Logger) *ClientAdapter {
	return &ClientAdapter{
		conn:      conn,
		hub:       h,
		logger:    logger,
		send:      make(chan []byte, 256),
		pings:     make(chan struct{}, 1),
		done:      make(chan struct{}),
		writeWait: 5 * time.Second,
		readWait:  60 * time.Second,
	}
}

func (c *ClientAdapter) Start() {
	c.hub.Register(c)
	go c.writePump()
	go c.readPump()
}

func (c *ClientAdapter) ID() string { return c.conn.RemoteAddr().String() }

// Close signals the pumps to stop. The send channel is never closed, so a
// concurrent SendJSON can never panic.
func (c *ClientAdapter) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *ClientAdapter) SendJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case <-c.done:
	case c.send <- b:
	default:
		// Drop message if buffer full (Backpressure)
	}
}

// Ping enqueues a transport-level ping, driven by the hub's sweep.
func (c *ClientAdapter) Ping() {
	select {
	case <-c.done:
	case c.pings <- struct{}{}:
	default:
	}
}

func (c *ClientAdapter) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.readWait))

	for {
		header, err := ws.ReadHeader(c.conn)
		if err != nil {
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.readWait))

		if header.Length > int64(maxMessageSize) {
			c.logger.Warn("Msg too big", zap.Int64("size", header.Length))
			return
		}

		if !header.Fin {
			c.logger.Warn("Client sent fragmented message (not supported)")
			return
		}

		payload := make([]byte, header.Length)
		if _, err := io.ReadFull(c.conn, payload); err != nil {
			return
		}

		if header.Masked {
			ws.Cipher(payload, header.Mask, 0)
		}

		switch header.OpCode {
		case ws.OpClose:
			return
		case ws.OpPong:
			// Liveness acknowledgment for the hub's sweep.
			c.hub.Touch(c)
		case ws.OpText:
			c.hub.HandleMessage(c, payload)
		}
	}
}

func (c *ClientAdapter) writePump() {
	defer c.conn.Close()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			c.conn.Write(ws.CompiledClose)
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := wsutil.WriteServerText(c.conn, msg); err != nil {
				return
			}

		case <-c.pings:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := wsutil.WriteServerMessage(c.conn, ws.OpPing, nil); err != nil {
				return
			}
		}
	}
}
