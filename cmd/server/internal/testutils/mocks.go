package testutils

import (
	"sync"
	"time"

	"github.com/NOT44353/Test-Avalants-Final/cmd/server/internal/protocol"
)

// MockConn simulates a connected websocket client.
type MockConn struct {
	IDVal  string
	Sent   []interface{}
	Pings  int
	Closed bool
	Mu     sync.Mutex
}

func NewMockConn(id string) *MockConn {
	return &MockConn{IDVal: id}
}

func (m *MockConn) ID() string { return m.IDVal }

func (m *MockConn) SendJSON(v interface{}) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Sent = append(m.Sent, v)
}

func (m *MockConn) Ping() {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Pings++
}

func (m *MockConn) Close() {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Closed = true
}

// QuotesMessages filters the sent messages down to quote pushes.
func (m *MockConn) QuotesMessages() []protocol.QuotesMessage {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	var out []protocol.QuotesMessage
	for _, v := range m.Sent {
		if msg, ok := v.(protocol.QuotesMessage); ok {
			out = append(out, msg)
		}
	}
	return out
}

// LastType returns the type field of the most recent message, or "".
func (m *MockConn) LastType() string {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	switch msg := m.Sent[len(m.Sent)-1].(type) {
	case protocol.QuotesMessage:
		return msg.Type
	case protocol.ErrorMessage:
		return msg.Type
	case protocol.PongMessage:
		return msg.Type
	default:
		return ""
	}
}

func (m *MockConn) IsClosed() bool {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.Closed
}

// MockClock is a settable clock for deterministic liveness tests.
type MockClock struct {
	Mu          sync.Mutex
	CurrentTime time.Time
}

func (c *MockClock) Now() time.Time {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.CurrentTime
}

func (c *MockClock) Advance(d time.Duration) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.CurrentTime = c.CurrentTime.Add(d)
}
