// Package protocol defines the JSON message shapes exchanged with
// websocket clients.
package protocol

import (
	"time"

	"github.com/NOT44353/Test-Avalants-Final/pkg/models"
)

const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypePing        = "ping"
	TypePong        = "pong"
	TypeQuotes      = "quotes"
	TypeError       = "error"
)

// ClientMessage is any inbound payload from a connection.
type ClientMessage struct {
	Type    string   `json:"type"`
	Symbols []string `json:"symbols,omitempty"`
}

// QuotesMessage pushes the subset of quotes a connection subscribed to.
type QuotesMessage struct {
	Type   string         `json:"type"`
	Quotes []models.Quote `json:"quotes"`
	TS     string         `json:"ts"`
}

// ErrorMessage answers a malformed or unknown payload. The connection
// stays open.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
	TS    string `json:"ts"`
}

// PongMessage answers a ping and doubles as the greeting on open.
type PongMessage struct {
	Type string `json:"type"`
	TS   string `json:"ts"`
}

func Quotes(quotes []models.Quote, now time.Time) QuotesMessage {
	return QuotesMessage{Type: TypeQuotes, Quotes: quotes, TS: now.Format(time.RFC3339Nano)}
}

func Error(msg string, now time.Time) ErrorMessage {
	return ErrorMessage{Type: TypeError, Error: msg, TS: now.Format(time.RFC3339Nano)}
}

func Pong(now time.Time) PongMessage {
	return PongMessage{Type: TypePong, TS: now.Format(time.RFC3339Nano)}
}
