// Package feed implements the overlay's subscription to the trackload
// WebSocket feed.
//
// The subscription dials the fixed local endpoint once and delivers every
// received message to the handler, unparsed and in arrival order. There is
// deliberately no reconnect or backoff: when the connection drops, the
// overlay simply stops updating.
package feed

import (
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/evanpurkhiser/cdj-trackload-broadcast/internal/metrics"
)

// Handler receives one raw feed payload.
type Handler func(payload string)

// Subscription is a single inbound feed connection.
type Subscription struct {
	conn    *websocket.Conn
	handler Handler
	done    chan struct{}
}

// Subscribe dials the feed at url and starts delivering messages to handler.
// Each message is handed to the handler synchronously from a single read
// loop, so delivery order matches arrival order and updates never overlap.
func Subscribe(url string, handler Handler) (*Subscription, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial feed %s: %w", url, err)
	}

	s := &Subscription{
		conn:    conn,
		handler: handler,
		done:    make(chan struct{}),
	}
	go s.readLoop()

	return s, nil
}

func (s *Subscription) readLoop() {
	defer close(s.done)

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			// Connection loss is not recovered from; nothing is surfaced
			// beyond this log line.
			slog.Debug("Feed connection closed", "error", err)
			return
		}
		metrics.FeedMessagesTotal.Inc()
		s.handler(string(msg))
	}
}

// Close tears down the connection and waits for the read loop to exit.
func (s *Subscription) Close() error {
	err := s.conn.Close()
	<-s.done
	return err
}
