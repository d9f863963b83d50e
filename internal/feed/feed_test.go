package feed

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedServer runs a WebSocket endpoint that pushes every payload sent on the
// returned channel to the first connected client.
func feedServer(t *testing.T) (url string, payloads chan string) {
	t.Helper()

	payloads = make(chan string, 64)
	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		for payload := range payloads {
			if err := conn.WriteMessage(ws.TextMessage, []byte(payload)); err != nil {
				return
			}
		}
		conn.Close()
	}))
	t.Cleanup(func() { server.Close() })
	t.Cleanup(func() { close(payloads) })

	return "ws" + strings.TrimPrefix(server.URL, "http"), payloads
}

func TestSubscribe_DeliversInOrder(t *testing.T) {
	url, payloads := feedServer(t)

	var mu sync.Mutex
	var received []string
	sub, err := Subscribe(url, func(payload string) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, payload)
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	want := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		payload := fmt.Sprintf(`{"deck_id":%d}`, i+1)
		want = append(want, payload)
		payloads <- payload
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == len(want)
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, received, "payloads must arrive unparsed, in order")
}

func TestSubscribe_DialFailure(t *testing.T) {
	_, err := Subscribe("ws://127.0.0.1:1/ws", func(string) {})
	assert.Error(t, err)
}

func TestSubscription_CloseStopsDelivery(t *testing.T) {
	url, payloads := feedServer(t)

	var mu sync.Mutex
	count := 0
	sub, err := Subscribe(url, func(string) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})
	require.NoError(t, err)

	payloads <- `{"deck_id":1}`
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, sub.Close())

	// Messages sent after close never reach the handler
	payloads <- `{"deck_id":2}`
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}
