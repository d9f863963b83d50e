package loadfeed

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoadLine(t *testing.T) {
	deckID, path, err := parseLoadLine("03:house/artist - track.mp3")
	require.NoError(t, err)
	assert.Equal(t, 3, deckID)
	assert.Equal(t, "house/artist - track.mp3", path)

	// Paths may themselves contain colons; only the first one separates
	deckID, path, err = parseLoadLine("02:odd:name.mp3")
	require.NoError(t, err)
	assert.Equal(t, 2, deckID)
	assert.Equal(t, "odd:name.mp3", path)
}

func TestParseLoadLine_Malformed(t *testing.T) {
	for _, line := range []string{"", "no separator", "xx:track.mp3", "03:"} {
		_, _, err := parseLoadLine(line)
		assert.Error(t, err, "line %q should not parse", line)
	}
}

type recordedLoad struct {
	deckID int
	path   string
}

// collector accumulates handler invocations across goroutines.
type collector struct {
	mu    sync.Mutex
	loads []recordedLoad
}

func (c *collector) handle(deckID int, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads = append(c.loads, recordedLoad{deckID: deckID, path: path})
}

func (c *collector) snapshot() []recordedLoad {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]recordedLoad(nil), c.loads...)
}

func waitForLoads(t *testing.T, c *collector, n int) []recordedLoad {
	t.Helper()
	for i := 0; i < 200; i++ {
		if loads := c.snapshot(); len(loads) >= n {
			return loads
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d loads, got %d", n, len(c.snapshot()))
	return nil
}

func waitForSubscribers(t *testing.T, s *Server, n int) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if s.SubscriberCount() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d subscribers", n)
}

func TestServerPublishReachesClient(t *testing.T) {
	server := NewServer("127.0.0.1:0", "")
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })

	c := &collector{}
	client, err := Dial(server.Addr(), c.handle)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	go func() { _ = client.Run() }()
	waitForSubscribers(t, server, 1)

	server.Publish(3, "house/one.mp3")
	server.Publish(2, "techno/two.mp3")

	loads := waitForLoads(t, c, 2)
	assert.Equal(t, recordedLoad{3, "house/one.mp3"}, loads[0])
	assert.Equal(t, recordedLoad{2, "techno/two.mp3"}, loads[1])
}

func TestServerBasePathTrim(t *testing.T) {
	server := NewServer("127.0.0.1:0", "/srv/tracks/")
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })

	c := &collector{}
	client, err := Dial(server.Addr(), c.handle)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	go func() { _ = client.Run() }()
	waitForSubscribers(t, server, 1)

	server.Publish(2, "/srv/tracks/house/one.mp3")

	loads := waitForLoads(t, c, 1)
	assert.Equal(t, recordedLoad{2, "house/one.mp3"}, loads[0])
}

func TestServerMultipleSubscribers(t *testing.T) {
	server := NewServer("127.0.0.1:0", "")
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })

	collectors := make([]*collector, 2)
	for i := range collectors {
		collectors[i] = &collector{}
		client, err := Dial(server.Addr(), collectors[i].handle)
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		go func() { _ = client.Run() }()
	}
	waitForSubscribers(t, server, 2)

	server.Publish(3, "one.mp3")

	for _, c := range collectors {
		loads := waitForLoads(t, c, 1)
		assert.Equal(t, recordedLoad{3, "one.mp3"}, loads[0])
	}
}

func TestClientRunEndsOnServerStop(t *testing.T) {
	server := NewServer("127.0.0.1:0", "")
	require.NoError(t, server.Start())

	client, err := Dial(server.Addr(), func(int, string) {})
	require.NoError(t, err)
	waitForSubscribers(t, server, 1)

	done := make(chan error, 1)
	go func() { done <- client.Run() }()

	require.NoError(t, server.Stop())

	select {
	case <-done:
		// Run returned once the connection dropped; no reconnect is attempted
	case <-time.After(2 * time.Second):
		t.Fatal("client Run did not return after server stop")
	}
}

func TestServerStartTwice(t *testing.T) {
	server := NewServer("127.0.0.1:0", "")
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })

	assert.Error(t, server.Start())
}

func TestServerStopIdempotent(t *testing.T) {
	server := NewServer("127.0.0.1:0", "")
	require.NoError(t, server.Start())

	require.NoError(t, server.Stop())
	assert.NoError(t, server.Stop())
}
