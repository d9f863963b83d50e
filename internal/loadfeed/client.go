package loadfeed

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// LoadHandler receives one parsed track load event.
type LoadHandler func(deckID int, path string)

// Client subscribes to a load feed server and delivers events to a handler.
// There is no reconnect: once the connection drops, Run returns and the
// consumer simply stops receiving loads.
type Client struct {
	conn    net.Conn
	handler LoadHandler
}

// Dial connects to the load feed at addr.
func Dial(addr string, handler LoadHandler) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial load feed: %w", err)
	}
	return &Client{conn: conn, handler: handler}, nil
}

// Run reads lines until the connection closes, invoking the handler for each
// well-formed line in arrival order. Malformed lines are skipped.
func (c *Client) Run() error {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		deckID, path, err := parseLoadLine(scanner.Text())
		if err != nil {
			continue
		}
		c.handler(deckID, path)
	}
	return scanner.Err()
}

// Close tears down the feed connection, unblocking Run.
func (c *Client) Close() error {
	return c.conn.Close()
}

func parseLoadLine(line string) (int, string, error) {
	deck, path, found := strings.Cut(line, ":")
	if !found {
		return 0, "", fmt.Errorf("load line %q missing separator", line)
	}
	deckID, err := strconv.Atoi(deck)
	if err != nil {
		return 0, "", fmt.Errorf("load line %q has invalid deck id: %w", line, err)
	}
	if path == "" {
		return 0, "", fmt.Errorf("load line %q has empty path", line)
	}
	return deckID, path, nil
}
