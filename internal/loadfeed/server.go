package loadfeed

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
)

// Server broadcasts track load lines to all connected subscribers.
type Server struct {
	mu       sync.Mutex
	listener net.Listener
	addr     string
	basePath string
	running  bool
	subs     map[net.Conn]struct{}
}

// NewServer creates a line feed server. basePath, when non-empty, is
// stripped from the front of published paths so subscribers see paths
// relative to the music root.
func NewServer(addr, basePath string) *Server {
	return &Server{
		addr:     addr,
		basePath: basePath,
		subs:     make(map[net.Conn]struct{}),
	}
}

// Start begins listening and accepting subscribers.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("load feed server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start load feed server: %w", err)
	}

	s.listener = listener
	s.running = true

	slog.Info("Load feed server listening", "addr", s.addr)

	go s.acceptLoop()

	return nil
}

// Stop closes the listener and all subscriber connections.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	for conn := range s.subs {
		_ = conn.Close()
		delete(s.subs, conn)
	}
	return s.listener.Close()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			running := s.running
			s.mu.Unlock()
			if !running {
				return
			}
			slog.Warn("Load feed accept error", "error", err)
			continue
		}

		slog.Info("Load feed subscriber connected", "remote", conn.RemoteAddr().String())

		s.mu.Lock()
		s.subs[conn] = struct{}{}
		s.mu.Unlock()
	}
}

// Publish sends one load line to every subscriber. Subscribers that fail to
// take the write are dropped; the feed has no delivery guarantees beyond
// best effort, in order.
func (s *Server) Publish(deckID int, path string) {
	if s.basePath != "" {
		path = strings.TrimPrefix(path, s.basePath)
	}
	line := fmt.Sprintf("%02d:%s\n", deckID, path)

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.subs {
		if _, err := conn.Write([]byte(line)); err != nil {
			slog.Warn("Dropping load feed subscriber", "remote", conn.RemoteAddr().String(), "error", err)
			_ = conn.Close()
			delete(s.subs, conn)
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (s *Server) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Addr returns the address the server is listening on. Useful when started
// with port 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}
