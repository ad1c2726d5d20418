package server

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Server owns the WebSocket endpoint and the set of rooms. Connections are
// bound to a room at upgrade time via the ?room= query parameter.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	rooms       map[string]*Room
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
}

// NewServer creates a server and one room per configured room. The clock is
// injected so tests can drive bot timers deterministically.
func NewServer(cfg *Config, clock quartz.Clock, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: cfg.GetServerAddress(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		rooms:       make(map[string]*Room),
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}

	commentator := NewCommentator(cfg.Commentary, logger)
	for _, roomCfg := range cfg.Rooms {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		s.rooms[roomCfg.Name] = NewRoom(roomCfg.Name, roomCfg, clock, rng, logger, commentator)
	}
	return s
}

// Room returns the room with the given id, or nil.
func (s *Server) Room(id string) *Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[id]
}

// Start runs the server until Stop or a listener error.
func (s *Server) Start() error {
	go s.run()

	s.mu.RLock()
	for _, room := range s.rooms {
		room.Start()
	}
	s.mu.RUnlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}
	s.logger.Info("Starting WebSocket server", "addr", s.addr, "rooms", len(s.rooms))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop stops the server and all rooms.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for _, room := range s.rooms {
		room.Stop()
	}
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			conn.room.Detach(conn)
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket upgrades the request and attaches the connection to its
// room. Unknown room ids are rejected before the upgrade.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = "main"
	}
	room := s.Room(roomID)
	if room == nil {
		http.Error(w, fmt.Sprintf("unknown room: %s", roomID), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, room, s.logger)
	s.register <- client
	client.Start()
	room.Attach(client)

	// Optional shortcut: ?name= joins immediately without a JOIN_REQUEST.
	if name := r.URL.Query().Get("name"); name != "" {
		room.Join(client, name)
	}

	go func() {
		select {
		case <-client.ctx.Done():
		case <-s.ctx.Done():
			return
		}
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
