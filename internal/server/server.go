// Package server exposes game sessions over websockets. Each connection owns
// an isolated session: no state is shared between clients, and a session's
// triggers are processed strictly in arrival order.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lunarlabs/redpocket/internal/config"
	"github.com/lunarlabs/redpocket/internal/game"
	"github.com/lunarlabs/redpocket/internal/generate"
	"github.com/lunarlabs/redpocket/internal/randutil"
)

// Server accepts websocket clients and runs one game session per connection.
type Server struct {
	addr        string
	cfg         *config.Config
	source      generate.Source
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	seedMu      sync.Mutex
	seeds       func() int64
}

// New creates a server. Sessions derive their seeds from the given base seed
// so a seeded server replays identically.
func New(cfg *config.Config, source generate.Source, seed int64, logger *log.Logger) *Server {
	rng := randutil.New(seed)

	s := &Server{
		addr:   cfg.Server.Address,
		cfg:    cfg,
		source: source,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Single-player quiz sessions carry no credentials; any
				// origin may connect.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		seeds: func() int64 {
			return int64(rng.Uint64())
		},
	}
	go s.run()
	return s
}

// Handler returns the HTTP handler serving /ws and /health. Exposed so tests
// can mount the server on an ephemeral listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until the context is cancelled, then shuts down and closes all
// connections.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting websocket server", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")

		s.mu.Lock()
		for conn := range s.connections {
			_ = conn.Close()
		}
		s.mu.Unlock()

		return httpServer.Shutdown(context.Background())
	})
	return g.Wait()
}

// run tracks connection lifecycle. It lives for the process; connections
// unregister through it even while the listener is shutting down.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			delete(s.connections, conn)
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client disconnected", "total", total)
		}
	}
}

// handleWebSocket upgrades the HTTP request and starts a fresh session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	s.seedMu.Lock()
	seed := s.seeds()
	s.seedMu.Unlock()

	session := game.NewSession(s.cfg.SessionConfig(seed), s.source, s.source, s.logger)
	conn := NewConnection(wsConn, session, s, s.logger)

	s.register <- conn
	conn.Start()

	conn.sendData(MessageTypeWelcome, WelcomeData{
		Regions: s.cfg.Game.Regions,
		Roster:  s.cfg.Roster(),
		Letters: game.Alphabet,
		Balance: session.Balance(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) defaultRegion() string {
	return s.cfg.Game.Regions[0]
}
