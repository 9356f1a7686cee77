package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP control plane fronting a BattleStore: submit a battle
// configuration, poll its status, tail its event log, or watch a live
// summary feed over WebSocket.
type Server struct {
	store       *BattleStore
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates a new API server around store.
//
// IMPORTANT: no listener is opened and the WebSocket hub and broadcast loop
// do not start until Start is called. The rate limiter created here does
// start its cleanup goroutine (see NewIPRateLimiter).
func NewServer(store *BattleStore) *Server {
	s := &Server{store: store, wsHub: NewWebSocketHub()}
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)
	s.router = NewRouter(RouterConfig{Store: store, RateLimiter: s.rateLimiter})
	s.router.Get("/ws", s.handleWS)
	return s
}

// Start begins the HTTP server, the WebSocket hub, and its background
// broadcast loop. This is the only method that opens network listeners;
// call it once.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.store)

	log.Printf("battle API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler { return s.router }

// Stop performs graceful shutdown of background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
