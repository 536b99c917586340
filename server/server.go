// Package server serves the tool registry over HTTP and runs the chat agent
// over WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mybambu/transfer-tools/core"
	"github.com/mybambu/transfer-tools/engine"
)

// Agent answers one chat turn.
type Agent interface {
	Run(ctx context.Context, input *engine.Input) (*engine.Output, error)
}

// Config configures a Server.
type Config struct {
	// Registry is required.
	Registry *engine.ToolRegistry

	// Agent serves /ws. Without it the endpoint answers 503.
	Agent Agent

	// AgentTimeout bounds one chat turn. Defaults to 2 minutes.
	AgentTimeout time.Duration
}

// Server is the HTTP transport.
type Server struct {
	registry     *engine.ToolRegistry
	agent        Agent
	agentTimeout time.Duration
	upgrader     websocket.Upgrader
	router       chi.Router
}

// New creates a server and its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("server: registry is required")
	}
	if cfg.AgentTimeout <= 0 {
		cfg.AgentTimeout = 2 * time.Minute
	}

	s := &Server{
		registry:     cfg.Registry,
		agent:        cfg.Agent,
		agentTimeout: cfg.AgentTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Get("/health", s.health)
	r.Route("/tools", func(r chi.Router) {
		r.Get("/", s.listTools)
		r.Post("/{name}", s.callTool)
	})
	r.Get("/ws", s.chat)
	s.router = r

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("[SERVER] shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Definitions())
}

// toolResponse is the body of POST /tools/{name}.
type toolResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	result := s.registry.Dispatch(r.Context(), name, &core.ToolParams{Input: body})
	if result.Success {
		writeJSON(w, http.StatusOK, toolResponse{Success: true, Text: result.Text()})
		return
	}

	status := http.StatusUnprocessableEntity
	if _, ok := s.registry.Get(name); !ok {
		status = http.StatusNotFound
	}
	writeJSON(w, status, toolResponse{Success: false, Error: "Error: " + result.Error})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SERVER] write response: %v", err)
	}
}
