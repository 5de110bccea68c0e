package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

// WebServer serves the JSON-RPC endpoints over HTTP:
//
//	POST /jsonrpc     request/response through the jhttp bridge
//	GET  /jsonrpc/ws  websocket session with queue notifications
//	GET  /healthz     unauthenticated liveness probe
type WebServer struct {
	log    logger.Logger
	rpc    *RPCServer
	server *http.Server
	mu     sync.Mutex
}

func NewWebServer(l logger.Logger, rpc *RPCServer) *WebServer {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &WebServer{log: l, rpc: rpc}
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST "+common.RPCPath, requireToken(s.rpc.secret, s.rpc.bridge))
	mux.Handle("GET "+common.RPCWSPath, requireToken(s.rpc.secret, http.HandlerFunc(s.rpc.handleWS)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Serve accepts connections on l until Shutdown is called.
func (s *WebServer) Serve(l net.Listener) error {
	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          logger.ToStdLogger(s.log),
	}
	srv := s.server
	s.mu.Unlock()

	s.log.Info("server: listening on %s", l.Addr())
	err := srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown closes websocket sessions and gracefully stops the HTTP server.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.rpc.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
