// Package devserver is a small in-memory implementation of the moviebook
// REST backend. It serves the auth and order history endpoints the client
// uses, for local development and end-to-end tests.
package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/moviebook/internal/devserver/config"
	"github.com/dmitrijs2005/moviebook/internal/logging"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config *config.Config
	store  *Store
	logger logging.Logger
	secret []byte
}

// NewServer builds a server over store. Seeding is left to the caller.
func NewServer(cfg *config.Config, store *Store, logger logging.Logger) *Server {
	return &Server{
		config: cfg,
		store:  store,
		logger: logger.With("module", "devserver"),
		secret: []byte(cfg.SecretKey),
	}
}

// Router returns the HTTP handler with every endpoint registered.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.Use(s.logRequests)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	r.Handle("/auth/logout", s.requireToken(http.HandlerFunc(s.handleLogout))).Methods(http.MethodPost)
	r.Handle("/transactions/history", s.requireToken(http.HandlerFunc(s.handleHistory))).Methods(http.MethodGet)

	return r
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on l until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{Handler: s.Router(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping dev server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting dev server", "address", l.Addr().String())
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
