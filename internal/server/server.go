// Package server runs the bot's HTTP surface: the websocket console and
// the health endpoint.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/internal/console"
	"github.com/msto63/chatbot/internal/quotestore"
	"github.com/msto63/chatbot/pkg/bot"
	"github.com/msto63/chatbot/pkg/core/health"
)

// Server is the console HTTP server
type Server struct {
	httpServer *http.Server
	health     *health.Registry
	logger     *log.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Name    string
	Version string
	// Address is the host:port to listen on
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// ConsoleTimeout closes idle console connections
	ConsoleTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Name:           "chatbot",
		Version:        "dev",
		Address:        "127.0.0.1:8090",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		ConsoleTimeout: 120 * time.Second,
	}
}

// Deps are the runtime components the server exposes
type Deps struct {
	State      *bot.State
	Dispatcher console.Dispatcher
	// Quotes is optional; without it no storage check is registered
	Quotes quotestore.Store
	Logger *log.Logger
}

// New creates a server
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.State == nil || deps.Dispatcher == nil {
		return nil, mdwerror.New("state and dispatcher are required").WithCode(mdwerror.CodeInvalidInput)
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.GetDefault()
	}
	logger = logger.WithField("component", "server")

	wsHandler := console.NewHandler(deps.Dispatcher, console.Options{
		Name:        cfg.Name,
		Version:     cfg.Version,
		ReadTimeout: cfg.ConsoleTimeout,
		Logger:      deps.Logger,
	})

	healthRegistry := health.NewRegistry(cfg.Name, cfg.Version)
	healthRegistry.Register(RegistryCheck(deps.State))
	if deps.Quotes != nil {
		healthRegistry.Register(QuoteStoreCheck(deps.Quotes))
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", wsHandler)
	mux.Handle("/healthz", healthRegistry.Handler(5*time.Second))

	httpServer := &http.Server{
		Addr:         cfg.Address,
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}, nil
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.logger.Info("Starting console server", log.Fields{"address": s.Address()})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping console server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return s.httpServer.Addr
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// RegistryCheck reports how much the module registry holds. An empty
// registry is degraded: the bot runs but cannot react to anything.
func RegistryCheck(state *bot.State) health.Checker {
	return health.NewChecker("registry", func(ctx context.Context) health.CheckResult {
		modules := len(state.Modules())
		result := health.CheckResult{
			Status:  health.StatusHealthy,
			Message: fmt.Sprintf("%d modules loaded", modules),
			Details: map[string]interface{}{
				"modules":  modules,
				"commands": len(state.Commands()),
				"triggers": len(state.Triggers()),
			},
		}
		if modules == 0 {
			result.Status = health.StatusDegraded
		}
		return result
	})
}

// QuoteStoreCheck verifies the quotation store answers queries
func QuoteStoreCheck(store quotestore.Store) health.Checker {
	return health.NewChecker("quotes", func(ctx context.Context) health.CheckResult {
		n, err := store.Count(ctx)
		if err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Message: fmt.Sprintf("%d quotations", n),
			Details: map[string]interface{}{"count": n},
		}
	})
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request", log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapper.statusCode,
			"duration": time.Since(start),
		})
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("server: response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
