package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/admin"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/auth"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/frontend"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/response"
	clientmw "github.com/jekabolt/storefront-ledger/internal/middleware"
	"github.com/jekabolt/storefront-ledger/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Config is the configuration for the http server
type Config struct {
	Port           string        `mapstructure:"port"`
	Address        string        `mapstructure:"address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Handler builds the router:
//
//	GET  /health
//	POST /api/auth/login
//	GET  /api/admin/analytics           (bearer token)
//	POST /api/payments/{provider}/initiate
//	POST /api/payments/{provider}/confirm-order
//	POST /api/payments/{provider}/webhooks
func (s *Server) Handler(
	adminServer *admin.Server,
	frontendServer *frontend.Server,
	authServer *auth.Server,
	db Pinger,
) http.Handler {
	timeout := s.c.RequestTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(log.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Accept-Encoding"},
		MaxAge:         300,
	}))
	r.Use(clientmw.ClientIdentifier)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", health(db))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authServer.Login)
		r.Group(func(r chi.Router) {
			r.Use(authServer.WithAuth)
			r.Get("/admin/analytics", adminServer.GetAnalytics)
		})
		r.Route("/payments", frontendServer.Routes)
	})
	return r
}

type healthResponse struct {
	Status string `json:"status"`
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			slog.Default().ErrorContext(r.Context(), "health check failed",
				slog.String("err", err.Error()),
			)
			response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
		response.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

// Start serves handler on the configured address. Cleartext HTTP/2 is
// accepted alongside HTTP/1.1.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "storefront-ledger listening",
			slog.String("addr", "http://"+listenerAddr),
		)
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
			return
		}
		slog.Default().ErrorContext(ctx, "http server exited with an error",
			slog.String("err", err.Error()),
		)
	}()
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}
