// Package httpapi exposes the auth service over HTTP. It owns the router,
// the bearer-token middleware, and the mapping of domain errors onto the
// uniform unauthorized response.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vpopov/authgate/internal/logging"
	"github.com/vpopov/authgate/internal/server/models"
	"github.com/vpopov/authgate/internal/server/services"
	"github.com/vpopov/authgate/internal/server/token"
)

// AuthService is the part of the service layer the HTTP surface consumes.
type AuthService interface {
	Register(ctx context.Context, creds services.Credentials) (*services.AuthResult, error)
	Login(ctx context.Context, username, plaintext string) (*services.AuthResult, error)
	Resolve(ctx context.Context, id string) (*models.Principal, error)
}

// TokenVerifier checks inbound bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

type Server struct {
	address  string
	auth     AuthService
	verifier TokenVerifier
	logger   logging.Logger
}

func NewServer(address string, l logging.Logger, auth AuthService, verifier TokenVerifier) *Server {
	return &Server{
		address:  address,
		auth:     auth,
		verifier: verifier,
		logger:   l.With("module", "http_server"),
	}
}

// Router builds the chi router with the full middleware stack and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.With(s.authenticate).Get("/profile", s.handleProfile)
	})

	r.Get("/healthz", handleHealthCheck)

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
