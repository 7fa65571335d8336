package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/vpopov/authgate/internal/server/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

func principalFromContext(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*models.Principal)
	return p, ok
}

// authenticate guards token-protected routes. A request passes only when it
// carries a well-formed bearer token with a valid signature and unexpired
// claims, and the token subject still resolves to a live account. Every
// failure mode gets the same unauthorized response.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		scheme, accessToken, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || accessToken == "" {
			writeUnauthorized(w)
			return
		}

		claims, err := s.verifier.Verify(accessToken)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		principal, err := s.auth.Resolve(r.Context(), claims.Subject)
		if err != nil {
			s.logger.Error(r.Context(), err.Error())
			writeInternalError(w)
			return
		}
		if principal == nil {
			// Stale token: the subject no longer exists.
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger reports each request through the structured logger instead
// of chi's stock line-oriented logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
