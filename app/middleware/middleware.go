package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"stride-store/service"
)

type ctxKeyClaims struct{}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

// Logging logs one line per request with a generated request id, the status
// and the time taken.
func Logging(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			start := time.Now()
			rr := &responseRecorder{w: w}

			next.ServeHTTP(rr, r)

			log.WithFields(logrus.Fields{
				"http.req.path":     r.URL.Path,
				"http.req.method":   r.Method,
				"http.req.id":       requestID,
				"http.resp.status":  rr.status,
				"http.resp.bytes":   rr.b,
				"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
			}).Info("request complete")
		})
	}
}

// Auth extracts and verifies a Bearer token when one is present and stores
// its claims in the request context. Requests without a token pass through
// anonymously; RequireAuth and RequireAdmin gate the protected routes.
func Auth(auth service.AuthServiceInterface) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
				if err != nil {
					http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
					return
				}
				ctx := context.WithValue(r.Context(), ctxKeyClaims{}, claims)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests that carry no verified token.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFrom(r); !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose token does not carry the admin flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom returns the verified token claims stored by Auth, if any.
func ClaimsFrom(r *http.Request) (*service.TokenClaims, bool) {
	claims, ok := r.Context().Value(ctxKeyClaims{}).(*service.TokenClaims)
	return claims, ok
}
