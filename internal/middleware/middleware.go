package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logger writes one line per request.
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	l := log.Named("HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}

type SessionReader interface {
	Snapshot() domain.Session
}

// RequireSession rejects requests while nobody is signed in and stores the
// user id in the request context otherwise.
func RequireSession(s SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := s.Snapshot()
			if !sess.IsLoggedIn || sess.User == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":    "Войдите в аккаунт",
					"redirect": "signin",
				})
				return
			}
			ctx := context.WithValue(r.Context(), UserIDCtxKey, sess.User.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the id stored by RequireSession.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDCtxKey).(string)
	return id
}
