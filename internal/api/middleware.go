package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"files-manager/internal/access"
	"files-manager/internal/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// TokenHeader carries the session token issued by /connect.
const TokenHeader = "X-Token"

type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware rejects requests without a valid session token and stores
// the session's user id in the request context.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.sessions.Resolve(r.Context(), r.Header.Get(TokenHeader))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userContextKey).(int64)
	return userID, ok
}

// requester resolves the optional session token of r. A missing, invalid or
// expired token yields access.Anonymous.
func (s *Server) requester(r *http.Request) (access.Requester, error) {
	if userID, ok := GetUserIDFromContext(r.Context()); ok {
		return access.User(userID), nil
	}

	token := r.Header.Get(TokenHeader)
	if token == "" {
		return access.Anonymous, nil
	}

	userID, err := s.sessions.Resolve(r.Context(), token)
	if errors.Is(err, apperr.ErrUnauthorized) {
		return access.Anonymous, nil
	}
	if err != nil {
		return access.Anonymous, err
	}

	return access.User(userID), nil
}

func (s *Server) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		s.log.Info("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
