package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/Dan9191/task-service/internal/respond"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier resolves a signed token to a user id
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func AuthMiddleware(tokens TokenVerifier, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := tokens.Verify(bearerToken(r))
			if err != nil {
				log.WithError(err).Debug("Rejected token")
				respond.Error(w, log, apperr.Unauthenticated(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithUserID returns a copy of ctx carrying the authenticated user id
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
