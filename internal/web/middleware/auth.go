package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/services/session"
	"github.com/mcoot/clubhouse-go/internal/web/views"
)

type contextKey string

const (
	userContextKey contextKey = "user"

	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "session"
)

// GetUser retrieves the authenticated user from the request context
// Returns nil if no user is authenticated
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// WithUser returns middleware that resolves the session cookie to a user and
// stores it in the request context. Anonymous requests proceed with a nil
// user; the membership tier is re-read from storage on every request so tier
// changes take effect immediately. A session-store fault is not the same as
// being anonymous: it is logged and the request fails with a 500.
func WithUser(sessions *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := userFromSession(r, sessions)
			if err != nil {
				logger.Error("resolving session",
					slog.Any("error", err),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns middleware that rejects anonymous requests with a 403
// access-denial page. It must run inside WithUser.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r.Context()) == nil {
				w.WriteHeader(http.StatusForbidden)
				_ = views.DeniedPage(views.PageData{
					Title: "Access denied",
					Flash: GetFlash(r.Context()),
				}).Render(r.Context(), w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// userFromSession resolves the session cookie, if any. A missing cookie or a
// stale token yields (nil, nil); an error means the session store itself
// failed and the caller must not treat the request as anonymous.
func userFromSession(r *http.Request, sessions *session.Manager) (*model.User, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil
	}

	return sessions.Reconstitute(r.Context(), cookie.Value)
}
