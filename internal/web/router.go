// Package web serves the board's HTML interface.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/clubhouse-go/internal/services/auth"
	"github.com/mcoot/clubhouse-go/internal/services/board"
	"github.com/mcoot/clubhouse-go/internal/services/membership"
	"github.com/mcoot/clubhouse-go/internal/services/session"
	"github.com/mcoot/clubhouse-go/internal/web/handler"
	"github.com/mcoot/clubhouse-go/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	SessionManager    *session.Manager
	MembershipService *membership.Service
	BoardService      *board.Service
	StaticDir         string // Path to static files directory
	SecureCookies     bool   // Set the Secure flag on session cookies
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	withUserMiddleware := middleware.WithUser(cfg.SessionManager, cfg.Logger)
	requireUserMiddleware := middleware.RequireUser()

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.BoardService, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.SessionManager, cfg.SecureCookies, cfg.Logger)
	membershipHandler := handler.NewMembershipHandler(cfg.MembershipService, cfg.Logger)
	messageHandler := handler.NewMessageHandler(cfg.BoardService, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (user resolved for the nav, but not required)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(withUserMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/sign-up", authHandler.SignUpPage).Methods(http.MethodGet)
	public.HandleFunc("/sign-up", authHandler.SignUp).Methods(http.MethodPost)
	public.HandleFunc("/log-in", authHandler.LogInPage).Methods(http.MethodGet)
	public.HandleFunc("/log-in", authHandler.LogIn).Methods(http.MethodPost)
	public.HandleFunc("/log-out", authHandler.LogOut).Methods(http.MethodPost)

	// Protected routes (anonymous requests get a 403 denial page)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(withUserMiddleware)
	protected.Use(requireUserMiddleware)
	protected.HandleFunc("/join-club", membershipHandler.JoinClubPage).Methods(http.MethodGet)
	protected.HandleFunc("/join-club", membershipHandler.JoinClub).Methods(http.MethodPost)
	protected.HandleFunc("/join-admin", membershipHandler.JoinAdminPage).Methods(http.MethodGet)
	protected.HandleFunc("/join-admin", membershipHandler.JoinAdmin).Methods(http.MethodPost)
	protected.HandleFunc("/new-message", messageHandler.NewMessagePage).Methods(http.MethodGet)
	protected.HandleFunc("/new-message", messageHandler.NewMessage).Methods(http.MethodPost)

	return r
}
