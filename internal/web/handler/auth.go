package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/services/auth"
	"github.com/mcoot/clubhouse-go/internal/services/session"
	"github.com/mcoot/clubhouse-go/internal/web/middleware"
	"github.com/mcoot/clubhouse-go/internal/web/views"
)

// AuthHandler handles sign-up, log-in, and log-out
type AuthHandler struct {
	authService   *auth.Service
	sessions      *session.Manager
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessions *session.Manager, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessions:      sessions,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// SignUpPage renders the registration form
func (h *AuthHandler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderSignUp(w, r, views.SignUpForm{}, nil)
}

// SignUp handles registration form submission. On success the new user is
// logged in immediately and sent to the club join page.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignUp(w, r, views.SignUpForm{}, []string{"Invalid form data"})
		return
	}

	input := auth.RegisterInput{
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
	form := views.SignUpForm{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		var validationErrs model.ValidationErrors
		if errors.As(err, &validationErrs) {
			h.renderSignUp(w, r, form, validationErrs.Messages())
			return
		}
		h.logger.Error("registering user", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	token, err := h.sessions.Establish(r.Context(), user)
	if err != nil {
		// The account row exists at this point; the user can still log in
		// once the session store recovers
		h.logger.Error("establishing session after sign-up", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	middleware.SetFlash(w, "success", "Welcome, "+user.DisplayName()+"!")
	http.Redirect(w, r, "/join-club", http.StatusSeeOther)
}

// LogInPage renders the login form
func (h *AuthHandler) LogInPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderLogIn(w, r, "", nil)
}

// LogIn handles login form submission
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogIn(w, r, "", []string{"Invalid form data"})
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.authService.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownUser) || errors.Is(err, auth.ErrBadPassword) {
			// Deliberately the same message for both cases
			h.renderLogIn(w, r, username, []string{"Incorrect username or password"})
			return
		}
		h.logger.Error("authenticating user", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	token, err := h.sessions.Establish(r.Context(), user)
	if err != nil {
		h.logger.Error("establishing session", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	middleware.SetFlash(w, "success", "Welcome back, "+user.DisplayName()+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogOut terminates the session and clears the cookie. Always redirects home,
// even if the stored session could not be removed.
func (h *AuthHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.sessions.Terminate(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderSignUp(w http.ResponseWriter, r *http.Request, form views.SignUpForm, errs []string) {
	data := views.PageData{
		Title: "Sign up",
		Flash: middleware.GetFlash(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.SignUpPage(data, form, errs).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderLogIn(w http.ResponseWriter, r *http.Request, username string, errs []string) {
	data := views.PageData{
		Title: "Log in",
		Flash: middleware.GetFlash(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.LogInPage(data, username, errs).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
