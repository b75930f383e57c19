package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/services/board"
	"github.com/mcoot/clubhouse-go/internal/web/middleware"
	"github.com/mcoot/clubhouse-go/internal/web/views"
)

// MessageHandler handles posting new messages
type MessageHandler struct {
	boardService *board.Service
	logger       *slog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(boardService *board.Service, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// NewMessagePage renders the posting form. Basic users get the members-only
// page instead; their tier does not allow posting.
func (h *MessageHandler) NewMessagePage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if !user.Membership.CanPost() {
		h.renderMembersOnly(w, r)
		return
	}

	h.renderForm(w, r, views.NewMessageForm{}, nil)
}

// NewMessage handles the posting form submission
func (h *MessageHandler) NewMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, views.NewMessageForm{}, []string{"Invalid form data"})
		return
	}

	user := middleware.GetUser(r.Context())
	form := views.NewMessageForm{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
	}

	_, err := h.boardService.Post(r.Context(), user, form.Title, form.Text)
	if err != nil {
		if errors.Is(err, board.ErrNotMember) {
			h.renderMembersOnly(w, r)
			return
		}
		var validationErrs model.ValidationErrors
		if errors.As(err, &validationErrs) {
			h.renderForm(w, r, form, validationErrs.Messages())
			return
		}
		h.logger.Error("posting message", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", "Message posted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *MessageHandler) renderForm(w http.ResponseWriter, r *http.Request, form views.NewMessageForm, errs []string) {
	data := views.PageData{
		Title: "New message",
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.NewMessagePage(data, form, errs).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *MessageHandler) renderMembersOnly(w http.ResponseWriter, r *http.Request) {
	data := views.PageData{
		Title: "Members only",
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	if err := views.MembersOnlyPage(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
