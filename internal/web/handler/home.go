package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubhouse-go/internal/services/board"
	"github.com/mcoot/clubhouse-go/internal/web/middleware"
	"github.com/mcoot/clubhouse-go/internal/web/views"
)

// HomeHandler handles the home page: the message board itself
type HomeHandler struct {
	boardService *board.Service
	logger       *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(boardService *board.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// Home renders the board. Visible to everyone, logged in or not.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	messages, err := h.boardService.List(r.Context())
	if err != nil {
		h.logger.Error("listing messages", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := views.PageData{
		Title: "Home",
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.HomePage(data, messages).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
