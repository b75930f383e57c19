package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/services/membership"
	"github.com/mcoot/clubhouse-go/internal/web/middleware"
	"github.com/mcoot/clubhouse-go/internal/web/views"
)

// MembershipHandler handles the passcode pages for joining a tier
type MembershipHandler struct {
	membershipService *membership.Service
	logger            *slog.Logger
}

// NewMembershipHandler creates a new MembershipHandler
func NewMembershipHandler(membershipService *membership.Service, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		logger:            logger,
	}
}

// JoinClubPage renders the member passcode form
func (h *MembershipHandler) JoinClubPage(w http.ResponseWriter, r *http.Request) {
	h.renderJoin(w, r, model.MembershipMember, nil)
}

// JoinClub handles the member passcode submission
func (h *MembershipHandler) JoinClub(w http.ResponseWriter, r *http.Request) {
	h.escalate(w, r, model.MembershipMember, "You are now a club member!")
}

// JoinAdminPage renders the admin passcode form
func (h *MembershipHandler) JoinAdminPage(w http.ResponseWriter, r *http.Request) {
	h.renderJoin(w, r, model.MembershipAdmin, nil)
}

// JoinAdmin handles the admin passcode submission
func (h *MembershipHandler) JoinAdmin(w http.ResponseWriter, r *http.Request) {
	h.escalate(w, r, model.MembershipAdmin, "You are now an admin!")
}

func (h *MembershipHandler) escalate(w http.ResponseWriter, r *http.Request, tier model.MembershipStatus, successMsg string) {
	if err := r.ParseForm(); err != nil {
		h.renderJoin(w, r, tier, []string{"Invalid form data"})
		return
	}

	user := middleware.GetUser(r.Context())
	passcode := r.FormValue("passcode")

	if err := h.membershipService.Escalate(r.Context(), user, tier, passcode); err != nil {
		if errors.Is(err, membership.ErrWrongPasscode) {
			h.renderJoin(w, r, tier, []string{"That passcode is not correct"})
			return
		}
		h.logger.Error("escalating membership", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "success", successMsg)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *MembershipHandler) renderJoin(w http.ResponseWriter, r *http.Request, tier model.MembershipStatus, errs []string) {
	data := views.PageData{
		Title: "Join",
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var err error
	switch tier {
	case model.MembershipAdmin:
		data.Title = "Become an admin"
		err = views.JoinPage(data, "Become an admin",
			"Enter the admin passcode to gain admin privileges.",
			"/join-admin", errs).Render(r.Context(), w)
	default:
		data.Title = "Join the club"
		err = views.JoinPage(data, "Join the club",
			"Enter the club passcode to become a member.",
			"/join-club", errs).Render(r.Context(), w)
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
