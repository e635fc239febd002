// internal/handler/page_handler.go
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/unclebandit/outreach-tracker/internal/logger"
	"github.com/unclebandit/outreach-tracker/internal/model"
	"github.com/unclebandit/outreach-tracker/internal/repository"
	"github.com/unclebandit/outreach-tracker/internal/service"
	"github.com/unclebandit/outreach-tracker/internal/view"
)

const sessionName = "outreach"

// PageHandler serves the HTML pages. The session only remembers who is
// calling from which branch; it guards nothing.
type PageHandler struct {
	CampaignService *service.CampaignService
	Store           interface{ Status() repository.BackendStatus }
	Sessions        sessions.Store
	Logger          *zap.Logger
}

func NewSessionStore(secret string, timeout time.Duration) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(timeout.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, sessionName)
	data := view.LandingData{Status: h.Store.Status()}
	data.UserName, _ = session.Values["user_name"].(string)
	data.Branch, _ = session.Values["branch"].(int)

	if data.UserName != "" {
		campaigns, err := h.CampaignService.ListCampaigns(r.Context())
		if err != nil {
			logger.OrNop(h.Logger).Warn("⚠️ cannot load campaign progress", zap.Error(err))
			data.Flash = "Call log is unavailable right now: " + err.Error()
		}
		data.Campaigns = campaigns
	}

	h.render(w, r, http.StatusOK, data)
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	branch, err := strconv.Atoi(r.FormValue("branch"))
	if _, known := model.Branches[branch]; name == "" || err != nil || !known {
		h.render(w, r, http.StatusBadRequest, view.LandingData{
			Status: h.Store.Status(),
			Flash:  "Please enter your name and select a branch",
		})
		return
	}

	session, _ := h.Sessions.Get(r, sessionName)
	session.Values["user_name"] = name
	session.Values["branch"] = branch
	if err := session.Save(r, w); err != nil {
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}

	logger.OrNop(h.Logger).Info("user started outreach", zap.String("user", name), zap.String("branch", model.BranchName(branch)))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Values = map[interface{}]interface{}{}
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data view.LandingData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.Landing(data).Render(r.Context(), w); err != nil {
		logger.OrNop(h.Logger).Error("❌ failed to render page", zap.Error(err))
	}
}
