package handler

import (
	"context"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/session"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/validation"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/view"
	"go.uber.org/zap"
)

type SubscriptionAPI interface {
	Subscribe(ctx context.Context, email string) error
}

type SessionHandler struct {
	session  *session.Store
	views    *view.Builder
	subs     SubscriptionAPI
	notifier domain.Notifier
	logger   *zap.Logger
}

func NewSessionHandler(s *session.Store, views *view.Builder, subs SubscriptionAPI, notifier domain.Notifier, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		session:  s,
		views:    views,
		subs:     subs,
		notifier: notifier,
		logger:   log.Named("SessionHTTPHandler").Logger,
	}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	ok := h.session.Login(r.Context(), req.Identifier, req.Password)
	writeJSON(w, r, http.StatusOK, Result{OK: ok, Page: h.views.Page()})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	writeJSON(w, r, http.StatusOK, Result{OK: true, Page: h.views.Page()})
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.Registration
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	ok := h.session.Register(r.Context(), req)
	writeJSON(w, r, http.StatusOK, Result{OK: ok, Page: h.views.Page()})
}

func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfilePatch
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	ok := h.session.UpdateProfile(r.Context(), req)
	writeJSON(w, r, http.StatusOK, Result{OK: ok, Page: h.views.Page()})
}

// AuthPage serves the sign-in and registration pages, which carry nothing
// but the page chrome.
func (h *SessionHandler) AuthPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.views.Page())
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *SessionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	ok := h.subscribe(r.Context(), req.Email)
	writeJSON(w, r, http.StatusOK, Result{OK: ok, Page: h.views.Page()})
}

func (h *SessionHandler) subscribe(ctx context.Context, email string) bool {
	if err := validation.Subscription(email); err != nil {
		h.notifier.Push(err.(validation.Errors).Message(), domain.KindWarning)
		return false
	}
	if err := h.subs.Subscribe(ctx, email); err != nil {
		h.logger.Info("Subscription rejected", zap.Error(err))
		h.notifier.Push("Не удалось оформить подписку: "+err.Error(), domain.KindDanger)
		return false
	}
	h.notifier.Push("Вы подписались на новости", domain.KindSuccess)
	return true
}
