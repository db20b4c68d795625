package handler

import (
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/notify"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	queue  *notify.Queue
	logger *zap.Logger
}

func NewNotificationHandler(q *notify.Queue, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{queue: q, logger: log.Named("NotificationHTTPHandler").Logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.queue.List())
}

func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.logger.Debug("Bad notification id", zap.String("id", chi.URLParam(r, "id")))
		http.Error(w, "Invalid notification id", http.StatusBadRequest)
		return
	}
	if !h.queue.Dismiss(id) {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
