package handler

import (
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/view"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// Result answers every intent: whether it succeeded plus the refreshed page
// chrome, so the client can show toasts and follow redirects.
type Result struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
	view.Page
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		log.Warn("Failed to decode request body", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return v
	}
	return def
}
