package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/listing"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/view"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 16 << 20

type ListingHandler struct {
	listings     *listing.Store
	views        *view.Builder
	autocomplete *view.Autocomplete
	logger       *zap.Logger
}

func NewListingHandler(l *listing.Store, views *view.Builder, ac *view.Autocomplete, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		listings:     l,
		views:        views,
		autocomplete: ac,
		logger:       log.Named("ListingHTTPHandler").Logger,
	}
}

// Home reloads the collection, as opening the home page does, then moves to
// the requested page.
func (h *ListingHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.listings.Load(r.Context())
	if page := queryInt(r, "page", 1); page != 1 {
		h.listings.SetPage(page)
	}
	writeJSON(w, r, http.StatusOK, h.views.Home())
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.views.Search())
}

func (h *ListingHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var f domain.Filters
	if !decodeJSON(w, r, h.logger, &f) {
		return
	}
	f.District = strings.TrimSpace(f.District)
	f.Kind = strings.TrimSpace(f.Kind)
	h.listings.Filter(r.Context(), f)
	writeJSON(w, r, http.StatusOK, h.views.Search())
}

func (h *ListingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.listings.Reset()
	writeJSON(w, r, http.StatusOK, h.views.Search())
}

func (h *ListingHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	h.listings.SetPage(queryInt(r, "page", 1))
	writeJSON(w, r, http.StatusOK, h.views.Search())
}

func (h *ListingHandler) QuickSearch(w http.ResponseWriter, r *http.Request) {
	h.listings.QuickSearch(r.Context(), strings.TrimSpace(r.URL.Query().Get("query")))
	writeJSON(w, r, http.StatusOK, h.views.Search())
}

type suggestionsResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// Suggestions feeds the debounced autocomplete and returns whatever is
// settled so far; clients poll while the user types.
func (h *ListingHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if q, ok := r.URL.Query()["query"]; ok {
		h.autocomplete.Input(r.Context(), strings.Join(q, " "))
	}
	query, list := h.autocomplete.Current()
	writeJSON(w, r, http.StatusOK, suggestionsResponse{Query: query, Suggestions: list})
}

func (h *ListingHandler) Card(w http.ResponseWriter, r *http.Request) {
	pet, ok := h.listings.Get(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, r, http.StatusNotFound, Result{OK: false, Page: h.views.Page()})
		return
	}
	writeJSON(w, r, http.StatusOK, h.views.Card(pet))
}

func (h *ListingHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.listings.UserListings(r.Context(), middleware.UserID(r.Context()))
	writeJSON(w, r, http.StatusOK, h.views.Profile())
}

func (h *ListingHandler) AddListingPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.views.AddListing())
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseListingForm(r)
	if err != nil {
		h.logger.Warn("Failed to parse listing form", zap.Error(err))
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	id, ok := h.listings.Create(r.Context(), form)
	writeJSON(w, r, http.StatusOK, Result{OK: ok, ID: id, Page: h.views.Page()})
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := parseListingForm(r)
	if err != nil {
		h.logger.Warn("Failed to parse listing form", zap.Error(err))
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	pet, found := h.ownListing(r)
	ok := found && h.listings.Update(r.Context(), pet, form)
	writeJSON(w, r, http.StatusOK, Result{OK: ok, ID: pet.ID, Page: h.views.Page()})
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pet, found := h.ownListing(r)
	ok := found && h.listings.Delete(r.Context(), pet)
	writeJSON(w, r, http.StatusOK, Result{OK: ok, ID: pet.ID, Page: h.views.Page()})
}

// ownListing prefers the copy already loaded for the profile page so the
// status check needs no round-trip.
func (h *ListingHandler) ownListing(r *http.Request) (domain.Pet, bool) {
	id := chi.URLParam(r, "id")
	for _, p := range h.listings.Snapshot().Mine {
		if p.ID == id {
			return p, true
		}
	}
	return h.listings.Get(r.Context(), id)
}

func parseListingForm(r *http.Request) (domain.ListingForm, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return domain.ListingForm{}, err
	}
	form := domain.ListingForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Kind:        strings.TrimSpace(r.FormValue("kind")),
		District:    strings.TrimSpace(r.FormValue("district")),
		Mark:        strings.TrimSpace(r.FormValue("mark")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Confirm:     isTruthy(r.FormValue("confirm")),
	}
	var err error
	if form.Photo1, err = formPhoto(r, "photo1"); err != nil {
		return form, err
	}
	if form.Photo2, err = formPhoto(r, "photo2"); err != nil {
		return form, err
	}
	if form.Photo3, err = formPhoto(r, "photo3"); err != nil {
		return form, err
	}
	return form, nil
}

func formPhoto(r *http.Request, field string) (*domain.Photo, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &domain.Photo{FileName: hdr.Filename, Data: data}, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
