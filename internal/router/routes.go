package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/handler"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupSessionRoutes configures sign-in, registration, profile and subscription routes.
func SetupSessionRoutes(r chi.Router, h *handler.SessionHandler, session middleware.SessionReader) {
	r.Get("/api/view/signin", h.AuthPage)
	r.Get("/api/view/registration", h.AuthPage)
	r.Post("/api/session/login", h.Login)
	r.Post("/api/session/register", h.Register)
	r.Post("/api/session/logout", h.Logout)
	r.Post("/api/subscription", h.Subscribe)

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.RequireSession(session))
		authRouter.Patch("/api/profile", h.UpdateProfile)
	})
}

// SetupListingRoutes configures the public catalogue and the owner's listing routes.
func SetupListingRoutes(r chi.Router, h *handler.ListingHandler, session middleware.SessionReader) {
	r.Get("/api/view/home", h.Home)
	r.Get("/api/view/search", h.Search)
	r.Get("/api/view/pets/{id}", h.Card)
	r.Post("/api/search/filter", h.Filter)
	r.Post("/api/search/reset", h.Reset)
	r.Post("/api/search/page", h.SetPage)
	r.Get("/api/search/quick", h.QuickSearch)
	r.Get("/api/search/suggestions", h.Suggestions)

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.RequireSession(session))
		authRouter.Get("/api/view/profile", h.Profile)
		authRouter.Get("/api/view/add-listing", h.AddListingPage)
		authRouter.Post("/api/pets", h.Create)
		authRouter.Patch("/api/pets/{id}", h.Update)
		authRouter.Delete("/api/pets/{id}", h.Delete)
	})
}

func SetupNotificationRoutes(r chi.Router, h *handler.NotificationHandler) {
	r.Get("/api/notifications", h.List)
	r.Delete("/api/notifications/{id}", h.Dismiss)
}

// SetupOpsRoutes exposes health and metrics.
func SetupOpsRoutes(r chi.Router, metrics http.Handler) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics)
}
