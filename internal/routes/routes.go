package routes

import (
	"net/http"

	"github.com/daybreak-app/daybreak-backend/internal/handlers"
	"github.com/daybreak-app/daybreak-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter builds the full HTTP surface: CORS, the unauthenticated health
// check, and the rate-limited authenticated API. The health check sits outside
// the limiter so load balancer probes sharing an IP never see a 429.
func NewRouter(h *handlers.Handler, jwtSecret []byte, allowedOrigins []string, limit func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Group(func(api chi.Router) {
		if limit != nil {
			api.Use(limit)
		}
		SetupRoutes(api, h, jwtSecret)
	})

	return r
}

// SetupRoutes mounts the authenticated API. Every route requires a bearer
// token from the identity provider; unsupported verbs on known routes get a
// JSON 405.
func SetupRoutes(r chi.Router, h *handlers.Handler, jwtSecret []byte) {
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RequireAuth(jwtSecret))
		api.MethodNotAllowed(handlers.MethodNotAllowed)

		// Journal routes
		api.Get("/journal/entries", h.ListJournalEntries)
		api.Post("/journal/entries", h.SaveJournalEntry)

		// Notification settings routes
		api.Get("/notifications/settings", h.GetNotificationSettings)
		api.Post("/notifications/settings", h.SaveNotificationSettings)

		// Onboarding routes
		api.Get("/onboarding/status", h.GetOnboardingStatus)
		api.Post("/onboarding/complete", h.CompleteOnboarding)
	})
}
