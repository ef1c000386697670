package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/middleware"
)

// NewRouter builds the full chi router: CORS, request logging, a public
// health check, and the authenticated /v1 surface.
func NewRouter(h *ApiHandler, validator auth.TokenValidator, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(chimw.RequestID)
	router.Use(middleware.Logger)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/v1", func(r chi.Router) {
		r.Use(auth.Middleware(validator))

		r.Post("/trips", h.CreateTrip)
		r.Get("/trips", h.ListTrips)
		r.Get("/trips/{tripId}", h.GetTripById)
		r.Patch("/trips/{tripId}", h.PatchTrip)
		r.Post("/trips/{tripId}/status", h.UpdateTripStatus)

		r.Get("/analytics/fleet", h.GetFleetOverview)
		r.Get("/analytics/trips", h.GetTripAnalytics)
		r.Get("/analytics/drivers", h.GetDriverAnalytics)
		r.Get("/analytics/vehicles", h.GetVehicleAnalytics)
		r.Get("/analytics/revenue", h.GetRevenueReport)

		r.Post("/lorries", h.CreateLorry)
		r.Get("/lorries", h.ListLorries)
		r.Post("/lorries/{lorryId}/verification", h.SetLorryVerification)
		r.Get("/admin/lorries/pending", h.ListPendingLorries)

		r.Post("/users", h.CreateUser)
		r.Get("/users/me", h.GetCurrentUser)

		r.Post("/brokers", h.CreateBroker)
		r.Get("/brokers", h.ListBrokers)
		r.Delete("/brokers/{brokerId}", h.DeactivateBroker)

		r.Post("/documents", h.CreateDocument)
		r.Get("/documents", h.ListDocuments)
		r.Delete("/documents/{documentId}", h.DeactivateDocument)
	})

	return router
}
