package handlers

import (
	"net/http"

	"campuspool/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Logger   *zap.Logger
	Auth     *service.AuthService
	Users    *service.UserService
	Rides    *service.RideService
	Requests *service.RequestService
	Ratings  *service.RatingService
	Chats    *service.ChatService
	Safety   *service.SafetyService
	Admin    *service.AdminService
}

// NewRouter builds the full API surface.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Users)
	userHandler := NewUserHandler(deps.Users)
	rideHandler := NewRideHandler(deps.Rides)
	requestHandler := NewRequestHandler(deps.Requests)
	ratingHandler := NewRatingHandler(deps.Ratings)
	chatHandler := NewChatHandler(deps.Chats)
	safetyHandler := NewSafetyHandler(deps.Safety)
	adminHandler := NewAdminHandler(deps.Admin)
	catalogHandler := NewCatalogHandler()

	r := chi.NewRouter()
	r.Use(Recoverer(deps.Logger))
	r.Use(Logging(deps.Logger))
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", MetricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		// Everything below requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(deps.Auth))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Put("/me", userHandler.UpdateMe)
				r.Post("/me/verification", userHandler.SubmitVerification)
				r.Get("/me/stats", userHandler.MyStats)
				r.Get("/{userID}", userHandler.PublicProfile)
			})

			r.Route("/rides", func(r chi.Router) {
				r.Post("/", rideHandler.Create)
				r.Get("/", rideHandler.Search)
				r.Get("/my", rideHandler.MyRides)
				r.Get("/{rideID}", rideHandler.Get)
				r.Put("/{rideID}", rideHandler.Update)
				r.Delete("/{rideID}", rideHandler.Cancel)
				r.Get("/{rideID}/requests", requestHandler.RideRequests)
				r.Post("/{rideID}/requests", requestHandler.Create)
			})

			r.Route("/requests", func(r chi.Router) {
				r.Get("/my", requestHandler.MyRequests)
				r.Get("/driver", requestHandler.DriverRequests)
				r.Post("/{requestID}/respond", requestHandler.Respond)
				r.Post("/{requestID}/start", requestHandler.Start)
				r.Post("/{requestID}/reached-safely", requestHandler.ReachedSafely)
				r.Post("/{requestID}/cancel", requestHandler.Cancel)
				r.Get("/{requestID}/live", requestHandler.LiveView)
				r.Post("/{requestID}/rating", ratingHandler.Submit)
				r.Get("/{requestID}/can-rate", ratingHandler.CanRate)
				r.Get("/{requestID}/messages", chatHandler.List)
				r.Post("/{requestID}/messages", chatHandler.Send)
				r.Post("/{requestID}/sos", safetyHandler.TriggerSOS)
			})

			r.Post("/reports", adminHandler.FileReport)
			r.Get("/event-tags", adminHandler.ActiveEventTags)

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/pickup-points", catalogHandler.PickupPoints)
				r.Get("/recurrence-patterns", catalogHandler.RecurrencePatterns)
				r.Get("/branches", catalogHandler.Branches)
				r.Get("/academic-years", catalogHandler.AcademicYears)
				r.Get("/badges", catalogHandler.Badges)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireAdmin)

				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{userID}/status", adminHandler.SetUserStatus)
				r.Get("/stats", adminHandler.Stats)
				r.Get("/audit-logs", adminHandler.AuditLogs)
				r.Get("/verifications", adminHandler.PendingVerifications)
				r.Post("/verifications/{userID}", adminHandler.HandleVerification)
				r.Get("/reports", adminHandler.ListReports)
				r.Post("/reports/{reportID}", adminHandler.HandleReport)
				r.Get("/sos", adminHandler.ListSOS)
				r.Post("/sos/{eventID}", adminHandler.HandleSOS)
				r.Post("/event-tags", adminHandler.CreateEventTag)
				r.Delete("/event-tags/{tagID}", adminHandler.DeactivateEventTag)
			})
		})
	})

	return r
}
