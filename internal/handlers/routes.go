package handlers

import (
	"net/http"

	"github.com/assoclub/club-api/internal/auth"
	"github.com/assoclub/club-api/internal/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(
	r *chi.Mux,
	authHandler *auth.AuthHandler,
	memberHandler *MemberHandler,
	eventHandler *EventHandler,
	reportHandler *ReportHandler,
	clubHandler *ClubHandler,
	apiKeyHandler *APIKeyHandler,
	photoHandler *PhotoHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// Initialize Huma API
	config := huma.DefaultConfig("Club API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	withCookie := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Auth routes
	huma.Post(api, "/auth/login", authHandler.HandleLogin)
	huma.Post(api, "/auth/logout", authHandler.HandleLogout)
	huma.Post(api, "/register", memberHandler.HandleRegister)

	// Protected routes
	huma.Get(api, "/me", authHandler.HandleMe, withCookie)

	huma.Get(api, "/membres", memberHandler.HandleListMembers, withCookie)
	huma.Post(api, "/membres", memberHandler.HandleAddMember, withCookie)
	huma.Put(api, "/membres/{id}", memberHandler.HandleEditMember, withCookie)
	huma.Delete(api, "/membres/{id}", memberHandler.HandleDeleteMember, withCookie)
	huma.Put(api, "/membres/{id}/password", memberHandler.HandleChangePassword, withCookie)

	huma.Get(api, "/evenements", eventHandler.HandleListEvents, withCookie)
	huma.Post(api, "/evenements", eventHandler.HandleCreateEvent, withCookie)
	huma.Get(api, "/evenements/{id}", eventHandler.HandleGetEvent, withCookie)
	huma.Put(api, "/evenements/{id}", eventHandler.HandleUpdateEvent, withCookie)
	huma.Delete(api, "/evenements/{id}", eventHandler.HandleDeleteEvent, withCookie)
	huma.Post(api, "/evenements/{id}/participations", eventHandler.HandleRegisterParticipation, withCookie)

	huma.Get(api, "/dashboard", reportHandler.HandleDashboard, withCookie)
	huma.Get(api, "/api/dashboard", reportHandler.HandleDashboardStats, withCookie)
	huma.Get(api, "/api/events", reportHandler.HandleCalendar, withCookie)

	huma.Get(api, "/club", clubHandler.HandleGetClub, withCookie)
	huma.Put(api, "/club", clubHandler.HandleUpdateClub, withCookie)

	huma.Post(api, "/api-keys", apiKeyHandler.HandleCreate, withCookie)
	huma.Get(api, "/api-keys", apiKeyHandler.HandleList, withCookie)
	huma.Delete(api, "/api-keys/{id}", apiKeyHandler.HandleDelete, withCookie)

	// Multipart upload stays a plain handler behind the middleware
	r.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)
		r.Put("/membres/{id}/photo", photoHandler.HandleUpload)
	})
}
