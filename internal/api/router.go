package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trouze/movienight/internal/api/handler"
	"github.com/trouze/movienight/internal/api/middleware"
	basemiddleware "github.com/trouze/movienight/internal/middleware"
	"github.com/trouze/movienight/internal/pubsub"
	"github.com/trouze/movienight/internal/rotation"
	"github.com/trouze/movienight/internal/services/auth"
	"github.com/trouze/movienight/internal/services/catalog"
	"github.com/trouze/movienight/internal/services/chat"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	Roster             *rotation.Roster
	RotationController *rotation.Controller
	ChatService        *chat.Service
	CatalogService     *catalog.Service
	Subscriber         pubsub.Subscriber
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	memberHandler := handler.NewMemberHandler(cfg.AuthService, cfg.Roster)
	rotationHandler := handler.NewRotationHandler(cfg.RotationController)
	chatHandler := handler.NewChatHandler(cfg.ChatService)
	movieHandler := handler.NewMovieHandler(cfg.CatalogService)
	eventsHandler := handler.NewEventsHandler(cfg.Subscriber, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := basemiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Member routes (no auth required for registering/logging in)
	api.HandleFunc("/members/register", memberHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/members/login", memberHandler.Login).Methods(http.MethodPost)

	// Protected member routes
	members := api.PathPrefix("/members").Subrouter()
	members.Use(authMiddleware)
	members.HandleFunc("", memberHandler.List).Methods(http.MethodGet)
	members.HandleFunc("/logout", memberHandler.Logout).Methods(http.MethodPost)
	members.HandleFunc("/me", memberHandler.GetMe).Methods(http.MethodGet)
	members.HandleFunc("/{member_id}/role", memberHandler.SetRole).Methods(http.MethodPatch)

	// Rotation routes (all require auth)
	rotationRoutes := api.PathPrefix("/rotation").Subrouter()
	rotationRoutes.Use(authMiddleware)
	rotationRoutes.HandleFunc("", rotationHandler.Get).Methods(http.MethodGet)
	rotationRoutes.HandleFunc("/cursor", rotationHandler.SetCursor).Methods(http.MethodPut)
	rotationRoutes.HandleFunc("/party", rotationHandler.TriggerParty).Methods(http.MethodPost)

	// Chat routes (all require auth)
	chatRoutes := api.PathPrefix("/chat").Subrouter()
	chatRoutes.Use(authMiddleware)
	chatRoutes.HandleFunc("/messages", chatHandler.History).Methods(http.MethodGet)
	chatRoutes.HandleFunc("/messages", chatHandler.Post).Methods(http.MethodPost)

	// Movie routes (all require auth; mutation permission is enforced
	// by the catalog service)
	movies := api.PathPrefix("/movies").Subrouter()
	movies.Use(authMiddleware)
	movies.HandleFunc("", movieHandler.Add).Methods(http.MethodPost)
	movies.HandleFunc("", movieHandler.List).Methods(http.MethodGet)
	movies.HandleFunc("/search", movieHandler.Search).Methods(http.MethodGet)
	movies.HandleFunc("/{movie_id}", movieHandler.Get).Methods(http.MethodGet)
	movies.HandleFunc("/{movie_id}", movieHandler.Remove).Methods(http.MethodDelete)

	// Event stream (requires auth; subscribing is gated the same way
	// as every other authenticated read)
	events := api.PathPrefix("/events").Subrouter()
	events.Use(authMiddleware)
	events.HandleFunc("", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
