package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dicepad/dicepad/internal/api/handler"
	"github.com/dicepad/dicepad/internal/api/middleware"
	"github.com/dicepad/dicepad/internal/services/registry"
	"github.com/dicepad/dicepad/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Registry *registry.Controller
	Hub      *ws.Hub
}

// NewRouter creates a new router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.Registry)
	healthHandler := handler.NewHealthHandler(cfg.Registry)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Game routes, read-only; all mutation flows through the websocket
	api.HandleFunc("/games/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{game_id}/qr", gameHandler.QR).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	// The websocket endpoint sits outside the middleware chain: the logging
	// wrapper's ResponseWriter has no http.Hijacker, which the upgrade needs
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(cfg.Hub, w, req)
	})

	return r
}
