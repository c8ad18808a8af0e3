package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/dicepad/dicepad/internal/api/apierr"
	"github.com/dicepad/dicepad/internal/api/response"
	"github.com/dicepad/dicepad/internal/model"
	"github.com/dicepad/dicepad/internal/services/registry"
)

// GameHandler handles read-only game endpoints. Mutations go over the
// websocket so every subscriber sees the resulting snapshot.
type GameHandler struct {
	registry *registry.Controller
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(registryController *registry.Controller) *GameHandler {
	return &GameHandler{registry: registryController}
}

// Get handles GET /games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	game, err := h.registry.GetGame(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// qrSize is the PNG edge length in pixels, sized for phone cameras
const qrSize = 320

// QR handles GET /games/{game_id}/qr, serving a PNG QR code that encodes
// the game's URL so other players can scan their way in
func (h *GameHandler) QR(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	if _, err := h.registry.GetGame(r.Context(), gameID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	// Derive scheme, respecting TLS and X-Forwarded-Proto when behind a proxy
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	url := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
