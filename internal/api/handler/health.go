package handler

import (
	"net/http"

	"github.com/dicepad/dicepad/internal/api/apierr"
	"github.com/dicepad/dicepad/internal/api/response"
	"github.com/dicepad/dicepad/internal/services/registry"
)

// HealthHandler reports service liveness and the active game count
type HealthHandler struct {
	registry *registry.Controller
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(registryController *registry.Controller) *HealthHandler {
	return &HealthHandler{registry: registryController}
}

// HealthResponse is the health endpoint's body
type HealthResponse struct {
	Status string `json:"status"`
	Games  int    `json:"games"`
}

// Get handles GET /health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	count, err := h.registry.GameCount(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Games:  count,
	})
}
