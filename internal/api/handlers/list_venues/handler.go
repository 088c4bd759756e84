package list_venues

import (
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /venues - Failed to list venues: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues - Retrieved %d venues", len(result.Venues))
	handlers.RespondJSON(w, http.StatusOK, result)
}
